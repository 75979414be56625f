package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("STORAGE_DRIVER")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorageDriver != "file" {
		t.Errorf("expected default driver file, got %s", cfg.StorageDriver)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("expected default host 127.0.0.1, got %s", cfg.Host)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("expected default data dir ./data, got %s", cfg.DataDir)
	}
	if cfg.DBMaxConns != 4 {
		t.Errorf("expected default max conns 4, got %d", cfg.DBMaxConns)
	}
	if cfg.BodyLimit != "1M" {
		t.Errorf("expected default body limit 1M, got %s", cfg.BodyLimit)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_RequestTimeoutFromEnv(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.RequestTimeout)
	}
}

func TestConfig_Location(t *testing.T) {
	c := &Config{}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.Local {
		t.Errorf("expected local zone, got %s", loc)
	}

	c.Timezone = "UTC"
	loc, _ = c.Location()
	if loc.String() != "UTC" {
		t.Errorf("expected UTC, got %s", loc)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/hms-test.db")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Errorf("expected driver sqlite, got %q", cfg.StorageDriver)
	}
	if cfg.SQLitePath != "/tmp/hms-test.db" {
		t.Errorf("expected sqlite path from env, got %s", cfg.SQLitePath)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("expected addr 127.0.0.1:9090, got %s", cfg.Addr())
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file ok", Config{StorageDriver: "file", DataDir: "./data"}, false},
		{"file missing dir", Config{StorageDriver: "file"}, true},
		{"memory ok", Config{StorageDriver: "memory"}, false},
		{"postgres missing url", Config{StorageDriver: "postgres"}, true},
		{"postgres ok", Config{StorageDriver: "postgres", DatabaseURL: "postgres://localhost/hms"}, false},
		{"s3 missing bucket", Config{StorageDriver: "s3"}, true},
		{"s3 ok", Config{StorageDriver: "s3", S3Bucket: "records"}, false},
		{"couchbase missing url", Config{StorageDriver: "couchbase"}, true},
		{"unknown driver", Config{StorageDriver: "floppy"}, true},
		{"bad log format", Config{StorageDriver: "memory", LogFormat: "xml"}, true},
		{"ecs log format", Config{StorageDriver: "memory", LogFormat: "ecs"}, false},
		{"bad timezone", Config{StorageDriver: "memory", Timezone: "Mars/Olympus"}, true},
		{"utc timezone", Config{StorageDriver: "memory", Timezone: "UTC"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
