package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hms/hms/internal/records"
)

// FileProvider stores each collection as <dir>/<kind>.json. Writes go to a
// temp file in the same directory and are renamed into place, so a reader
// sees either the old or the new snapshot of a collection.
type FileProvider struct {
	dir string
}

// NewFileProvider returns a provider rooted at dir, creating it if needed.
func NewFileProvider(dir string) (*FileProvider, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileProvider{dir: dir}, nil
}

// Path returns the file backing a collection.
func (p *FileProvider) Path(kind records.Kind) string {
	return filepath.Join(p.dir, string(kind)+".json")
}

func (p *FileProvider) Read(_ context.Context, kind records.Kind) ([]byte, error) {
	data, err := os.ReadFile(p.Path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	return data, nil
}

func (p *FileProvider) Write(_ context.Context, kind records.Kind, payload []byte) error {
	tmp, err := os.CreateTemp(p.dir, ".tmp-"+string(kind)+"-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", kind, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", kind, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", kind, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", kind, err)
	}
	if err := os.Rename(tmp.Name(), p.Path(kind)); err != nil {
		return fmt.Errorf("rename %s: %w", kind, err)
	}
	return nil
}

func (p *FileProvider) Driver() Driver { return DriverFile }

func (p *FileProvider) Close() error { return nil }
