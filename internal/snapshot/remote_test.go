package snapshot

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/couchbase/gocb/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hms/hms/internal/records"
)

// -- fake S3 --

type fakeObjects struct {
	objects map[string][]byte
	failGet error
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	b, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(b)))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3Provider(t *testing.T) {
	fake := &fakeObjects{objects: make(map[string][]byte)}
	p := newS3Provider(fake, "records", "hms/")
	exerciseProvider(t, p)

	if _, ok := fake.objects["records/hms/patients.json"]; !ok {
		t.Errorf("expected object at hms/patients.json, have %v", fake.objects)
	}
	if p.Driver() != DriverS3 {
		t.Errorf("expected s3 driver, got %s", p.Driver())
	}
}

func TestS3Provider_ReadError(t *testing.T) {
	fake := &fakeObjects{objects: make(map[string][]byte), failGet: errors.New("access denied")}
	p := newS3Provider(fake, "records", "")
	_, err := p.Read(context.Background(), records.KindInventory)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped access error, got %v", err)
	}
}

func TestNewS3Provider_RequiresBucket(t *testing.T) {
	if _, err := NewS3Provider(context.Background(), S3Config{}); err == nil {
		t.Error("expected error without bucket")
	}
}

// -- fake postgres --

type fakeRow struct {
	payload []byte
	err     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

type fakePG struct {
	rows  map[string][]byte
	execs []string
}

func (f *fakePG) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if strings.HasPrefix(strings.TrimSpace(sql), "INSERT") {
		f.rows[args[0].(string)] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakePG) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	b, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{payload: b}
}

func TestPostgresProvider(t *testing.T) {
	fake := &fakePG{rows: make(map[string][]byte)}
	p, err := newPostgresProvider(context.Background(), fake)
	if err != nil {
		t.Fatalf("newPostgresProvider: %v", err)
	}
	if len(fake.execs) != 1 || !strings.Contains(fake.execs[0], "CREATE TABLE IF NOT EXISTS hms_snapshots") {
		t.Errorf("expected table creation, got %v", fake.execs)
	}
	exerciseProvider(t, p)
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewPostgresProvider_RequiresURL(t *testing.T) {
	if _, err := NewPostgresProvider(context.Background(), "", 1, 1); err == nil {
		t.Error("expected error without database url")
	}
}

// -- fake couchbase --

type fakeDocs struct {
	upserts map[string][]byte
	getErr  error
}

func (f *fakeDocs) Get(_ string, _ *gocb.GetOptions) (*gocb.GetResult, error) {
	return nil, f.getErr
}

func (f *fakeDocs) Upsert(id string, val interface{}, opts *gocb.UpsertOptions) (*gocb.MutationResult, error) {
	if opts == nil || opts.Transcoder == nil {
		return nil, errors.New("expected a raw binary transcoder")
	}
	f.upserts[id] = val.([]byte)
	return &gocb.MutationResult{}, nil
}

func TestCouchbaseProvider_NotFound(t *testing.T) {
	p := newCouchbaseProvider(&fakeDocs{getErr: gocb.ErrDocumentNotFound})
	if _, err := p.Read(context.Background(), records.KindDoctors); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCouchbaseProvider_ReadError(t *testing.T) {
	p := newCouchbaseProvider(&fakeDocs{getErr: gocb.ErrTimeout})
	_, err := p.Read(context.Background(), records.KindDoctors)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestCouchbaseProvider_Write(t *testing.T) {
	fake := &fakeDocs{upserts: make(map[string][]byte)}
	p := newCouchbaseProvider(fake)
	if err := p.Write(context.Background(), records.KindAppointments, []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(fake.upserts["hms::appointments"]) != "[]" {
		t.Errorf("expected document hms::appointments, got %v", fake.upserts)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close without cluster: %v", err)
	}
}

func TestNewCouchbaseProvider_RequiresURL(t *testing.T) {
	if _, err := NewCouchbaseProvider(CouchbaseConfig{Bucket: "hms"}); err == nil {
		t.Error("expected error without url")
	}
}
