package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchbase/gocb/v2"

	"github.com/hms/hms/internal/records"
)

// documentAPI is the subset of *gocb.Collection the provider uses.
type documentAPI interface {
	Get(id string, opts *gocb.GetOptions) (*gocb.GetResult, error)
	Upsert(id string, val interface{}, opts *gocb.UpsertOptions) (*gocb.MutationResult, error)
}

// CouchbaseConfig holds connection parameters for the Couchbase provider.
type CouchbaseConfig struct {
	URL      string
	Username string
	Password string
	Bucket   string
}

// CouchbaseProvider stores each collection as the raw binary document hms::<kind>.
type CouchbaseProvider struct {
	docs       documentAPI
	transcoder gocb.Transcoder
	cluster    *gocb.Cluster
}

// NewCouchbaseProvider connects to the cluster and opens the bucket's default collection.
func NewCouchbaseProvider(cfg CouchbaseConfig) (*CouchbaseProvider, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("couchbase provider requires url and bucket")
	}
	connStr := cfg.URL
	if rest, ok := strings.CutPrefix(connStr, "http://"); ok {
		connStr = "couchbase://" + rest
	} else if !strings.Contains(connStr, "://") {
		connStr = "couchbase://" + connStr
	}

	cluster, err := gocb.Connect(connStr, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}
	if err := cluster.WaitUntilReady(30*time.Second, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("failed to wait for cluster: %w", err)
	}

	bucket := cluster.Bucket(cfg.Bucket)
	if err := bucket.WaitUntilReady(10*time.Second, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("bucket %q is not accessible: %w", cfg.Bucket, err)
	}

	p := newCouchbaseProvider(bucket.DefaultCollection())
	p.cluster = cluster
	return p, nil
}

func newCouchbaseProvider(docs documentAPI) *CouchbaseProvider {
	return &CouchbaseProvider{docs: docs, transcoder: gocb.NewRawBinaryTranscoder()}
}

// DocumentID returns the document key backing a collection.
func (p *CouchbaseProvider) DocumentID(kind records.Kind) string {
	return "hms::" + string(kind)
}

func (p *CouchbaseProvider) Read(ctx context.Context, kind records.Kind) ([]byte, error) {
	res, err := p.docs.Get(p.DocumentID(kind), &gocb.GetOptions{Transcoder: p.transcoder, Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", p.DocumentID(kind), err)
	}
	var payload []byte
	if err := res.Content(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse document content: %w", err)
	}
	return payload, nil
}

func (p *CouchbaseProvider) Write(ctx context.Context, kind records.Kind, payload []byte) error {
	_, err := p.docs.Upsert(p.DocumentID(kind), payload, &gocb.UpsertOptions{Transcoder: p.transcoder, Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", p.DocumentID(kind), err)
	}
	return nil
}

func (p *CouchbaseProvider) Driver() Driver { return DriverCouchbase }

func (p *CouchbaseProvider) Close() error {
	if p.cluster == nil {
		return nil
	}
	return p.cluster.Close(nil)
}
