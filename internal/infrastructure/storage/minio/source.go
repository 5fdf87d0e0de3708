package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
)

const uriScheme = "s3://"

// IsObjectURI reports whether location names an object rather than a file.
func IsObjectURI(location string) bool {
	return strings.HasPrefix(location, uriScheme)
}

// ParseURI splits s3://bucket/key. An empty bucket ("s3:///key") selects
// defaultBucket.
func ParseURI(uri, defaultBucket string) (bucket, key string, err error) {
	if !IsObjectURI(uri) {
		return "", "", fmt.Errorf("minio: %q is not an s3:// URI", uri)
	}
	rest := strings.TrimPrefix(uri, uriScheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	key = strings.TrimLeft(key, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("minio: %q must name a bucket and an object key", uri)
	}
	return bucket, key, nil
}

// CorpusSource fetches a corpus document from object storage.
type CorpusSource struct {
	store  ObjectStore
	bucket string
	key    string
}

var _ corpus.Source = (*CorpusSource)(nil)

func NewCorpusSource(store ObjectStore, uri, defaultBucket string) (*CorpusSource, error) {
	bucket, key, err := ParseURI(uri, defaultBucket)
	if err != nil {
		return nil, err
	}
	return &CorpusSource{store: store, bucket: bucket, key: key}, nil
}

// Name keeps the key's extension visible for format detection.
func (s *CorpusSource) Name() string {
	return uriScheme + path.Join(s.bucket, s.key)
}

func (s *CorpusSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.store.Get(ctx, s.bucket, s.key)
}

// Upload writes an encoded corpus document to uri.
func Upload(ctx context.Context, store ObjectStore, uri, defaultBucket string, data []byte, format corpus.Format) error {
	bucket, key, err := ParseURI(uri, defaultBucket)
	if err != nil {
		return err
	}
	contentType := "application/json"
	if format == corpus.FormatYAML {
		contentType = "application/yaml"
	}
	return store.Put(ctx, bucket, key, data, contentType)
}

//Personal.AI order the ending
