// Package minio lets reference corpora live in S3-compatible object storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

var (
	ErrMinIOClientClosed = errors.New(errors.ErrCodeStorageError, "minio client is closed")
	ErrObjectNotFound    = errors.New(errors.ErrCodeNotFound, "object not found")
	ErrBucketNotFound    = errors.New(errors.ErrCodeNotFound, "bucket not found")
)

type MinIOConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// ObjectStore is the subset of object storage the engine needs.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// minioAPI is the slice of *minio.Client used here.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinIOClient struct {
	client minioAPI
	config *MinIOConfig
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewMinIOClient connects and verifies that the configured bucket exists.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeValidation, "minio endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to minio")
	}
	if !exists {
		return nil, ErrBucketNotFound.WithDetail(cfg.Bucket)
	}

	log.Info("MinIO client connected", logging.String("endpoint", cfg.Endpoint), logging.String("bucket", cfg.Bucket))
	return &MinIOClient{client: client, config: cfg, logger: log}, nil
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "mfr-corpus"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
}

func (c *MinIOClient) DefaultBucket() string { return c.config.Bucket }

func (c *MinIOClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if c.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	obj, err := c.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, bucket, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError(err, bucket, key)
	}
	return data, nil
}

func (c *MinIOClient) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if c.isClosed() {
		return ErrMinIOClientClosed
	}
	_, err := c.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return mapError(err, bucket, key)
	}
	c.logger.Info("object uploaded", logging.String("bucket", bucket), logging.String("key", key), logging.Int("bytes", len(data)))
	return nil
}

func (c *MinIOClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if c.isClosed() {
		return false, ErrMinIOClientClosed
	}
	return c.client.BucketExists(ctx, bucket)
}

// EnsureBucket creates bucket when missing.
func (c *MinIOClient) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to check bucket existence")
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create bucket "+bucket)
	}
	c.logger.Info("Created bucket", logging.String("bucket", bucket))
	return nil
}

func (c *MinIOClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *MinIOClient) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func mapError(err error, bucket, key string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return ErrObjectNotFound.WithDetail(bucket + "/" + key)
	case "NoSuchBucket":
		return ErrBucketNotFound.WithDetail(bucket)
	}
	return errors.Wrap(err, errors.ErrCodeStorageError, "object storage request failed").WithDetail(bucket + "/" + key)
}

//Personal.AI order the ending
