package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store wraps an S3-compatible object store. All documents live in one master
// bucket; folders own a key prefix recorded on the Folder row.
type Store struct {
	client       *minio.Client
	masterBucket string
}

type Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	MasterBucket string
}

func New(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &Store{
		client:       client,
		masterBucket: cfg.MasterBucket,
	}, nil
}

func (s *Store) MasterBucket() string {
	return s.masterBucket
}

// EnsureBucket creates the master bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.masterBucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.masterBucket, minio.MakeBucketOptions{})
}

func (s *Store) Upload(ctx context.Context, key string, content []byte) error {
	_, err := s.client.PutObject(ctx, s.masterBucket, key,
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{})
	return err
}

func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.masterBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.masterBucket, key, minio.RemoveObjectOptions{})
}

// DeletePrefix removes every object under a folder's prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	objects := s.client.ListObjects(ctx, s.masterBucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return obj.Err
		}
		if err := s.client.RemoveObject(ctx, s.masterBucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}
