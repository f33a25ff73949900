package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ObjectConfig locates the bucket prefix holding post documents.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// bucket is the slice of the S3 API the store needs.
type bucket interface {
	keys(ctx context.Context, prefix string) ([]string, error)
	get(ctx context.Context, key string) ([]byte, error)
}

// Object exposes the objects directly under a bucket prefix as content
// entries. Nested prefixes are ignored.
type Object struct {
	bucket bucket
	prefix string
}

var _ interfaces.ContentStore = (*Object)(nil)

// NewObject connects to an S3 compatible endpoint. The bucket is only read.
func NewObject(cfg ObjectConfig) (*Object, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("store: object endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("store: object credentials are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("store: object bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("store: create object client: %w", err)
	}

	return newObject(&minioBucket{client: client, name: cfg.Bucket}, cfg.Prefix), nil
}

func newObject(b bucket, prefix string) *Object {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Object{bucket: b, prefix: prefix}
}

// List returns the objects under the prefix in lexical order.
func (s *Object) List(ctx context.Context) ([]interfaces.ContentEntry, error) {
	keys, err := s.bucket.keys(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("store: list objects: %w", err)
	}

	entries := make([]interfaces.ContentEntry, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, s.prefix)
		if !IsPlainName(name) {
			continue
		}
		entries = append(entries, interfaces.ContentEntry{Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Read fetches the named object below the prefix.
func (s *Object) Read(ctx context.Context, name string) ([]byte, error) {
	if !IsPlainName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}
	data, err := s.bucket.get(ctx, s.prefix+name)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return data, nil
}

type minioBucket struct {
	client *minio.Client
	name   string
}

func (b *minioBucket) keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for object := range b.client.ListObjects(ctx, b.name, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		if strings.HasSuffix(object.Key, "/") {
			continue
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

func (b *minioBucket) get(ctx context.Context, key string) ([]byte, error) {
	object, err := b.client.GetObject(ctx, b.name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapObjectError(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, mapObjectError(err)
	}
	return data, nil
}

// mapObjectError folds missing key responses into fs.ErrNotExist.
func mapObjectError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.Join(fs.ErrNotExist, err)
	}
	return err
}
