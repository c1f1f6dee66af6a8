package blob

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/semaphore"
)

// Cap on simultaneous object-store operations; callers queue behind the
// semaphore instead of failing.
const maxConcurrentOps = 10

// Store puts and deletes image objects in a MinIO/S3-compatible bucket and
// hands out public URLs.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
	sem       *semaphore.Weighted
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

func New(opts Options) (*Store, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("blob: endpoint, credentials and bucket are required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: create client: %w", err)
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
	}

	s := &Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		sem:       semaphore.NewWeighted(maxConcurrentOps),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("blob: create bucket: %w", err)
		}
	}
	log.Printf("blob: connected to %s bucket %s", opts.Endpoint, opts.Bucket)
	return s, nil
}

// Put uploads data under a uuid-prefixed object name and returns its public
// URL.
func (s *Store) Put(ctx context.Context, data []byte, name, contentType string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	objectName := uuid.NewString() + "_" + sanitizeObjectName(name)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("blob: upload %s: %w", objectName, err)
	}
	return s.publicURL + "/" + objectName, nil
}

// Delete removes the object behind a public URL. It reports success instead
// of returning an error so rejection flows can treat it as best-effort.
func (s *Store) Delete(ctx context.Context, publicURL string) bool {
	objectName := strings.TrimPrefix(publicURL, s.publicURL+"/")
	if objectName == publicURL || objectName == "" {
		log.Printf("blob: cannot map %s to an object name", publicURL)
		return false
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer s.sem.Release(1)

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("blob: delete %s: %v", objectName, err)
		return false
	}
	return true
}

func sanitizeObjectName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "upload"
	}
	return name
}
