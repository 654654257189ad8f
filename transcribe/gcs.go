package transcribe

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// stager copies local audio somewhere the Speech API can read it by URI.
type stager interface {
	Stage(ctx context.Context, localPath string) (uri string, cleanup func(), err error)
	Close() error
}

type gcsStager struct {
	c      *storage.Client
	bucket string
	prefix string
}

func newGCSStager(ctx context.Context, bucket string, opts ...option.ClientOption) (*gcsStager, error) {
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &gcsStager{c: c, bucket: bucket, prefix: "teachlens/audio"}, nil
}

func (s *gcsStager) Stage(ctx context.Context, localPath string) (string, func(), error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	key := path.Join(s.prefix, uuid.NewString(), filepath.Base(localPath))
	obj := s.c.Bucket(s.bucket).Object(key)

	upCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	w := obj.NewWriter(upCtx)
	w.ContentType = "audio/wav"
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", nil, fmt.Errorf("write gcs object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("close gcs writer: %w", err)
	}

	cleanup := func() {
		delCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = obj.Delete(delCtx)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, key), cleanup, nil
}

func (s *gcsStager) Close() error { return s.c.Close() }
