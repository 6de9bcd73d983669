// Package mirror pushes local files (the state snapshot, uploaded
// documents) to a Google Cloud Storage bucket, strictly best-effort: the
// caller enqueues and moves on, failures are logged and dropped, and a full
// queue drops the newest job rather than block a mutation.
package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	queueSize     = 32
	uploadTimeout = 60 * time.Second
)

type job struct {
	localPath  string
	remoteName string
}

type Mirror struct {
	client *storage.Client
	bucket string
	prefix string
	lg     *zap.SugaredLogger

	jobs chan job
	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns a ready-but-stopped Mirror, or (nil, nil) when bucket is
// empty: a nil *Mirror is a valid no-op mirror.
func New(ctx context.Context, bucket, prefix, credentialsFile string, lg *zap.SugaredLogger) (*Mirror, error) {
	if bucket == "" {
		return nil, nil
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Mirror{
		client: client,
		bucket: bucket,
		prefix: prefix,
		lg:     lg,
		jobs:   make(chan job, queueSize),
		stop:   make(chan struct{}),
	}, nil
}

func (m *Mirror) Start() {
	if m == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case j := <-m.jobs:
				m.upload(j)
			case <-m.stop:
				// Drain what is already queued, then exit.
				for {
					select {
					case j := <-m.jobs:
						m.upload(j)
					default:
						return
					}
				}
			}
		}
	}()
}

func (m *Mirror) Stop() {
	if m == nil {
		return
	}
	close(m.stop)
	m.wg.Wait()
	_ = m.client.Close()
}

// Enqueue never blocks. Dropping on a full queue is fine for the snapshot
// (the next save re-enqueues the same file) and acceptable for documents
// (the local copy is authoritative).
func (m *Mirror) Enqueue(localPath, remoteName string) {
	if m == nil {
		return
	}
	select {
	case m.jobs <- job{localPath: localPath, remoteName: remoteName}:
	default:
		m.lg.Warnw("mirror queue full, dropping upload", "file", remoteName)
	}
}

func (m *Mirror) upload(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	f, err := os.Open(j.localPath)
	if err != nil {
		m.lg.Warnw("mirror skipped, cannot open file", "path", j.localPath, "error", err)
		return
	}
	defer f.Close()

	object := m.prefix + j.remoteName
	w := m.client.Bucket(m.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		m.lg.Warnw("mirror upload failed", "object", object, "error", err)
		return
	}
	if err := w.Close(); err != nil {
		m.lg.Warnw("mirror upload failed", "object", object, "error", err)
		return
	}
	m.lg.Infow("mirrored", "object", object, "bucket", m.bucket)
}
