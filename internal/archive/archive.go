// Package archive writes point-in-time JSON snapshots of all blogs to object storage.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
)

// LinkTTL is how long the returned download link stays valid.
const LinkTTL = 15 * time.Minute

// ObjectStore is the slice of storage.MinIOStorage the archiver needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// BlogLister returns every blog, sorted by title.
type BlogLister interface {
	List(ctx context.Context) ([]models.Blog, error)
}

// Result describes an uploaded snapshot.
type Result struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type Archiver struct {
	store ObjectStore
	blogs BlogLister
	log   *logger.Logger
	now   func() time.Time
}

func New(store ObjectStore, blogs BlogLister, log *logger.Logger) *Archiver {
	return &Archiver{store: store, blogs: blogs, log: log, now: time.Now}
}

// Snapshot uploads all blogs as one JSON array and returns a presigned link to it.
func (a *Archiver) Snapshot(ctx context.Context) (*Result, error) {
	list, err := a.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, apperr.Wrap("encode snapshot", err)
	}
	key := fmt.Sprintf("blogs/snapshot-%s.json", a.now().UTC().Format("20060102T150405Z"))
	if err := a.store.Put(ctx, key, data, "application/json"); err != nil {
		return nil, apperr.Wrap("upload snapshot", err)
	}
	link, err := a.store.PresignedURL(ctx, key, LinkTTL)
	if err != nil {
		return nil, apperr.Wrap("presign snapshot", err)
	}
	a.log.Infof("archived %d blogs to %s", len(list), key)
	return &Result{Key: key, URL: link, Count: len(list)}, nil
}
