// Package searchindex wraps meilisearch-go down to exactly the six
// operations the projection worker needs: add, add-or-update, get,
// delete-one, delete-many and wait-for-task. Nothing here is a general
// Meilisearch client; every other capability of the library (search,
// settings, synonyms) is intentionally unreachable through this type.
package searchindex

import (
	"context"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"golang.org/x/time/rate"
)

// pollLimiter caps how often WaitForTask re-polls a task that came back
// Timeout, so a slow Meilisearch instance can't be hammered by a tight
// retry loop.
var pollLimiter = rate.NewLimiter(rate.Limit(10), 1)

// Client owns one underlying meilisearch.Client and hands out bound
// Index handles by name.
type Client struct {
	raw meilisearch.ServiceManager
}

// Config names the Meilisearch host and API key, populated by
// internal/config.
type Config struct {
	Host   string
	APIKey string
}

// New connects a Client to the configured Meilisearch instance.
func New(cfg Config) *Client {
	return &Client{raw: meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))}
}

// Health reports whether the Meilisearch instance is reachable and
// healthy, for use by the readiness endpoint.
func (c *Client) Health(ctx context.Context) error {
	healthy, err := c.raw.IsHealthy()
	if err != nil {
		return fmt.Errorf("searchindex: health check: %w", err)
	}
	if !healthy {
		return fmt.Errorf("searchindex: instance reports unhealthy")
	}
	return nil
}

// Index returns a handle bound to a single named index, e.g.
// "prostitute" or "eventstore_version".
func (c *Client) Index(uid string) *Index {
	return &Index{raw: c.raw.Index(uid), client: c.raw}
}

// Index is a handle scoped to one Meilisearch index.
type Index struct {
	raw    meilisearch.IndexManager
	client meilisearch.ServiceManager
}

// AddDocuments adds documents keyed by primaryKey; a stored document
// with the same key is replaced whole.
func (i *Index) AddDocuments(ctx context.Context, documents any, primaryKey string) (int64, error) {
	task, err := i.raw.AddDocuments(documents, primaryKey)
	if err != nil {
		return 0, fmt.Errorf("searchindex: add documents: %w", err)
	}
	return task.TaskUID, nil
}

// AddOrUpdate partially updates existing documents, or creates them if
// absent, merging the given fields into any stored document.
func (i *Index) AddOrUpdate(ctx context.Context, documents any, primaryKey string) (int64, error) {
	task, err := i.raw.UpdateDocuments(documents, primaryKey)
	if err != nil {
		return 0, fmt.Errorf("searchindex: update documents: %w", err)
	}
	return task.TaskUID, nil
}

// GetDocument fetches a single document by id into dst.
func (i *Index) GetDocument(ctx context.Context, id string, dst any) error {
	if err := i.raw.GetDocument(id, nil, dst); err != nil {
		return fmt.Errorf("searchindex: get document %s: %w", id, err)
	}
	return nil
}

// DeleteDocument removes a single document by id.
func (i *Index) DeleteDocument(ctx context.Context, id string) (int64, error) {
	task, err := i.raw.DeleteDocument(id)
	if err != nil {
		return 0, fmt.Errorf("searchindex: delete document %s: %w", id, err)
	}
	return task.TaskUID, nil
}

// DeleteDocuments removes a batch of documents by id.
func (i *Index) DeleteDocuments(ctx context.Context, ids []string) (int64, error) {
	task, err := i.raw.DeleteDocuments(ids)
	if err != nil {
		return 0, fmt.Errorf("searchindex: delete documents: %w", err)
	}
	return task.TaskUID, nil
}

// WaitForTask blocks until taskUID reaches a terminal state (Succeeded
// or Failed), retrying on Timeout as spec'd, and reports whether it
// succeeded.
func (i *Index) WaitForTask(ctx context.Context, taskUID int64) (succeeded bool, err error) {
	for {
		if err := pollLimiter.Wait(ctx); err != nil {
			return false, err
		}
		task, werr := i.client.WaitForTask(taskUID, 50*time.Millisecond)
		if werr != nil {
			return false, fmt.Errorf("searchindex: wait for task %d: %w", taskUID, werr)
		}
		switch task.Status {
		case meilisearch.TaskStatusSucceeded:
			return true, nil
		case meilisearch.TaskStatusFailed:
			return false, nil
		default:
			continue
		}
	}
}
