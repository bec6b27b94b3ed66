package projection

import "context"

// indexHandle is the minimal surface this package needs from
// searchindex.Index, named separately so dispatch and checkpoint logic
// can be exercised against a fake in tests, matching the
// allStreamsSubscriber narrowing already used for the subscription
// client.
type indexHandle interface {
	AddDocuments(ctx context.Context, documents any, primaryKey string) (int64, error)
	AddOrUpdate(ctx context.Context, documents any, primaryKey string) (int64, error)
	GetDocument(ctx context.Context, id string, dst any) error
	DeleteDocument(ctx context.Context, id string) (int64, error)
	DeleteDocuments(ctx context.Context, ids []string) (int64, error)
	WaitForTask(ctx context.Context, taskUID int64) (bool, error)
}
