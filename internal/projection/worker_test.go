package projection

import (
	"context"
	"testing"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/extraservice"
	"github.com/kuraya-dely/dely/internal/eventstore"
	"github.com/kuraya-dely/dely/internal/logging"
)

// TestProcessOneRoutesThroughRegistryDecodedEntityKind guards against
// the dispatch table drifting from the entity kind registry.Decode
// actually returns (the codec's EntityKind, recovered from the stream
// name), as opposed to a hand-typed package name.
func TestProcessOneRoutesThroughRegistryDecodedEntityKind(t *testing.T) {
	ctx := context.Background()
	registry := eventstore.NewRegistry(extraservice.Codec{})
	idx, _ := newTestIndexes()
	w := &Worker{
		registry: registry,
		indexes:  idx,
		table:    buildDispatchTable(),
		log:      logging.New("test", "error"),
	}

	price := core.NewPrice(core.JPYAmount(3000), core.OneTime)
	created := extraservice.Created{ID: 2, Name: "course", Description: "desc", Price: price}
	env, err := registry.Encode(extraservice.EntityKind, core.ID(2), created)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	w.processOne(ctx, record{Envelope: env})

	var doc extraServiceDoc
	if err := idx.ExtraService.GetDocument(ctx, "2", &doc); err != nil {
		t.Fatalf("expected ExtraServiceCreated to reach the index via the decoded entity kind: %v", err)
	}
	if doc.Name != "course" {
		t.Errorf("Name = %q, want course", doc.Name)
	}
}
