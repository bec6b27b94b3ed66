package projection

import (
	"context"
	"testing"

	"github.com/kuraya-dely/dely/internal/eventstore"
)

func TestLoadCheckpointNotFoundStartsFromBeginning(t *testing.T) {
	idx := newFakeIndex()
	pos, found, err := loadCheckpoint(context.Background(), idx)
	if err != nil {
		t.Fatalf("loadCheckpoint: %v", err)
	}
	if found {
		t.Error("expected found=false on an empty index")
	}
	if pos != (eventstore.Position{}) {
		t.Errorf("pos = %+v, want zero value", pos)
	}
}

func TestSaveThenLoadCheckpointRoundTrips(t *testing.T) {
	ctx := context.Background()
	idx := newFakeIndex()
	want := eventstore.Position{Commit: 42, Prepare: 41}

	if err := saveCheckpoint(ctx, idx, "event-1", want); err != nil {
		t.Fatalf("saveCheckpoint: %v", err)
	}

	pos, found, err := loadCheckpoint(ctx, idx)
	if err != nil {
		t.Fatalf("loadCheckpoint: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after saving a checkpoint")
	}
	if pos != want {
		t.Errorf("pos = %+v, want %+v", pos, want)
	}
}

func TestSaveCheckpointOverwritesPreviousPosition(t *testing.T) {
	ctx := context.Background()
	idx := newFakeIndex()

	if err := saveCheckpoint(ctx, idx, "event-1", eventstore.Position{Commit: 1, Prepare: 1}); err != nil {
		t.Fatalf("first saveCheckpoint: %v", err)
	}
	if err := saveCheckpoint(ctx, idx, "event-2", eventstore.Position{Commit: 2, Prepare: 2}); err != nil {
		t.Fatalf("second saveCheckpoint: %v", err)
	}

	pos, found, err := loadCheckpoint(ctx, idx)
	if err != nil {
		t.Fatalf("loadCheckpoint: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if pos.Commit != 2 {
		t.Errorf("Commit = %d, want 2", pos.Commit)
	}
}
