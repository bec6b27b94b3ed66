package projection

import (
	"context"
	"errors"
	"testing"
)

type fakeWaiter struct {
	waited []int64
	err    error
}

func (f *fakeWaiter) WaitForTask(ctx context.Context, taskUID int64) (bool, error) {
	f.waited = append(f.waited, taskUID)
	return f.err == nil, f.err
}

func TestPendingTaskDrainNoopWhenNothingPending(t *testing.T) {
	fake := &fakeWaiter{}
	p := newPendingTask(fake)
	if err := p.drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(fake.waited) != 0 {
		t.Errorf("expected no WaitForTask calls, got %v", fake.waited)
	}
}

func TestPendingTaskDrainWaitsOnSetTask(t *testing.T) {
	fake := &fakeWaiter{}
	p := newPendingTask(fake)
	p.set(42)
	if err := p.drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(fake.waited) != 1 || fake.waited[0] != 42 {
		t.Errorf("expected WaitForTask(42), got %v", fake.waited)
	}
}

func TestPendingTaskDrainClearsPendingEvenOnError(t *testing.T) {
	fake := &fakeWaiter{err: errors.New("task failed")}
	p := newPendingTask(fake)
	p.set(7)
	if err := p.drain(context.Background()); err == nil {
		t.Fatal("expected error from drain")
	}
	if p.pending {
		t.Error("pending must be cleared even when the task failed")
	}

	// A second drain with nothing newly set must not re-wait.
	if err := p.drain(context.Background()); err != nil {
		t.Fatalf("second drain should be a no-op, got %v", err)
	}
	if len(fake.waited) != 1 {
		t.Errorf("expected exactly one WaitForTask call, got %d", len(fake.waited))
	}
}
