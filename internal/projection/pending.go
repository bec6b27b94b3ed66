package projection

import "context"

// searchIndexWaiter is the minimal surface pendingTask needs from
// searchindex.Index, named separately so it can be faked in tests.
type searchIndexWaiter interface {
	WaitForTask(ctx context.Context, taskUID int64) (bool, error)
}

// pendingTask tracks the most recent asynchronous index task issued
// against one index, so a read-modify-write dispatch step (the
// Prostitute question/image ordering operations) can drain it before
// fetching — otherwise the fetch could race the previous write and the
// in-memory apply would start from stale state.
type pendingTask struct {
	index   searchIndexWaiter
	taskUID int64
	pending bool
}

func newPendingTask(idx searchIndexWaiter) *pendingTask {
	return &pendingTask{index: idx}
}

// set records taskUID as the latest in-flight task on this index.
func (p *pendingTask) set(taskUID int64) {
	p.taskUID = taskUID
	p.pending = true
}

// drain waits for the latest recorded task, if any, to finish. Safe to
// call when nothing is pending.
func (p *pendingTask) drain(ctx context.Context) error {
	if !p.pending {
		return nil
	}
	_, err := p.index.WaitForTask(ctx, p.taskUID)
	p.pending = false
	return err
}
