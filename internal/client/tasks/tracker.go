package tasks

import (
	"context"
	"sync"

	"github.com/deckpilot/deckpilot/internal/logging"
)

// Slot names a logical operation the client tracks at most one task for.
// Starting a new task in an occupied slot supersedes the stale poller: the
// server may still run the older job, but the client stops watching it.
type Slot string

const (
	SlotProjectDescriptions Slot = "project_descriptions"
	SlotProjectImages       Slot = "project_images"
	SlotPDFConversion       Slot = "pdf_conversion"
	SlotEditableExport      Slot = "editable_export"
)

// PageImageSlot returns the slot for a single page's image generation.
// Distinct pages use distinct slots and poll concurrently.
func PageImageSlot(pageID string) Slot {
	return Slot("page_image:" + pageID)
}

// Result is the outcome of a tracked poll loop.
type Result struct {
	Snapshot *Snapshot
	Err      error
}

type trackedTask struct {
	poller *Poller
	cancel context.CancelFunc
}

// Tracker owns the set of active pollers, one per slot.
type Tracker struct {
	log logging.Logger

	mu     sync.Mutex
	active map[Slot]*trackedTask
}

func NewTracker(log logging.Logger) *Tracker {
	return &Tracker{log: log, active: make(map[Slot]*trackedTask)}
}

// Track starts the poller in its own goroutine and delivers exactly one
// Result on the returned channel. Any poller previously occupying the slot
// is cancelled first.
func (t *Tracker) Track(ctx context.Context, slot Slot, p *Poller) <-chan Result {
	runCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if prev, ok := t.active[slot]; ok {
		prev.cancel()
		if t.log != nil {
			t.log.Info(ctx, "superseding tracked task",
				"slot", string(slot), "stale_task_id", prev.poller.TaskID(), "task_id", p.TaskID())
		}
	}
	entry := &trackedTask{poller: p, cancel: cancel}
	t.active[slot] = entry
	t.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		defer cancel()
		snap, err := p.Run(runCtx)

		t.mu.Lock()
		if t.active[slot] == entry {
			delete(t.active, slot)
		}
		t.mu.Unlock()

		out <- Result{Snapshot: snap, Err: err}
		close(out)
	}()
	return out
}

// Active reports whether a slot currently has a tracked task.
func (t *Tracker) Active(slot Slot) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[slot]
	return ok
}

// Cancel stops tracking the slot's task, if any. The in-flight status
// request is allowed to finish and its result is discarded.
func (t *Tracker) Cancel(slot Slot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.active[slot]; ok {
		entry.cancel()
		delete(t.active, slot)
	}
}

// CancelAll stops tracking every task, e.g. on logout or shutdown.
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for slot, entry := range t.active {
		entry.cancel()
		delete(t.active, slot)
	}
}
