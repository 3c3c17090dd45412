package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/logging"
)

const (
	// DefaultInterval is the fixed delay between status fetches.
	DefaultInterval = 2 * time.Second
	// DefaultMaxAttempts bounds a poll loop (~5 minutes at the default
	// interval). A job still running past the ceiling surfaces
	// common.ErrStillProcessing instead of polling forever.
	DefaultMaxAttempts = 150
)

// Snapshot is one observed state of a server-side task.
type Snapshot struct {
	TaskID       string
	Kind         Kind
	Status       Status
	Progress     Progress // nil when the server sent none
	DownloadURL  string
	ErrorMessage string
}

// FetchFunc retrieves the current state of one task. The api layer binds
// one per endpoint family.
type FetchFunc func(ctx context.Context) (*Snapshot, error)

// Poller drives a single task to a terminal state.
type Poller struct {
	taskID      string
	kind        Kind
	fetch       FetchFunc
	interval    time.Duration
	maxAttempts uint64
	onUpdate    func(*Snapshot)
	log         logging.Logger

	mu   sync.Mutex
	last *Snapshot
}

// Option customizes a Poller.
type Option func(*Poller)

// WithInterval overrides the fixed polling interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMaxAttempts overrides the polling attempt ceiling.
func WithMaxAttempts(n uint64) Option {
	return func(p *Poller) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithOnUpdate registers a callback invoked with every observed snapshot,
// including the terminal one. Called from the polling goroutine.
func WithOnUpdate(fn func(*Snapshot)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// WithLogger attaches a logger for non-fatal fetch errors.
func WithLogger(log logging.Logger) Option {
	return func(p *Poller) { p.log = log }
}

// New constructs a poller for one task.
func New(taskID string, kind Kind, fetch FetchFunc, opts ...Option) *Poller {
	p := &Poller{
		taskID:      taskID,
		kind:        kind,
		fetch:       fetch,
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// TaskID returns the tracked task identifier.
func (p *Poller) TaskID() string { return p.taskID }

// Last returns the most recently observed snapshot, or nil.
func (p *Poller) Last() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Poller) publish(s *Snapshot) {
	p.mu.Lock()
	p.last = s
	p.mu.Unlock()
	if p.onUpdate != nil {
		p.onUpdate(s)
	}
}

// Run polls until a terminal status, context cancellation, or attempt
// exhaustion. After the first terminal snapshot no further status request
// is issued.
//
// Returns:
//   - (snap, nil) for StatusCompleted;
//   - (snap, common.ErrTaskFailed-wrapped) for StatusFailed;
//   - (last, common.ErrStillProcessing) when the attempt ceiling is hit;
//   - (last, ctx.Err()) on cancellation.
func (p *Poller) Run(ctx context.Context) (*Snapshot, error) {
	var terminal *Snapshot

	backoff := retry.WithMaxRetries(p.maxAttempts, retry.NewConstant(p.interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		snap, err := p.fetch(ctx)
		if err != nil {
			// Auth loss will not heal by itself; everything else is a
			// transient fetch failure and the loop keeps going.
			if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrForbidden) {
				return err
			}
			if p.log != nil {
				p.log.Warn(ctx, "task status fetch failed", "task_id", p.taskID, "error", err)
			}
			return retry.RetryableError(err)
		}

		p.publish(snap)

		if snap.Status.Terminal() {
			terminal = snap
			return nil
		}
		return retry.RetryableError(common.ErrStillProcessing)
	})

	if err != nil {
		if ctx.Err() != nil {
			return p.Last(), ctx.Err()
		}
		if errors.Is(err, common.ErrStillProcessing) {
			return p.Last(), common.ErrStillProcessing
		}
		return p.Last(), err
	}

	if terminal.Status == StatusFailed {
		msg := terminal.ErrorMessage
		if msg == "" {
			msg = "no error details reported"
		}
		return terminal, fmt.Errorf("%w: %s", common.ErrTaskFailed, msg)
	}
	return terminal, nil
}
