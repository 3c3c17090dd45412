package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deckpilot/deckpilot/internal/common"
)

func TestParseStatus(t *testing.T) {
	require.Equal(t, StatusCompleted, ParseStatus("COMPLETED"))
	require.Equal(t, StatusCompleted, ParseStatus("completed"))
	require.Equal(t, StatusFailed, ParseStatus("Failed"))
	require.Equal(t, StatusPending, ParseStatus(" pending "))
	require.Equal(t, StatusProcessing, ParseStatus("processing"))
	require.Equal(t, StatusUnknown, ParseStatus("weird"))

	require.True(t, StatusCompleted.Terminal())
	require.True(t, StatusFailed.Terminal())
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusProcessing.Terminal())
}

func TestDecodeProgress_PerKind(t *testing.T) {
	raw := json.RawMessage(`{"stage":"converting","completed":2,"total":10}`)

	p, err := DecodeProgress(KindPDFConversion, raw)
	require.NoError(t, err)
	require.IsType(t, &ConversionProgress{}, p)
	require.Equal(t, 20, p.Percent())
	require.Equal(t, "converting", p.Stage())

	p, err = DecodeProgress(KindImageGeneration, raw)
	require.NoError(t, err)
	require.IsType(t, &ImageProgress{}, p)

	p, err = DecodeProgress(KindEditableExport, raw)
	require.NoError(t, err)
	require.IsType(t, &ExportProgress{}, p)

	p, err = DecodeProgress(KindPDFConversion, nil)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = DecodeProgress(KindPDFConversion, json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestProgress_PercentBounds(t *testing.T) {
	require.Equal(t, -1, (&ImageProgress{Completed: 1, Total: 0}).Percent())
	require.Equal(t, 100, (&ImageProgress{Completed: 12, Total: 10}).Percent())
	require.Equal(t, 0, (&ImageProgress{Completed: 0, Total: 10}).Percent())
}

// scriptedFetch replays snapshots in order and counts invocations.
type scriptedFetch struct {
	mu    sync.Mutex
	calls int
	steps []*Snapshot
	errs  []error
}

func (f *scriptedFetch) fetch(ctx context.Context) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	return f.steps[i], nil
}

func (f *scriptedFetch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPoller_StopsExactlyOnceAtTerminal(t *testing.T) {
	fetch := &scriptedFetch{steps: []*Snapshot{
		{TaskID: "t1", Status: StatusPending},
		{TaskID: "t1", Status: StatusProcessing},
		{TaskID: "t1", Status: StatusCompleted, DownloadURL: "/files/x.pptx"},
	}}

	var updates []Status
	p := New("t1", KindPDFConversion, fetch.fetch,
		WithInterval(time.Millisecond),
		WithOnUpdate(func(s *Snapshot) { updates = append(updates, s.Status) }))

	snap, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, snap.Status)
	require.Equal(t, "/files/x.pptx", snap.DownloadURL)

	// No further status request after the terminal one.
	require.Equal(t, 3, fetch.count())
	require.Equal(t, []Status{StatusPending, StatusProcessing, StatusCompleted}, updates)

	// Sleep past a few intervals: still no extra fetch.
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 3, fetch.count())
}

func TestPoller_ConversionScenario(t *testing.T) {
	// First poll: processing with 2/10 -> 20%. Second: COMPLETED + URL.
	prog, err := DecodeProgress(KindPDFConversion, json.RawMessage(`{"completed":2,"total":10}`))
	require.NoError(t, err)

	fetch := &scriptedFetch{steps: []*Snapshot{
		{TaskID: "t", Status: ParseStatus("processing"), Progress: prog},
		{TaskID: "t", Status: ParseStatus("COMPLETED"), DownloadURL: "/files/x.pptx"},
	}}

	var percents []int
	p := New("t", KindPDFConversion, fetch.fetch,
		WithInterval(time.Millisecond),
		WithOnUpdate(func(s *Snapshot) {
			if s.Progress != nil {
				percents = append(percents, s.Progress.Percent())
			}
		}))

	snap, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, snap.Status)
	require.Equal(t, "/files/x.pptx", snap.DownloadURL)
	require.Equal(t, []int{20}, percents)
	require.Equal(t, 2, fetch.count())
}

func TestPoller_FailedCarriesServerMessage(t *testing.T) {
	fetch := &scriptedFetch{steps: []*Snapshot{
		{TaskID: "t", Status: StatusFailed, ErrorMessage: "conversion engine crashed"},
	}}

	p := New("t", KindPDFConversion, fetch.fetch, WithInterval(time.Millisecond))
	snap, err := p.Run(context.Background())
	require.ErrorIs(t, err, common.ErrTaskFailed)
	require.Contains(t, err.Error(), "conversion engine crashed")
	require.Equal(t, StatusFailed, snap.Status)
	require.Equal(t, 1, fetch.count())
}

func TestPoller_AttemptCeiling(t *testing.T) {
	fetch := &scriptedFetch{steps: []*Snapshot{{TaskID: "t", Status: StatusProcessing}}}

	p := New("t", KindImageGeneration, fetch.fetch,
		WithInterval(time.Millisecond), WithMaxAttempts(3))

	snap, err := p.Run(context.Background())
	require.ErrorIs(t, err, common.ErrStillProcessing)
	require.NotNil(t, snap)
	require.Equal(t, StatusProcessing, snap.Status)
	// Initial attempt plus three retries.
	require.Equal(t, 4, fetch.count())
}

func TestPoller_TransientFetchErrorsAreRetried(t *testing.T) {
	fetch := &scriptedFetch{
		errs: []error{errors.New("connection reset"), nil},
		steps: []*Snapshot{
			nil,
			{TaskID: "t", Status: StatusCompleted},
		},
	}

	p := New("t", KindImageGeneration, fetch.fetch, WithInterval(time.Millisecond))
	snap, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, snap.Status)
}

func TestPoller_UnauthorizedStopsImmediately(t *testing.T) {
	fetch := &scriptedFetch{errs: []error{common.ErrUnauthorized}}

	p := New("t", KindImageGeneration, fetch.fetch, WithInterval(time.Millisecond))
	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Equal(t, 1, fetch.count())
}

func TestPoller_CancelStopsPolling(t *testing.T) {
	fetch := &scriptedFetch{steps: []*Snapshot{{TaskID: "t", Status: StatusProcessing}}}

	ctx, cancel := context.WithCancel(context.Background())
	p := New("t", KindImageGeneration, fetch.fetch, WithInterval(5*time.Millisecond))

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(ctx)
		done <- err
	}()

	time.Sleep(12 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}

	calls := fetch.count()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, calls, fetch.count(), "no fetches after cancellation")
}

func TestTracker_SupersedesSlot(t *testing.T) {
	blockers := make(chan struct{})
	var stale atomic.Bool

	slow := func(ctx context.Context) (*Snapshot, error) {
		select {
		case <-ctx.Done():
			stale.Store(true)
			return nil, ctx.Err()
		case <-blockers:
			return &Snapshot{TaskID: "old", Status: StatusCompleted}, nil
		}
	}
	fast := &scriptedFetch{steps: []*Snapshot{{TaskID: "new", Status: StatusCompleted}}}

	tr := NewTracker(nil)
	ctx := context.Background()

	first := tr.Track(ctx, SlotPDFConversion, New("old", KindPDFConversion, slow, WithInterval(time.Millisecond)))
	require.True(t, tr.Active(SlotPDFConversion))

	second := tr.Track(ctx, SlotPDFConversion, New("new", KindPDFConversion, fast.fetch, WithInterval(time.Millisecond)))

	res := <-second
	require.NoError(t, res.Err)
	require.Equal(t, "new", res.Snapshot.TaskID)

	res = <-first
	require.ErrorIs(t, res.Err, context.Canceled)
	require.True(t, stale.Load())
	require.False(t, tr.Active(SlotPDFConversion))
}

func TestTracker_IndependentSlotsRunConcurrently(t *testing.T) {
	release := make(chan struct{})

	gated := func(id string) FetchFunc {
		return func(ctx context.Context) (*Snapshot, error) {
			select {
			case <-release:
				return &Snapshot{TaskID: id, Status: StatusCompleted}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	tr := NewTracker(nil)
	ctx := context.Background()

	a := tr.Track(ctx, PageImageSlot("p1"), New("a", KindImageGeneration, gated("a"), WithInterval(time.Millisecond)))
	b := tr.Track(ctx, PageImageSlot("p2"), New("b", KindImageGeneration, gated("b"), WithInterval(time.Millisecond)))

	require.True(t, tr.Active(PageImageSlot("p1")))
	require.True(t, tr.Active(PageImageSlot("p2")))

	close(release)

	ra, rb := <-a, <-b
	require.NoError(t, ra.Err)
	require.NoError(t, rb.Err)
	require.Equal(t, "a", ra.Snapshot.TaskID)
	require.Equal(t, "b", rb.Snapshot.TaskID)
}

func TestTracker_CancelAll(t *testing.T) {
	blocked := func(ctx context.Context) (*Snapshot, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	tr := NewTracker(nil)
	ctx := context.Background()
	a := tr.Track(ctx, SlotProjectImages, New("a", KindImageGeneration, blocked, WithInterval(time.Millisecond)))
	b := tr.Track(ctx, SlotEditableExport, New("b", KindEditableExport, blocked, WithInterval(time.Millisecond)))

	tr.CancelAll()

	require.ErrorIs(t, (<-a).Err, context.Canceled)
	require.ErrorIs(t, (<-b).Err, context.Canceled)
	require.False(t, tr.Active(SlotProjectImages))
	require.False(t, tr.Active(SlotEditableExport))
}
