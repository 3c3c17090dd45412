// Package project keeps the client's working copy of one slide project in
// sync with the server and drives the generation pipeline against it.
package project

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/models"
	"github.com/deckpilot/deckpilot/internal/client/repositories/state"
	"github.com/deckpilot/deckpilot/internal/client/tasks"
	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/logging"
)

// resyncTimeout bounds the background refresh that follows a finished task.
const resyncTimeout = 30 * time.Second

// API is the project surface of the remote server used by the store.
// *api.HTTPClient satisfies it.
type API interface {
	CreateProject(ctx context.Context, req api.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID string, req api.UpdateProjectRequest) (*models.Project, error)
	AddPage(ctx context.Context, projectID string, req api.PageRequest) (*models.Page, error)
	UpdatePage(ctx context.Context, projectID, pageID string, req api.PageRequest) (*models.Page, error)
	DeletePage(ctx context.Context, projectID, pageID string) error

	GenerateOutline(ctx context.Context, projectID string) (*models.Project, error)
	GenerateFromDescription(ctx context.Context, projectID string) (*models.Project, error)
	GenerateDescriptions(ctx context.Context, projectID string) (string, error)
	GeneratePageDescription(ctx context.Context, projectID, pageID string) (*models.Page, error)
	GenerateImages(ctx context.Context, projectID string) (string, error)
	GeneratePageImage(ctx context.Context, projectID, pageID string) (string, error)
	RefineOutline(ctx context.Context, projectID, instruction string) (*models.Project, error)
	RefineDescriptions(ctx context.Context, projectID, instruction string) (*models.Project, error)

	ProjectTaskFetcher(projectID, taskID string, kind tasks.Kind) tasks.FetchFunc
}

// Store holds the current project. Every server response carrying a full
// project is applied through a sequence check so a slow response can never
// overwrite the result of a later request.
type Store struct {
	api      API
	repo     state.Repository
	tracker  *tasks.Tracker
	log      logging.Logger
	pollOpts []tasks.Option

	mu                sync.Mutex
	current           *models.Project
	seq               uint64 // last issued request sequence
	applied           uint64 // sequence of the response currently applied
	generating        map[string]bool
	batchDescriptions bool
	batchImages       bool
}

func NewStore(a API, repo state.Repository, tracker *tasks.Tracker, log logging.Logger, pollOpts ...tasks.Option) *Store {
	return &Store{
		api:        a,
		repo:       repo,
		tracker:    tracker,
		log:        log,
		pollOpts:   pollOpts,
		generating: make(map[string]bool),
	}
}

// Current returns a deep copy of the loaded project, or nil.
func (s *Store) Current() *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// CurrentID returns the loaded project's id, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// GeneratingImages reports whether a batch image task is in flight.
func (s *Store) GeneratingImages() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchImages
}

// GeneratingDescriptions reports whether a batch description task is in flight.
func (s *Store) GeneratingDescriptions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchDescriptions
}

// PageGenerating reports whether the given page has its own generation
// in flight. Pages are tracked independently.
func (s *Store) PageGenerating(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating[pageID]
}

// nextSeq issues the sequence number for a request about to be sent.
func (s *Store) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// apply installs a fetched project unless a later-issued request has
// already been applied. Returns false when the response was discarded.
func (s *Store) apply(ctx context.Context, seq uint64, p *models.Project) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		s.log.Debug(ctx, "discarding stale project response",
			"project_id", p.ID, "seq", seq, "applied", s.applied)
		return false
	}
	s.applied = seq
	s.current = p
	return true
}

// Sync fetches the project and installs it as current. With an empty id it
// falls back to the loaded project, then to the persisted last-open id.
func (s *Store) Sync(ctx context.Context, projectID string) (*models.Project, error) {
	if projectID == "" {
		projectID = s.CurrentID()
	}
	if projectID == "" && s.repo != nil {
		raw, err := s.repo.Get(ctx, state.KeyLastProjectID)
		if err != nil {
			return nil, err
		}
		projectID = string(raw)
	}
	if projectID == "" {
		return nil, common.ErrNoCurrentProject
	}

	seq := s.nextSeq()
	p, err := s.api.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, seq, p)
	s.persistLastProject(ctx, p.ID)
	return p.Clone(), nil
}

// Create creates a project on the server and makes it current.
func (s *Store) Create(ctx context.Context, req api.CreateProjectRequest) (*models.Project, error) {
	seq := s.nextSeq()
	p, err := s.api.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, seq, p)
	s.persistLastProject(ctx, p.ID)
	return p.Clone(), nil
}

// Close drops the current project and stops its tracked tasks. Local edits
// not saved with SavePage are lost.
func (s *Store) Close() {
	if s.tracker != nil {
		s.tracker.CancelAll()
	}
	s.mu.Lock()
	s.current = nil
	s.generating = make(map[string]bool)
	s.batchImages = false
	s.batchDescriptions = false
	s.mu.Unlock()
}

// UpdatePageLocal applies an edit to the local copy only; SavePage pushes
// it to the server.
func (s *Store) UpdatePageLocal(pageID string, patch models.PagePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return common.ErrNoCurrentProject
	}
	page := s.current.PageByID(pageID)
	if page == nil {
		return fmt.Errorf("%w: page %s", common.ErrNotFound, pageID)
	}
	page.Apply(patch)
	return nil
}

// SavePage pushes the local copy of one page to the server and installs
// the server's version of it.
func (s *Store) SavePage(ctx context.Context, pageID string) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return common.ErrNoCurrentProject
	}
	projectID := s.current.ID
	page := s.current.PageByID(pageID)
	if page == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: page %s", common.ErrNotFound, pageID)
	}
	req := api.PageRequest{
		Outline:     page.Outline,
		Description: page.Description,
		OrderIndex:  &page.OrderIndex,
	}
	s.mu.Unlock()

	updated, err := s.api.UpdatePage(ctx, projectID, pageID, req)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == projectID {
		if local := s.current.PageByID(pageID); local != nil && updated != nil {
			*local = *updated
		}
	}
	return nil
}

// AddPage appends a page on the server and to the local copy.
func (s *Store) AddPage(ctx context.Context, req api.PageRequest) (*models.Page, error) {
	projectID := s.CurrentID()
	if projectID == "" {
		return nil, common.ErrNoCurrentProject
	}
	page, err := s.api.AddPage(ctx, projectID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == projectID {
		s.current.Pages = append(s.current.Pages, page.Clone())
	}
	s.mu.Unlock()
	return page, nil
}

// DeletePage removes a page on the server and from the local copy.
func (s *Store) DeletePage(ctx context.Context, pageID string) error {
	projectID := s.CurrentID()
	if projectID == "" {
		return common.ErrNoCurrentProject
	}
	if err := s.api.DeletePage(ctx, projectID, pageID); err != nil {
		return err
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == projectID {
		pages := s.current.Pages[:0]
		for _, p := range s.current.Pages {
			if p.ID != pageID {
				pages = append(pages, p)
			}
		}
		s.current.Pages = pages
		delete(s.generating, pageID)
	}
	s.mu.Unlock()
	return nil
}

// Rename changes the project title.
func (s *Store) Rename(ctx context.Context, title string) error {
	return s.update(ctx, api.UpdateProjectRequest{Title: &title})
}

// SetTemplate switches the presentation template.
func (s *Store) SetTemplate(ctx context.Context, templateID string) error {
	return s.update(ctx, api.UpdateProjectRequest{TemplateID: &templateID})
}

func (s *Store) update(ctx context.Context, req api.UpdateProjectRequest) error {
	projectID := s.CurrentID()
	if projectID == "" {
		return common.ErrNoCurrentProject
	}
	seq := s.nextSeq()
	p, err := s.api.UpdateProject(ctx, projectID, req)
	if err != nil {
		return err
	}
	s.apply(ctx, seq, p)
	return nil
}

// GenerateOutline runs the synchronous outline step and installs the result.
func (s *Store) GenerateOutline(ctx context.Context) (*models.Project, error) {
	return s.syncGenerate(ctx, s.api.GenerateOutline)
}

// GenerateFromDescription runs the synchronous description-to-pages step.
func (s *Store) GenerateFromDescription(ctx context.Context) (*models.Project, error) {
	return s.syncGenerate(ctx, s.api.GenerateFromDescription)
}

// RefineOutline rewrites the outline following an instruction.
func (s *Store) RefineOutline(ctx context.Context, instruction string) (*models.Project, error) {
	return s.syncGenerate(ctx, func(ctx context.Context, id string) (*models.Project, error) {
		return s.api.RefineOutline(ctx, id, instruction)
	})
}

// RefineDescriptions rewrites page descriptions following an instruction.
func (s *Store) RefineDescriptions(ctx context.Context, instruction string) (*models.Project, error) {
	return s.syncGenerate(ctx, func(ctx context.Context, id string) (*models.Project, error) {
		return s.api.RefineDescriptions(ctx, id, instruction)
	})
}

func (s *Store) syncGenerate(ctx context.Context, call func(ctx context.Context, projectID string) (*models.Project, error)) (*models.Project, error) {
	projectID := s.CurrentID()
	if projectID == "" {
		return nil, common.ErrNoCurrentProject
	}
	seq := s.nextSeq()
	p, err := call(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, seq, p)
	return p.Clone(), nil
}

// GeneratePageDescription regenerates one page's description synchronously.
// The page's in-flight flag is set for the duration of the call.
func (s *Store) GeneratePageDescription(ctx context.Context, pageID string) (*models.Page, error) {
	projectID := s.CurrentID()
	if projectID == "" {
		return nil, common.ErrNoCurrentProject
	}

	s.setPageGenerating(pageID, true)
	defer s.setPageGenerating(pageID, false)

	page, err := s.api.GeneratePageDescription(ctx, projectID, pageID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == projectID {
		if local := s.current.PageByID(pageID); local != nil && page != nil {
			*local = *page
		}
	}
	s.mu.Unlock()
	return page, nil
}

// GenerateDescriptions starts the batch description task and polls it to
// completion in the background. The returned channel delivers the single
// terminal result; the store resyncs itself when the task succeeds.
func (s *Store) GenerateDescriptions(ctx context.Context) (<-chan tasks.Result, error) {
	return s.startBatch(ctx, s.api.GenerateDescriptions, tasks.KindDescriptionGeneration, tasks.SlotProjectDescriptions, func(v bool) {
		s.mu.Lock()
		s.batchDescriptions = v
		s.mu.Unlock()
	})
}

// GenerateImages starts the batch image task for every described page and
// polls it to completion in the background.
func (s *Store) GenerateImages(ctx context.Context) (<-chan tasks.Result, error) {
	return s.startBatch(ctx, s.api.GenerateImages, tasks.KindImageGeneration, tasks.SlotProjectImages, func(v bool) {
		s.mu.Lock()
		s.batchImages = v
		s.mu.Unlock()
	})
}

// GeneratePageImage starts an image task for a single page. The page must
// already have a description.
func (s *Store) GeneratePageImage(ctx context.Context, pageID string) (<-chan tasks.Result, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, common.ErrNoCurrentProject
	}
	projectID := s.current.ID
	page := s.current.PageByID(pageID)
	s.mu.Unlock()

	if page == nil {
		return nil, fmt.Errorf("%w: page %s", common.ErrNotFound, pageID)
	}
	if !page.HasDescription() {
		return nil, fmt.Errorf("%w: page %s has no description to illustrate", common.ErrValidation, pageID)
	}

	taskID, err := s.api.GeneratePageImage(ctx, projectID, pageID)
	if err != nil {
		return nil, err
	}

	s.setPageGenerating(pageID, true)
	return s.watch(ctx, projectID, taskID, tasks.KindImageGeneration, tasks.PageImageSlot(pageID), func() {
		s.setPageGenerating(pageID, false)
	}), nil
}

func (s *Store) startBatch(ctx context.Context, start func(ctx context.Context, projectID string) (string, error), kind tasks.Kind, slot tasks.Slot, setFlag func(bool)) (<-chan tasks.Result, error) {
	projectID := s.CurrentID()
	if projectID == "" {
		return nil, common.ErrNoCurrentProject
	}

	taskID, err := start(ctx, projectID)
	if err != nil {
		return nil, err
	}

	setFlag(true)
	return s.watch(ctx, projectID, taskID, kind, slot, func() { setFlag(false) }), nil
}

// watch tracks the task until terminal, clears its in-flight flag, resyncs
// on success and forwards the single result to the caller. Resync failures
// are logged and swallowed; the next explicit sync recovers.
func (s *Store) watch(ctx context.Context, projectID, taskID string, kind tasks.Kind, slot tasks.Slot, done func()) <-chan tasks.Result {
	poller := tasks.New(taskID, kind,
		s.api.ProjectTaskFetcher(projectID, taskID, kind), s.pollOpts...)
	results := s.tracker.Track(ctx, slot, poller)

	out := make(chan tasks.Result, 1)
	go func() {
		res := <-results
		done()

		if res.Err == nil {
			syncCtx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
			if _, err := s.Sync(syncCtx, projectID); err != nil {
				s.log.Warn(syncCtx, "resync after task failed",
					"project_id", projectID, "task_id", taskID, "error", err)
			}
			cancel()
		}

		out <- res
		close(out)
	}()
	return out
}

func (s *Store) setPageGenerating(pageID string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.generating[pageID] = true
	} else {
		delete(s.generating, pageID)
	}
}

func (s *Store) persistLastProject(ctx context.Context, projectID string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Set(ctx, state.KeyLastProjectID, []byte(projectID)); err != nil {
		s.log.Warn(ctx, "failed to persist last project id", "error", err)
	}
}
