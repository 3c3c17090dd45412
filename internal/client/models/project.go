package models

import "time"

// CreationMode selects how a project's content is seeded.
type CreationMode string

const (
	ModeIdea        CreationMode = "idea"
	ModeOutline     CreationMode = "outline"
	ModeDescription CreationMode = "description"
)

// Project lifecycle statuses, server-defined.
const (
	ProjectStatusDraft                 = "DRAFT"
	ProjectStatusOutlineGenerated      = "OUTLINE_GENERATED"
	ProjectStatusDescriptionsGenerated = "DESCRIPTIONS_GENERATED"
	ProjectStatusGeneratingImages      = "GENERATING_IMAGES"
	ProjectStatusCompleted             = "COMPLETED"
	ProjectStatusFailed                = "FAILED"
)

// Project is the user's in-progress slide deck, composed of ordered Pages.
type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Topic        string       `json:"topic,omitempty"`
	CreationMode CreationMode `json:"creation_mode"`
	Status       string       `json:"status"`
	TemplateID   string       `json:"template_id,omitempty"`

	Pages []*Page `json:"pages"`

	// GeneratedFilename is the server-side name of the last export artifact.
	GeneratedFilename string `json:"generated_filename,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageByID returns the page with the given id, or nil.
func (p *Project) PageByID(pageID string) *Page {
	for _, pg := range p.Pages {
		if pg.ID == pageID {
			return pg
		}
	}
	return nil
}

// Clone returns a deep copy so optimistic local edits never alias
// server-confirmed state.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Pages = make([]*Page, len(p.Pages))
	for i, pg := range p.Pages {
		cp.Pages[i] = pg.Clone()
	}
	return &cp
}
