package models

import "time"

// Page statuses, server-defined.
const (
	PageStatusDraft                = "DRAFT"
	PageStatusDescriptionGenerated = "DESCRIPTION_GENERATED"
	PageStatusGenerating           = "GENERATING"
	PageStatusCompleted            = "COMPLETED"
	PageStatusFailed               = "FAILED"
)

// DescriptionBlock is one structured text block of a page description.
type DescriptionBlock struct {
	Type    string `json:"type"` // heading | bullet | paragraph | note
	Content string `json:"content"`
}

// ImageVersion is one entry of a page's generated image history.
type ImageVersion struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one slide within a Project.
type Page struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"order_index"`
	Status     string `json:"status"`

	Outline     string             `json:"outline,omitempty"`
	Description []DescriptionBlock `json:"description,omitempty"`

	ImageURL     string         `json:"image_url,omitempty"`
	ImageHistory []ImageVersion `json:"image_history,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HasDescription reports whether the page carries any description content.
// Image generation requires it; the server enforces the same rule.
func (p *Page) HasDescription() bool {
	for _, b := range p.Description {
		if b.Content != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Description = append([]DescriptionBlock(nil), p.Description...)
	cp.ImageHistory = append([]ImageVersion(nil), p.ImageHistory...)
	return &cp
}

// PagePatch carries an optimistic, client-only partial update of a page.
// Nil fields are left untouched.
type PagePatch struct {
	Outline     *string
	Description []DescriptionBlock
	OrderIndex  *int
}

// Apply merges the patch into the page in place.
func (p *Page) Apply(patch PagePatch) {
	if patch.Outline != nil {
		p.Outline = *patch.Outline
	}
	if patch.Description != nil {
		p.Description = append([]DescriptionBlock(nil), patch.Description...)
	}
	if patch.OrderIndex != nil {
		p.OrderIndex = *patch.OrderIndex
	}
}
