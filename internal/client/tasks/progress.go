package tasks

import "encoding/json"

// Progress is a decoded progress snapshot. Each Kind has its own concrete
// schema instead of one permissive optional-field bag.
type Progress interface {
	// Stage is the server's human-readable stage label, possibly empty.
	Stage() string
	// Percent returns the completion percentage in [0,100], or -1 when the
	// payload carries no usable counters.
	Percent() int
}

func percent(completed, total int) int {
	if total <= 0 {
		return -1
	}
	if completed >= total {
		return 100
	}
	return completed * 100 / total
}

// ImageProgress reports batch image generation counters.
type ImageProgress struct {
	StageName string `json:"stage"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Failed    int    `json:"failed,omitempty"`
}

func (p *ImageProgress) Stage() string { return p.StageName }
func (p *ImageProgress) Percent() int  { return percent(p.Completed, p.Total) }

// ConversionProgress reports PDF-to-PPTX conversion counters. On completion
// the server also reports totals about the produced document.
type ConversionProgress struct {
	StageName string `json:"stage"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`

	PagesCount      int `json:"pages_count,omitempty"`
	TextBlocksCount int `json:"text_blocks_count,omitempty"`
	ImagesCount     int `json:"images_count,omitempty"`
}

func (p *ConversionProgress) Stage() string { return p.StageName }
func (p *ConversionProgress) Percent() int  { return percent(p.Completed, p.Total) }

// ExportProgress reports editable-PPTX export counters.
type ExportProgress struct {
	StageName string `json:"stage"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

func (p *ExportProgress) Stage() string { return p.StageName }
func (p *ExportProgress) Percent() int  { return percent(p.Completed, p.Total) }

// DecodeProgress unmarshals a raw progress object according to the task
// kind. A nil or empty payload yields nil without error.
func DecodeProgress(kind Kind, raw json.RawMessage) (Progress, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		return nil, nil
	}

	var p Progress
	switch kind {
	case KindPDFConversion:
		p = &ConversionProgress{}
	case KindEditableExport:
		p = &ExportProgress{}
	default:
		p = &ImageProgress{}
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}
