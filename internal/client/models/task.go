package models

import "time"

// Server task types.
const (
	TaskTypeGenerateDescriptions = "GENERATE_DESCRIPTIONS"
	TaskTypeGenerateImages       = "GENERATE_IMAGES"
	TaskTypePDFToPPTX            = "PDF_TO_PPTX"
	TaskTypeExportEditablePPTX   = "EXPORT_EDITABLE_PPTX"
)

// Task is a record of a server-side asynchronous job, as listed by admin
// and project endpoints. Live polling works on tasks.Snapshot instead.
type Task struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id,omitempty"`
	Type         string    `json:"task_type"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
