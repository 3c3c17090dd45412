package models

import "time"

// Parse/processing statuses for uploaded assets.
const (
	AssetStatusPending = "PENDING"
	AssetStatusParsing = "PARSING"
	AssetStatusReady   = "READY"
	AssetStatusFailed  = "FAILED"
)

// Material is an uploaded asset usable across projects.
type Material struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StorageURL  string    `json:"storage_url"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	ParseStatus string    `json:"parse_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserTemplate is a deck template, either user-uploaded or preset.
type UserTemplate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PreviewURL string    `json:"preview_url,omitempty"`
	IsPreset   bool      `json:"is_preset"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReferenceFile is a document attached to a project as generation context.
type ReferenceFile struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Filename    string    `json:"filename"`
	StorageURL  string    `json:"storage_url"`
	ParseStatus string    `json:"parse_status"`
	CreatedAt   time.Time `json:"created_at"`
}
