// Package tasks turns one-shot "start async job" responses into observable
// polling loops with bounded lifetimes. Each tracked task polls on its own
// fixed interval; a task stops exactly once at the first terminal status.
package tasks

import "strings"

// Kind tags the endpoint family a task belongs to. Progress payload shapes
// differ per kind, so decoding is keyed on it.
type Kind string

const (
	KindImageGeneration       Kind = "image_generation"
	KindDescriptionGeneration Kind = "description_generation"
	KindPDFConversion         Kind = "pdf_conversion"
	KindEditableExport        Kind = "editable_export"
)

// Status is a normalized task status. Servers report these with varying
// capitalization per endpoint ("completed" vs "COMPLETED"); ParseStatus
// folds them into one set.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusUnknown    Status = "UNKNOWN"
)

// ParseStatus normalizes a server-reported status string.
func ParseStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return StatusPending
	case "PROCESSING", "RUNNING":
		return StatusProcessing
	case "COMPLETED", "SUCCESS":
		return StatusCompleted
	case "FAILED", "ERROR":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// Terminal reports whether no further transitions follow this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
