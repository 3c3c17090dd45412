package models

import "time"

// Notification is an announcement published by an administrator.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"` // system | membership | feature
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLog is one back-office audit trail entry.
type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SystemConfig is the server's mutable configuration visible to admins.
type SystemConfig struct {
	AllowRegistration bool   `json:"allow_registration"`
	OCREngine         string `json:"ocr_engine,omitempty"`
	MaintenanceNotice string `json:"maintenance_notice,omitempty"`
}

// Page-style list envelope shared by admin listing endpoints.
type ListMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}
