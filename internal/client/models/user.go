// Package models defines client-side data models for the DeckPilot API.
// Field names mirror the server's JSON representation.
package models

import "time"

// Role values as reported by the server.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account status values.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User is the authenticated user's profile as returned by the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	// Phone is masked by the server, e.g. "138****0000".
	Phone string `json:"phone,omitempty"`

	// Gating flags. MustChangePassword forces a password change before
	// other operations; NeedPhoneVerification is recomputed by the server
	// on every profile fetch, not just trusted from login time.
	MustChangePassword    bool `json:"must_change_password"`
	NeedPhoneVerification bool `json:"need_phone_verification"`

	MembershipLevel     string     `json:"membership_level"`
	MembershipExpiresAt *time.Time `json:"membership_expires_at,omitempty"`
	ImageQuota          int        `json:"image_quota"`
	PremiumQuota        int        `json:"premium_quota"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
