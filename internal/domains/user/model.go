package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	// Identity
	ID    uuid.UUID `db:"id" json:"id"`
	Email string    `db:"email" json:"email"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FullName string  `db:"full_name" json:"full_name"`
	Phone    *string `db:"phone" json:"phone,omitempty"`
	Avatar   *string `db:"avatar" json:"avatar,omitempty"`

	// Authorization
	Role     Role `db:"role" json:"role"`
	IsActive bool `db:"is_active" json:"is_active"`

	// Identity verification (admin moderation)
	IsVerified bool `db:"is_verified" json:"is_verified"`

	// Password Reset
	ResetToken          *string    `db:"reset_token" json:"-"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at" json:"-"`

	// Activity
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`

	// Timestamps
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"` // Soft delete
}

// Role enum - 3 roles của sàn bất động sản
type Role string

const (
	RoleUser  Role = "user"  // Người dùng thường (tìm kiếm, yêu thích)
	RoleAgent Role = "agent" // Môi giới - được đăng tin
	RoleAdmin Role = "admin" // Full system access
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleUser, RoleAgent, RoleAdmin}
}

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// CanPostListing kiểm tra quyền đăng tin bất động sản
func (r Role) CanPostListing() bool {
	return r == RoleAgent || r == RoleAdmin
}

// IsDeleted kiểm tra user đã bị xóa (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// IsPasswordResetValid kiểm tra token reset password còn hạn
func (u *User) IsPasswordResetValid() bool {
	if u.ResetToken == nil || u.ResetTokenExpiresAt == nil {
		return false
	}
	return time.Now().Before(*u.ResetTokenExpiresAt)
}

// Sanitize removes sensitive data before sending to client
func (u *User) Sanitize() {
	u.PasswordHash = ""
	u.ResetToken = nil
}
