package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
// Interface cho phép swap implementation và mock trong unit tests
type Repository interface {
	// ========================================
	// BASIC CRUD
	// ========================================

	// Create tạo user mới
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại
	Create(ctx context.Context, user *User) error

	// FindByID tìm user theo ID
	// Returns: ErrUserNotFound nếu không tìm thấy hoặc đã bị xóa (soft delete)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail tìm user theo email (dùng cho login)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update cập nhật profile fields (name, phone, avatar, email)
	Update(ctx context.Context, user *User) error

	// Delete soft delete user (set deleted_at)
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// AUTHENTICATION SPECIFIC
	// ========================================

	// FindByResetToken tìm user theo password reset token
	// Chỉ trả về user nếu reset_token_expires_at > NOW()
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// SetResetToken lưu reset token với expiry
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error

	// UpdatePassword cập nhật password và clear reset token
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// UpdateLastLogin cập nhật last_login_at
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	// ========================================
	// ADMIN FUNCTIONS
	// ========================================

	// List trả về danh sách users với filters và pagination
	List(ctx context.Context, req ListUsersRequest) ([]User, int, error)

	// UpdateRole cập nhật role của user (admin only)
	UpdateRole(ctx context.Context, userID uuid.UUID, role Role) error

	// UpdateStatus block/unblock user - idempotent
	UpdateStatus(ctx context.Context, userID uuid.UUID, isActive bool) error

	// UpdateVerification đánh dấu verified/unverified danh tính
	UpdateVerification(ctx context.Context, userID uuid.UUID, isVerified bool) error

	// ========================================
	// UTILITY
	// ========================================

	// ExistsByEmail kiểm tra email đã tồn tại chưa
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Statistics đếm user theo role/status cho admin dashboard
	Statistics(ctx context.Context) (*Statistics, error)
}
