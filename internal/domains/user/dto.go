package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Số điện thoại Việt Nam: 10-11 chữ số
var vnPhoneRegex = regexp.MustCompile(`^[0-9]{10,11}$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - đăng ký tài khoản
type RegisterRequest struct {
	FullName string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("name is required"),
			validation.Length(2, 50),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != "",
				validation.Match(vnPhoneRegex).Error("phone must be 10-11 digits"),
			),
		),
	)
}

// LoginRequest - đăng nhập
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - JWT tokens + user
type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserDTO   `json:"user"`
}

// RefreshTokenRequest - lấy access token mới
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest - yêu cầu reset mật khẩu
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest - đặt lại mật khẩu bằng token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(6, 128),
		),
	)
}

// ChangePasswordRequest - User changes own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(6, 128),
		),
	)
}

// ========================================
// USER PROFILE DTOs
// ========================================

// UserDTO - Public user representation (safe to expose)
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	Avatar      *string    `json:"avatar,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	IsVerified  bool       `json:"isVerified"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToDTO converts User entity to UserDTO
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateProfileRequest - User updates own profile
type UpdateProfileRequest struct {
	FullName string  `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.When(r.FullName != "", validation.Length(2, 50)),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != nil && *r.Phone != "",
				validation.Match(vnPhoneRegex).Error("phone must be 10-11 digits"),
			),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != nil && *r.Avatar != "", is.URL),
		),
	)
}

// ========================================
// ADMIN DTOs
// ========================================

// ListUsersRequest - admin list users with filters
type ListUsersRequest struct {
	Role       *Role  `form:"role"`
	IsVerified *bool  `form:"isVerified"`
	IsActive   *bool  `form:"isActive"`
	Search     string `form:"search"` // Search by name, email or phone
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	SortBy     string `form:"sort"`
	SortOrder  string `form:"order"`
}

// SetDefaults sets default values for pagination
func (r *ListUsersRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if r.SortOrder == "" {
		r.SortOrder = "desc"
	}
}

func (r ListUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SortBy,
			validation.In("created_at", "last_login_at", "email", "full_name"),
		),
		validation.Field(&r.SortOrder,
			validation.In("asc", "desc"),
		),
	)
}

// ListUsersResponse - Paginated user list
type ListUsersResponse struct {
	Users      []UserDTO      `json:"users"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta - Pagination metadata
type PaginationMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPaginationMeta computes pagination metadata
// totalPages = ceil(total/limit), hasNext = page*limit < total, hasPrev = page > 1
func NewPaginationMeta(total, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page*limit < total,
		HasPrevPage: page > 1,
	}
}

// UpdateUserRequest - Admin updates any user
type UpdateUserRequest struct {
	FullName string  `json:"name,omitempty"`
	Email    string  `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.When(r.FullName != "", validation.Length(2, 50)),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != "", is.Email),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != nil && *r.Phone != "",
				validation.Match(vnPhoneRegex).Error("phone must be 10-11 digits"),
			),
		),
	)
}

// UpdateRoleRequest - Admin updates user role
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

func (r UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required,
			validation.In(RoleUser, RoleAgent, RoleAdmin).Error("role must be one of: user, agent, admin"),
		),
	)
}

// Statistics - admin dashboard numbers
type Statistics struct {
	TotalUsers    int `json:"totalUsers"`
	TotalAgents   int `json:"totalAgents"`
	TotalAdmins   int `json:"totalAdmins"`
	ActiveUsers   int `json:"activeUsers"`
	BlockedUsers  int `json:"blockedUsers"`
	VerifiedUsers int `json:"verifiedUsers"`
}
