package user

import (
	"context"

	"github.com/google/uuid"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error

	// User Profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)

	// Admin Functions
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	BlockUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UnblockUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateUserRole(ctx context.Context, actorID, userID uuid.UUID, req UpdateRoleRequest) (*UserDTO, error)
	VerifyUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UnverifyUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}
