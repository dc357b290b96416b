package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/infrastructure/email"
	"batdongsan-backend/pkg/jwt"
)

// Reset token có hạn 15 phút
const resetTokenTTL = 15 * time.Minute

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	mailer     email.Mailer
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, mailer email.Mailer) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		mailer:     mailer,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới và trả về token pair
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Email lowercase ngay từ đầu để entity, token và DB row luôn khớp nhau
	email := strings.ToLower(req.Email)

	// Check email already exists
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// bcrypt cost = 12: balance giữa security và performance
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Phone:        stringPtr(req.Phone),
		Role:         user.RoleUser, // Default role
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.issueTokens(newUser)
}

// Login xác thực user và trả về JWT tokens
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Không expose "email not found" - tránh account enumeration
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	// Constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// Fire-and-forget: last login không quan trọng đủ để fail request
	go func() {
		_ = s.repo.UpdateLastLogin(context.Background(), u.ID)
	}()

	return s.issueTokens(u)
}

// RefreshToken đổi refresh token còn hạn lấy access token mới
// Account phải còn tồn tại và chưa bị block
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrUserNotFound
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // refresh token giữ nguyên đến khi hết hạn
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessTTL()),
		User:         u.ToDTO(),
	}, nil
}

// ForgotPassword luôn trả ack - không tiết lộ email có tồn tại hay không
func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Silent success
		return nil
	}

	resetToken, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	if err := s.repo.SetResetToken(ctx, u.ID, resetToken, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}

	return s.mailer.SendPasswordReset(ctx, u.Email, resetToken)
}

// ResetPassword đặt lại mật khẩu bằng token từ email
func (s *userService) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByResetToken(ctx, req.Token)
	if err != nil {
		return user.ErrInvalidToken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, u.ID, string(passwordHash))
}

// ChangePassword đổi mật khẩu khi đã đăng nhập
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrPasswordMismatch
	}

	if req.CurrentPassword == req.NewPassword {
		return user.ErrSamePassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, u.ID, string(passwordHash))
}

// ========================================
// USER PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// ADMIN FUNCTIONS
// ========================================

func (s *userService) ListUsers(ctx context.Context, req user.ListUsersRequest) (*user.ListUsersResponse, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}

	return &user.ListUsersResponse{
		Users:      dtos,
		Pagination: user.NewPaginationMeta(total, req.Page, req.Limit),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	return s.GetProfile(ctx, userID)
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// DeleteUser xóa user - tài khoản admin không bao giờ bị xóa
func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.Role == user.RoleAdmin {
		return user.ErrCannotModifyAdmin
	}

	return s.repo.Delete(ctx, userID)
}

// BlockUser set isActive=false - idempotent, block lần hai không lỗi
func (s *userService) BlockUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.Role == user.RoleAdmin {
		return nil, user.ErrCannotModifyAdmin
	}

	if err := s.repo.UpdateStatus(ctx, userID, false); err != nil {
		return nil, err
	}

	u.IsActive = false
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UnblockUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, userID, true); err != nil {
		return nil, err
	}

	u.IsActive = true
	dto := u.ToDTO()
	return &dto, nil
}

// UpdateUserRole đổi role - admin không tự đổi role của chính mình
func (s *userService) UpdateUserRole(ctx context.Context, actorID, userID uuid.UUID, req user.UpdateRoleRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if actorID == userID {
		return nil, user.ErrCannotChangeOwn
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, userID, req.Role); err != nil {
		return nil, err
	}

	u.Role = req.Role
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) VerifyUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	return s.setVerification(ctx, userID, true)
}

func (s *userService) UnverifyUser(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	return s.setVerification(ctx, userID, false)
}

func (s *userService) setVerification(ctx context.Context, userID uuid.UUID, verified bool) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateVerification(ctx, userID, verified); err != nil {
		return nil, err
	}

	u.IsVerified = verified
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) GetStatistics(ctx context.Context) (*user.Statistics, error) {
	return s.repo.Statistics(ctx)
}

// ========================================
// HELPERS
// ========================================

// issueTokens sinh access + refresh token cho user
func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessTTL()),
		User:         u.ToDTO(),
	}, nil
}

// generateSecureToken sinh random hex string (n bytes -> 2n chars)
func generateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
