package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/infrastructure/email"
	"batdongsan-backend/pkg/jwt"
)

// MockUserRepository là mock implementation của user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, req user.ListUsersRequest) ([]user.User, int, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]user.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role user.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	args := m.Called(ctx, userID, isActive)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateVerification(ctx context.Context, userID uuid.UUID, isVerified bool) error {
	args := m.Called(ctx, userID, isVerified)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Statistics(ctx context.Context) (*user.Statistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(*user.Statistics), args.Error(1)
}

func newTestService(repo user.Repository) (user.Service, *jwt.Manager) {
	m := jwt.NewManager("test-secret", 0, 0)
	return NewUserService(repo, m, email.NewLogMailer("test@local")), m
}

func hashedUser(password string) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &user.User{
		ID:           uuid.New(),
		Email:        "an@example.com",
		PasswordHash: string(hash),
		FullName:     "Nguyen Van An",
		Role:         user.RoleUser,
		IsActive:     true,
	}
}

// ========================================
// REGISTER / LOGIN
// ========================================

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "an@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		FullName: "Nguyen Van An",
		Email:    "an@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create")
}

func TestRegisterIssuesVerifiableTokens(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtManager := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "an@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		FullName: "Nguyen Van An",
		Email:    "an@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// Token phát hành phải verify lại được với cùng identity
	claims, err := jwtManager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "an@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtManager := newTestService(repo)

	// Email lowercase một lần ở service: entity, response và token phải khớp DB row
	repo.On("ExistsByEmail", mock.Anything, "an@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Email == "an@example.com"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		FullName: "Nguyen Van An",
		Email:    "An@Example.COM",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "an@example.com", resp.User.Email)

	claims, err := jwtManager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", claims.Email)
	repo.AssertExpectations(t)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtManager := newTestService(repo)
	u := hashedUser("secret123")

	repo.On("FindByEmail", mock.Anything, "an@example.com").Return(u, nil)
	repo.On("UpdateLastLogin", mock.Anything, u.ID).Return(nil).Maybe()

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "an@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)

	claims, err := jwtManager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("secret123")

	repo.On("FindByEmail", mock.Anything, "an@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "an@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, user.ErrUserNotFound)

	// Email không tồn tại trả cùng error với sai mật khẩu
	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("secret123")
	u.IsActive = false

	repo.On("FindByEmail", mock.Anything, "an@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "an@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtManager := newTestService(repo)

	access, err := jwtManager.GenerateAccessToken(uuid.NewString(), "an@example.com", "user")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefreshTokenBlockedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtManager := newTestService(repo)
	u := hashedUser("secret123")
	u.IsActive = false

	refresh, err := jwtManager.GenerateRefreshToken(u.ID.String())
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	_, err = svc.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

// ========================================
// PASSWORD FLOWS
// ========================================

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, user.ErrUserNotFound)

	// Không lộ email nào có trong hệ thống
	err := svc.ForgotPassword(context.Background(), user.ForgotPasswordRequest{Email: "ghost@example.com"})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "SetResetToken")
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("current123")

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	err := svc.ChangePassword(context.Background(), u.ID, user.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-pass",
	})

	assert.ErrorIs(t, err, user.ErrPasswordMismatch)
}

func TestChangePasswordSameAsOld(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("current123")

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	err := svc.ChangePassword(context.Background(), u.ID, user.ChangePasswordRequest{
		CurrentPassword: "current123",
		NewPassword:     "current123",
	})

	assert.ErrorIs(t, err, user.ErrSamePassword)
}

// ========================================
// ADMIN
// ========================================

func TestBlockUserIdempotent(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("secret123")

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("UpdateStatus", mock.Anything, u.ID, false).Return(nil)

	// Block hai lần: cả hai thành công, kết quả như nhau
	dto1, err := svc.BlockUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, dto1.IsActive)

	dto2, err := svc.BlockUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, dto2.IsActive)
}

func TestBlockUserRejectsAdmin(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	admin := hashedUser("secret123")
	admin.Role = user.RoleAdmin

	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

	_, err := svc.BlockUser(context.Background(), admin.ID)

	assert.ErrorIs(t, err, user.ErrCannotModifyAdmin)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestDeleteUserRejectsAdmin(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	admin := hashedUser("secret123")
	admin.Role = user.RoleAdmin

	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

	err := svc.DeleteUser(context.Background(), admin.ID)

	assert.ErrorIs(t, err, user.ErrCannotModifyAdmin)
	repo.AssertNotCalled(t, "Delete")
}

func TestUpdateRoleRejectsSelf(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	actorID := uuid.New()

	_, err := svc.UpdateUserRole(context.Background(), actorID, actorID, user.UpdateRoleRequest{Role: user.RoleUser})

	assert.ErrorIs(t, err, user.ErrCannotChangeOwn)
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateRolePromotesToAgent(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)
	u := hashedUser("secret123")

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("UpdateRole", mock.Anything, u.ID, user.RoleAgent).Return(nil)

	dto, err := svc.UpdateUserRole(context.Background(), uuid.New(), u.ID, user.UpdateRoleRequest{Role: user.RoleAgent})

	require.NoError(t, err)
	assert.Equal(t, user.RoleAgent, dto.Role)
}

func TestUpdateRoleRejectsInvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)

	_, err := svc.UpdateUserRole(context.Background(), uuid.New(), uuid.New(), user.UpdateRoleRequest{Role: user.Role("superuser")})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestListUsersPagination(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestService(repo)

	repo.On("List", mock.Anything, mock.AnythingOfType("user.ListUsersRequest")).
		Return(make([]user.User, 10), 42, nil)

	resp, err := svc.ListUsers(context.Background(), user.ListUsersRequest{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.Pagination.Total)
	assert.Equal(t, 5, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}
