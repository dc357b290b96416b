package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/pkg/jwt"
)

// stubAccountLoader trả về account cố định hoặc error
type stubAccountLoader struct {
	account *user.User
	err     error
}

func (s *stubAccountLoader) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func newAuthTestRouter(jwtManager *jwt.Manager, loader AccountLoader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtManager, loader)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID.String()})
	})

	router.GET("/protected", handlers...)
	return router
}

func activeUser(role user.Role) *user.User {
	return &user.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		FullName: "Nguyen Van A",
		Role:     role,
		IsActive: true,
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	router := newAuthTestRouter(m, &stubAccountLoader{account: activeUser(user.RoleUser)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidHeaderFormat(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	router := newAuthTestRouter(m, &stubAccountLoader{account: activeUser(user.RoleUser)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleUser)
	router := newAuthTestRouter(m, &stubAccountLoader{account: account})

	token, err := m.GenerateAccessToken(account.ID.String(), account.Email, account.Role.String())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Token phát hành lúc login phải authenticate được cùng account
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), account.ID.String())
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	issuer := jwt.NewManager("secret", time.Millisecond, time.Millisecond)
	verifier := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleUser)
	router := newAuthTestRouter(verifier, &stubAccountLoader{account: account})

	token, err := issuer.GenerateAccessToken(account.ID.String(), account.Email, "user")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Chữ ký đúng nhưng hết hạn vẫn là 401
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRefreshTokenRejected(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleUser)
	router := newAuthTestRouter(m, &stubAccountLoader{account: account})

	refresh, err := m.GenerateRefreshToken(account.ID.String())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	router := newAuthTestRouter(m, &stubAccountLoader{err: user.ErrUserNotFound})

	token, err := m.GenerateAccessToken(uuid.NewString(), "gone@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Token còn hạn nhưng account đã xóa -> 401
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBlockedAccount(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleUser)
	account.IsActive = false
	router := newAuthTestRouter(m, &stubAccountLoader{account: account})

	token, err := m.GenerateAccessToken(account.ID.String(), account.Email, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesDeniesInsufficientRole(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleUser)
	router := newAuthTestRouter(m, &stubAccountLoader{account: account}, RequireAdmin())

	token, err := m.GenerateAccessToken(account.ID.String(), account.Email, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Token hợp lệ, role không đủ -> 403
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleAdmin)
	router := newAuthTestRouter(m, &stubAccountLoader{account: account}, RequireAdmin())

	token, err := m.GenerateAccessToken(account.ID.String(), account.Email, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesAllowsAgentForListing(t *testing.T) {
	m := jwt.NewManager("secret", 0, 0)
	account := activeUser(user.RoleAgent)
	router := newAuthTestRouter(m, &stubAccountLoader{account: account},
		RequireRoles(user.RoleAgent, user.RoleAdmin))

	token, err := m.GenerateAccessToken(account.ID.String(), account.Email, "agent")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
