package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 0, 0)

	token, err := m.GenerateAccessToken("user-123", "an@example.com", "agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	// Claims phải round-trip chính xác
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "an@example.com", claims.Email)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestExpiredTokenRejected(t *testing.T) {
	// TTL âm không được chấp nhận bởi NewManager (fallback về default),
	// nên tạo manager với TTL cực ngắn rồi chờ token hết hạn
	m := NewManager("test-secret", time.Millisecond, time.Millisecond)

	token, err := m.GenerateAccessToken("user-123", "an@example.com", "user")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	m1 := NewManager("secret-one", 0, 0)
	m2 := NewManager("secret-two", 0, 0)

	token, err := m1.GenerateAccessToken("user-123", "an@example.com", "user")
	require.NoError(t, err)

	_, err = m2.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTypeDiscrimination(t *testing.T) {
	m := NewManager("test-secret", 0, 0)

	access, err := m.GenerateAccessToken("user-123", "an@example.com", "user")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// Refresh token không dùng được làm access token và ngược lại
	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Empty(t, claims.Email)
}

func TestMalformedTokenRejected(t *testing.T) {
	m := NewManager("test-secret", 0, 0)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token: %q", token)
	}
}

func TestDecodeUnverified(t *testing.T) {
	m := NewManager("some-secret", 0, 0)

	token, err := m.GenerateAccessToken("user-123", "an@example.com", "admin")
	require.NoError(t, err)

	// Decode không cần biết secret
	claims, err := DecodeUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.False(t, claims.IsExpired())

	_, err = DecodeUnverified("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeUnverifiedExpired(t *testing.T) {
	m := NewManager("some-secret", time.Millisecond, time.Millisecond)

	token, err := m.GenerateAccessToken("user-123", "an@example.com", "user")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// Decode vẫn thành công - expiry check là việc của caller
	claims, err := DecodeUnverified(token)
	require.NoError(t, err)
	assert.True(t, claims.IsExpired())
}

func TestDefaultTTLs(t *testing.T) {
	m := NewManager("s", 0, 0)
	assert.Equal(t, 7*24*time.Hour, m.AccessTTL())
	assert.Equal(t, 30*24*time.Hour, m.RefreshTTL())

	m = NewManager("s", time.Hour, 2*time.Hour)
	assert.Equal(t, time.Hour, m.AccessTTL())
	assert.Equal(t, 2*time.Hour, m.RefreshTTL())
}
