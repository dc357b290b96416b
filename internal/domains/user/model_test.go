package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleValidity(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), "role: %s", r)
	}

	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCanPostListing(t *testing.T) {
	// Chỉ agent và admin được đăng tin
	assert.False(t, RoleUser.CanPostListing())
	assert.True(t, RoleAgent.CanPostListing())
	assert.True(t, RoleAdmin.CanPostListing())
}

func TestIsPasswordResetValid(t *testing.T) {
	u := &User{}
	assert.False(t, u.IsPasswordResetValid())

	token := "abc"
	future := time.Now().Add(10 * time.Minute)
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &future
	assert.True(t, u.IsPasswordResetValid())

	past := time.Now().Add(-time.Minute)
	u.ResetTokenExpiresAt = &past
	assert.False(t, u.IsPasswordResetValid())
}

func TestSanitizeStripsSecrets(t *testing.T) {
	token := "reset-token"
	u := &User{PasswordHash: "bcrypt-hash", ResetToken: &token}

	u.Sanitize()

	assert.Empty(t, u.PasswordHash)
	assert.Nil(t, u.ResetToken)
}
