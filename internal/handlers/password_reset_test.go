package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorra-dev/colorra/internal/models"
)

const neutralResetMessage = "If an account with that email exists, we have sent a password reset link."

func TestRequestPasswordResetIsEnumerationSafe(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	for _, email := range []string{"alice@example.com", "nobody@example.com"} {
		rec := env.request(t, http.MethodPost, "/api/password-reset/request", "", gin.H{"email": email})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, neutralResetMessage, decodeBody(t, rec)["message"])
	}

	// Only the real account got a token.
	var alice models.User
	require.NoError(t, env.conn.Where("email = ?", "alice@example.com").First(&alice).Error)
	require.NotNil(t, alice.ResetToken)
	assert.NotNil(t, alice.ResetTokenExpiry)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/password-reset/request", "", gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var alice models.User
	require.NoError(t, env.conn.Where("email = ?", "alice@example.com").First(&alice).Error)
	require.NotNil(t, alice.ResetToken)

	rec = env.request(t, http.MethodPost, "/api/password-reset/reset", "", gin.H{
		"token":    *alice.ResetToken,
		"password": "NewPassw0rd!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Token is single use.
	rec = env.request(t, http.MethodPost, "/api/password-reset/reset", "", gin.H{
		"token":    *alice.ResetToken,
		"password": "NewPassw0rd!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The new password signs in.
	rec = env.request(t, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "NewPassw0rd!",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/password-reset/request", "", gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var alice models.User
	require.NoError(t, env.conn.Where("email = ?", "alice@example.com").First(&alice).Error)
	require.NotNil(t, alice.ResetToken)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, env.conn.Model(&alice).Update("reset_token_expiry", expired).Error)

	rec = env.request(t, http.MethodPost, "/api/password-reset/reset", "", gin.H{
		"token":    *alice.ResetToken,
		"password": "NewPassw0rd!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired reset token", decodeBody(t, rec)["message"])
}

func TestResetPasswordWeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/password-reset/reset", "", gin.H{
		"token":    "whatever",
		"password": "alllowercase",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeBody(t, rec)["message"])
}
