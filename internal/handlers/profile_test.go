package handlers_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	env.createPalette(t, token, "One", []string{"#111111"})
	env.createPalette(t, token, "Two", []string{"#222222"})

	rec := env.request(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["paletteCount"])
	assert.Equal(t, "alice@example.com", body["user"].(map[string]interface{})["email"])
}

func TestUpdateProfileName(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.request(t, http.MethodPut, "/api/profile", token, gin.H{"name": "Alice Cooper"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "Profile updated successfully", body["message"])
	assert.Equal(t, "Alice Cooper", body["user"].(map[string]interface{})["name"])
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")
	env.signup(t, "bob@example.com")

	rec := env.request(t, http.MethodPut, "/api/profile", token, gin.H{"email": "bob@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["message"])
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.request(t, http.MethodPut, "/api/profile/password", token, gin.H{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password updated successfully", decodeBody(t, rec)["message"])

	// Old credentials stop working, new ones work.
	rec = env.request(t, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	rec := env.uploadFile(t, "/api/profile/avatar", token, "avatar", "me.png", "image/png", buf.Bytes())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "Avatar uploaded successfully", body["message"])
	assert.Contains(t, body["avatarUrl"], "/uploads/")
	assert.Equal(t, body["avatarUrl"], body["user"].(map[string]interface{})["avatarUrl"])
}

func TestUploadAvatarRejectsWebp(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.uploadFile(t, "/api/profile/avatar", token, "avatar", "me.webp", "image/webp", []byte("webp bytes"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid file type. Only JPEG, PNG and GIF images are allowed", decodeBody(t, rec)["message"])
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.uploadFile(t, "/api/profile/avatar", token, "avatar", "me.png", "image/png", []byte("not really a png"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid image file", decodeBody(t, rec)["message"])
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.request(t, http.MethodPut, "/api/profile/password", token, gin.H{
		"currentPassword": "wrong-password",
		"newPassword":     "newpassword456",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Current password is incorrect", decodeBody(t, rec)["message"])
}
