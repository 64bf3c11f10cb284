package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/db"
	"github.com/colorra-dev/colorra/internal/auth"
	"github.com/colorra-dev/colorra/internal/config"
	"github.com/colorra-dev/colorra/internal/handlers"
	"github.com/colorra-dev/colorra/internal/mailer"
	"github.com/colorra-dev/colorra/internal/middleware"
	"github.com/colorra-dev/colorra/internal/router"
	"github.com/colorra-dev/colorra/internal/storage"
)

// testEnv boots the full HTTP stack against an in-memory database so the
// tests exercise routing, middleware and handlers together.
type testEnv struct {
	router *gin.Engine
	conn   *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	cfg := &config.Config{
		Port:           "5000",
		JWTSecret:      "test-secret",
		BaseURL:        "http://localhost:5000",
		ClientURL:      "http://localhost:3000",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	store, err := storage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	logger := zap.NewNop()
	authManager := auth.NewManager(cfg.JWTSecret)
	mail := mailer.New(cfg, logger)
	h := handlers.New(conn, cfg, authManager, store, mail, logger)

	authLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/10), 10)
	t.Cleanup(authLimiter.Stop)

	return &testEnv{
		router: router.New(h, authManager, conn, authLimiter),
		conn:   conn,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(rec *httptest.ResponseRecorder, out interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// signup registers a fresh user and returns their bearer token.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()

	rec := e.request(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

// createPalette makes a palette via the API and returns its id.
func (e *testEnv) createPalette(t *testing.T, token, name string, colors []string) string {
	t.Helper()

	rec := e.request(t, http.MethodPost, "/api/palettes", token, gin.H{
		"name":   name,
		"colors": colors,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	palette, ok := body["palette"].(map[string]interface{})
	require.True(t, ok)
	id, ok := palette["id"].(string)
	require.True(t, ok)
	return id
}
