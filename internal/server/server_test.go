package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fittrack/internal/cache"
	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires a server against an in-memory SQLite database with no
// Redis and no event publisher.
func setupTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cache.SetClient(nil)

	cfg := &config.Config{
		Port:      "5000",
		JWTSecret: "test-secret-key",
		Env:       "test",
	}

	srv := NewServerWithDeps(cfg, db, nil)
	app := fiber.New()
	srv.SetupRoutes(app)

	return app, srv
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	resp.Body.Close()
}

// registerTestUser registers a user through the API and returns their token.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func getProfileStats(t *testing.T, app *fiber.App, token string) models.Stats {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile models.Profile
	decodeBody(t, resp, &profile)
	return profile.Stats
}
