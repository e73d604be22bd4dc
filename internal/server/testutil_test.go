package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"siap/internal/config"
	"siap/internal/database"
	"siap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer boots the full route table against an in-memory DB. Redis is
// absent, which the cache and rate limiter tolerate.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Port:      "0",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string, role models.Role) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:    username,
		NamaLengkap: username,
		Password:    string(hashed),
		Role:        role,
		UnitKerja:   "Bagian Umum",
		StatusAktif: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBarang(t *testing.T, db *gorm.DB, nama string, stok int) *models.Barang {
	t.Helper()
	barang := &models.Barang{
		KodeBarang:        "ATK-" + nama,
		NamaBarang:        nama,
		Satuan:            "pcs",
		Stok:              stok,
		AmbangBatasKritis: 5,
		StatusAktif:       true,
	}
	require.NoError(t, db.Create(barang).Error)
	return barang
}

// loginAs logs in through the real endpoint and returns the bearer token.
func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// doJSON performs an app.Test request with an optional bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
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
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
