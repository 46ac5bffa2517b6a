package handler

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawing-backend/internal/auth"
)

// asClaims 인증 미들웨어 대신 클레임을 주입하는 테스트용 미들웨어
func asClaims(userID int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("claims", &auth.Claims{UserID: userID})
		return c.Next()
	}
}

func TestGetMe(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "me@test.com")

	h := NewAuthHandler(db, nil, nil, false)
	app := fiber.New()
	app.Get("/auth/me", asClaims(user.ID), h.GetMe)

	resp, body := doJSON(t, app, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "me@test.com", data["email"])
	assert.Equal(t, "tester", data["nickname"])
}

func TestGetMeUnknownUser(t *testing.T) {
	db := newTestDB(t)

	h := NewAuthHandler(db, nil, nil, false)
	app := fiber.New()
	app.Get("/auth/me", asClaims(999), h.GetMe)

	resp, _ := doJSON(t, app, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMe(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "me@test.com")

	h := NewAuthHandler(db, nil, nil, false)
	app := fiber.New()
	app.Put("/auth/me", asClaims(user.ID), h.UpdateMe)

	resp, body := doJSON(t, app, http.MethodPut, "/auth/me", map[string]any{
		"nickname": "renamed",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "renamed", body["data"].(map[string]any)["nickname"])
}

func TestUpdateMeRejectsEmptyNickname(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "me@test.com")

	h := NewAuthHandler(db, nil, nil, false)
	app := fiber.New()
	app.Put("/auth/me", asClaims(user.ID), h.UpdateMe)

	resp, body := doJSON(t, app, http.MethodPut, "/auth/me", map[string]any{
		"nickname": "  ",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestLogoutClearsRefreshCookie(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "me@test.com")

	h := NewAuthHandler(db, nil, nil, false)
	app := fiber.New()
	app.Post("/auth/logout", asClaims(user.ID), h.Logout)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	var found bool
	for _, c := range cookies {
		if c.Name == "refresh_token" {
			found = true
			assert.Empty(t, c.Value)
		}
	}
	assert.True(t, found)
}
