//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_AuthFlow walks the full account lifecycle: register, login,
// read the profile, update it, and confirm token enforcement.
func TestE2E_AuthFlow(t *testing.T) {
	ts := setupTestServer(t)
	username := "flow_" + uuid.New().String()[:8]

	// Register.
	status, result := ts.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"username": username,
		"password": "sunrise-pass-1",
		"email":    username + "@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", result)
	token := result["accessToken"].(string)
	user := result["user"].(map[string]any)
	assert.Equal(t, username, user["username"])

	// Duplicate registration conflicts.
	status, _ = ts.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"username": username,
		"password": "sunrise-pass-1",
	}, "")
	assert.Equal(t, http.StatusConflict, status)

	// Login with the same credentials issues a fresh token.
	status, result = ts.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": "sunrise-pass-1",
	}, "")
	require.Equal(t, http.StatusOK, status, "login: %v", result)
	loginToken := result["accessToken"].(string)
	require.NotEmpty(t, loginToken)

	// Wrong password is rejected.
	status, _ = ts.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Profile requires a token.
	status, _ = ts.doJSON(t, http.MethodGet, "/api/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, result = ts.doJSON(t, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, username, result["username"])

	// Update display name and settings.
	status, result = ts.doJSON(t, http.MethodPut, "/api/me", map[string]any{
		"displayName": "Early Bird",
		"settings":    map[string]any{"theme": "dark"},
	}, loginToken)
	require.Equal(t, http.StatusOK, status, "update: %v", result)
	assert.Equal(t, "Early Bird", result["displayName"])

	settings, ok := result["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dark", settings["theme"])

	// Fresh stats are all zero.
	status, result = ts.doJSON(t, http.MethodGet, "/api/me/stats", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, result["totalFavorites"])
	assert.EqualValues(t, 0, result["totalGoals"])
}
