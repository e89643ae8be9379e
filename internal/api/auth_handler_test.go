package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"email":      "jane@example.com",
		"password":   "securepassword",
		"first_name": "Jane",
		"last_name":  "Doe",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)

	var data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.NotEmpty(t, data.ID)
	assert.Equal(t, "jane@example.com", data.Email)
	assert.Equal(t, "Jane", data.FirstName)
	assert.Equal(t, "Doe", data.LastName)

	// The password never appears anywhere in the response
	assert.NotContains(t, rec.Body.String(), "securepassword")
}

func TestRegisterEndpointFailures(t *testing.T) {
	env := newTestEnv(t)

	// Missing fields
	rec, body := env.do(t, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Missing required fields: password, first_name, last_name", body.Message)

	// Duplicate email
	env.registerUser(t, "dup@example.com")
	rec, body = env.do(t, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"email":      "dup@example.com",
		"password":   "securepassword",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", body.Message)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jane@example.com")

	rec, body := env.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    "jane@example.com",
		"password": "securepassword",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Authentication successful", body.Message)

	var data struct {
		Email     string `json:"email"`
		Access    string `json:"access"`
		Refresh   string `json:"refresh"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "jane@example.com", data.Email)
	assert.NotEmpty(t, data.Access)
	assert.NotEmpty(t, data.Refresh)
	assert.Equal(t, 3600, data.ExpiresIn)
}

func TestLoginEndpointFailures(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jane@example.com")

	// Wrong password
	rec, body := env.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    "jane@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid email or password", body.Message)

	// Unknown email reads identically
	rec, body = env.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "securepassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", body.Message)
}

func TestRefreshTokenEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jane@example.com")

	rec, body := env.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    "jane@example.com",
		"password": "securepassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))

	rec, body = env.do(t, http.MethodPost, "/api/auth/refresh/", "", map[string]string{
		"refresh": login.Refresh,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	var data struct {
		Access    string `json:"access"`
		Refresh   string `json:"refresh"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.NotEmpty(t, data.Access)
	assert.NotEmpty(t, data.Refresh)
	assert.Equal(t, 3600, data.ExpiresIn)

	// The new access token works against a protected route
	rec, _ = env.do(t, http.MethodGet, "/api/tasks/search/", data.Access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshTokenEndpointFailures(t *testing.T) {
	env := newTestEnv(t)

	// Missing token
	rec, body := env.do(t, http.MethodPost, "/api/auth/refresh/", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refresh token is required", body.Message)

	// Garbage token
	rec, body = env.do(t, http.MethodPost, "/api/auth/refresh/", "", map[string]string{
		"refresh": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired refresh token", body.Message)

	// An access token cannot be used as a refresh token
	token := env.registerUser(t, "jane@example.com")
	rec, body = env.do(t, http.MethodPost, "/api/auth/refresh/", "", map[string]string{
		"refresh": token,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired refresh token", body.Message)
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	rec, body := env.do(t, http.MethodGet, "/api/auth/me/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "User profile retrieved successfully", body.Message)

	var data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.NotEmpty(t, data.ID)
	assert.Equal(t, "jane@example.com", data.Email)
	assert.Equal(t, "Jane", data.FirstName)
	assert.Equal(t, "Doe", data.LastName)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestMeEndpointRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/auth/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header required", body.Message)
}

func TestMeEndpointUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	// A well-formed token whose user was never created, as after an
	// account deletion.
	token, err := env.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodGet, "/api/auth/me/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "User not found", body.Message)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/health/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "Todo API is running successfully", health.Message)
	assert.Equal(t, "1.0.0", health.Version)
}
