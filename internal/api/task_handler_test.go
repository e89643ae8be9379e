package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskPayload struct {
	ID        string `json:"id"`
	Detail    string `json:"detail"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type searchPayload struct {
	Tasks []taskPayload `json:"tasks"`
	Total int           `json:"total"`
}

func TestCreateTaskEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	rec, body := env.do(t, http.MethodPost, "/api/tasks/", token, map[string]string{
		"detail": "buy groceries",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Task created successfully", body.Message)

	var data taskPayload
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.NotEmpty(t, data.ID)
	assert.Equal(t, "buy groceries", data.Detail)
	assert.Equal(t, "pending", data.Status)
	assert.NotEmpty(t, data.CreatedAt)

	// The owner is implied by the token, never echoed back
	assert.NotContains(t, rec.Body.String(), "user_id")
}

func TestCreateTaskEndpointValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	// Absent detail
	rec, body := env.do(t, http.MethodPost, "/api/tasks/", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Missing required fields: detail", body.Message)

	// Whitespace-only detail
	rec, body = env.do(t, http.MethodPost, "/api/tasks/", token, map[string]string{
		"detail": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Task detail cannot be empty", body.Message)
}

func TestTaskEndpointsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	// No Authorization header
	rec, body := env.do(t, http.MethodPost, "/api/tasks/", "", map[string]string{
		"detail": "buy groceries",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Authorization header required", body.Message)

	// Garbage token
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", body.Message)

	// Expired token
	expired := newExpiredToken(t)
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", body.Message)
}

func TestUpdateTaskStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")
	taskID := env.createTask(t, token, "buy groceries")

	rec, body := env.do(t, http.MethodPut, "/api/tasks/"+taskID+"/status/", token, map[string]string{
		"status": "completed",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Task status updated successfully", body.Message)

	var data taskPayload
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, taskID, data.ID)
	assert.Equal(t, "completed", data.Status)
}

func TestUpdateTaskStatusEndpointFailures(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")
	taskID := env.createTask(t, token, "buy groceries")

	// Missing status field
	rec, body := env.do(t, http.MethodPut, "/api/tasks/"+taskID+"/status/", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Status field is required", body.Message)

	// Invalid status value
	rec, body = env.do(t, http.MethodPut, "/api/tasks/"+taskID+"/status/", token, map[string]string{
		"status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status. Must be one of: pending, completed, cancelled", body.Message)

	// Nonexistent task
	rec, body = env.do(t, http.MethodPut, "/api/tasks/"+uuid.NewString()+"/status/", token, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Task not found or you don't have permission to modify it", body.Message)

	// Unparsable task ID reads the same as a missing task
	rec, body = env.do(t, http.MethodPut, "/api/tasks/not-a-uuid/status/", token, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Task not found or you don't have permission to modify it", body.Message)
}

func TestUpdateTaskStatusCrossUser(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.registerUser(t, "owner@example.com")
	otherToken := env.registerUser(t, "other@example.com")
	taskID := env.createTask(t, ownerToken, "private task")

	rec, body := env.do(t, http.MethodPut, "/api/tasks/"+taskID+"/status/", otherToken, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Task not found or you don't have permission to modify it", body.Message)

	// The owner's task is unchanged
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data searchPayload
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "pending", data.Tasks[0].Status)
}

func TestSearchTasksEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")
	env.createTask(t, token, "buy groceries")
	env.createTask(t, token, "walk the dog")

	// Another user's tasks never leak into results
	otherToken := env.registerUser(t, "other@example.com")
	env.createTask(t, otherToken, "someone else's groceries")

	// No criteria: everything, newest first
	rec, body := env.do(t, http.MethodGet, "/api/tasks/search/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Search completed successfully", body.Message)

	var data searchPayload
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Equal(t, 2, data.Total)
	assert.Equal(t, "walk the dog", data.Tasks[0].Detail)
	assert.Equal(t, "buy groceries", data.Tasks[1].Detail)

	// Detail filter, case-insensitive
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/?detail=GROCERIES", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "buy groceries", data.Tasks[0].Detail)

	// Date filter
	today := time.Now().UTC().Format("2006-01-02")
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/?created_date="+today, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, 2, data.Total)

	// Combined filters
	rec, body = env.do(t, http.MethodGet, "/api/tasks/search/?detail=dog&created_date="+today, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "walk the dog", data.Tasks[0].Detail)
}

func TestSearchTasksEndpointMalformedDate(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	rec, body := env.do(t, http.MethodGet, "/api/tasks/search/?created_date=not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid created_date. Expected format: YYYY-MM-DD", body.Message)
}
