package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdo/taskdo-api/internal/api"
	apiMiddleware "github.com/taskdo/taskdo-api/internal/api/middleware"
	"github.com/taskdo/taskdo-api/internal/platform/memory"
	"github.com/taskdo/taskdo-api/internal/service"
	"github.com/taskdo/taskdo-api/internal/service/auth"
)

const testJWTSecret = "test-secret-key-thats-32-characters"

// envelope mirrors the response body shape for decoding in tests. Data
// stays raw so each test can decode the payload it expects.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// testEnv bundles the wired router and its services so tests can both
// drive HTTP and arrange state directly.
type testEnv struct {
	router      http.Handler
	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userStore := memory.NewMemoryUserStore(auth.NewBcryptHasher(bcrypt.MinCost))
	taskStore := memory.NewMemoryTaskStore()

	userService, err := service.NewUserService(userStore, auth.NewBcryptVerifier(), nil)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(taskStore, nil)
	require.NoError(t, err)

	jwtService := auth.NewTestJWTService(testJWTSecret, time.Hour, time.Now)

	authHandler := api.NewAuthHandler(userService, jwtService)
	taskHandler := api.NewTaskHandler(taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(apiMiddleware.TraceMiddleware)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health/", taskHandler.HealthCheck)
		r.Post("/auth/register/", authHandler.Register)
		r.Post("/auth/login/", authHandler.Login)
		r.Post("/auth/refresh/", authHandler.RefreshToken)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/auth/me/", authHandler.Me)
			r.Post("/tasks/", taskHandler.CreateTask)
			r.Get("/tasks/search/", taskHandler.SearchTasks)
			r.Put("/tasks/{task_id}/status/", taskHandler.UpdateTaskStatus)
		})
	})

	return &testEnv{
		router:      r,
		jwtService:  jwtService,
		userService: userService,
		taskService: taskService,
	}
}

// do sends a request through the router and returns the recorded
// response with its decoded envelope.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response body was not valid JSON: %s", rec.Body.String())
	return rec, env
}

// newExpiredToken signs an access token whose expiry is already in the
// past, using the same secret as the test router.
func newExpiredToken(t *testing.T) string {
	t.Helper()

	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	svc := auth.NewTestJWTService(testJWTSecret, time.Hour, past)
	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)
	return token
}

// registerUser creates an account through the API and returns an access
// token for it.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	rec, env := e.do(t, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"email":      email,
		"password":   "securepassword",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "registration failed: %s", env.Message)

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	rec, env = e.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    email,
		"password": "securepassword",
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", env.Message)

	var login struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Access)
	return login.Access
}

// createTask creates a task through the API and returns its ID.
func (e *testEnv) createTask(t *testing.T, token, detail string) string {
	t.Helper()

	rec, env := e.do(t, http.MethodPost, "/api/tasks/", token, map[string]string{"detail": detail})
	require.Equal(t, http.StatusCreated, rec.Code, "task creation failed: %s", env.Message)

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.ID)
	return data.ID
}
