package api

import (
	"net/http"

	"github.com/taskdo/taskdo-api/internal/api/middleware"
	"github.com/taskdo/taskdo-api/internal/api/shared"
	"github.com/taskdo/taskdo-api/internal/service"
)

// appVersion is reported by the health endpoint.
const appVersion = "1.0.0"

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given task service.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles POST /api/tasks/.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var params service.CreateTaskParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result := h.taskService.CreateTask(r.Context(), userID, params)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// UpdateTaskStatus handles PUT /api/tasks/{task_id}/status/.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathUUID(r, "task_id")
	if err != nil {
		// An unparsable ID cannot name any task the caller owns.
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			service.FailureResult(service.MsgTaskNotOwned, nil))
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Status == "" {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, service.Result{
			Success: false,
			Message: "Status field is required",
		})
		return
	}

	result := h.taskService.UpdateTaskStatus(r.Context(), userID, taskID, req.Status)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SearchTasks handles GET /api/tasks/search/. Both query parameters are
// optional; with neither present all of the caller's tasks are
// returned.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	params := service.SearchParams{
		Detail:      r.URL.Query().Get("detail"),
		CreatedDate: r.URL.Query().Get("created_date"),
	}

	result := h.taskService.SearchTasks(r.Context(), userID, params)
	if !result.Success {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// HealthCheck handles GET /api/health/.
func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Todo API is running successfully",
		Version: appVersion,
	})
}
