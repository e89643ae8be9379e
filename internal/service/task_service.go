package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
	"github.com/taskdo/taskdo-api/internal/store"
)

// dateLayout is the accepted format for the created_date search
// parameter.
const dateLayout = "2006-01-02"

// CreateTaskParams carries the client-supplied fields for task
// creation. Detail is a pointer so an absent field and an empty field
// can both be reported as missing.
type CreateTaskParams struct {
	Detail *string `json:"detail"`
}

// SearchParams carries the optional task search criteria. Empty values
// mean the criterion is absent.
type SearchParams struct {
	Detail      string
	CreatedDate string
}

// TaskData is the task representation embedded in envelopes. The owner
// is implied by the authenticated caller and never echoed back.
type TaskData struct {
	ID        uuid.UUID `json:"id"`
	Detail    string    `json:"detail"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchData is the payload for a completed search.
type SearchData struct {
	Tasks []TaskData `json:"tasks"`
	Total int        `json:"total"`
}

// TaskService provides task-related operations. Every method returns an
// envelope; failures are folded into it rather than returned as errors.
type TaskService interface {
	// CreateTask creates a pending task owned by the given user.
	CreateTask(ctx context.Context, userID uuid.UUID, params CreateTaskParams) Result

	// UpdateTaskStatus changes the status of one of the user's tasks.
	// The status is validated before any lookup, so an invalid status is
	// reported the same way whether or not the task exists.
	UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status string) Result

	// SearchTasks returns the user's tasks matching the given criteria,
	// newest first. With no criteria it returns all of the user's tasks.
	SearchTasks(ctx context.Context, userID uuid.UUID, params SearchParams) Result
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// CreateTask validates the supplied detail, persists a new pending task
// for the user, and returns it in the envelope.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	params CreateTaskParams,
) Result {
	if params.Detail == nil || *params.Detail == "" {
		return validationFailure(missingFieldsMessage([]string{"detail"}))
	}
	if strings.TrimSpace(*params.Detail) == "" {
		return validationFailure(MsgTaskDetailEmpty)
	}

	task, err := domain.NewTask(userID, *params.Detail)
	if err != nil {
		s.logger.Error("failed to construct task",
			"error", err,
			"user_id", userID)
		return internalFailure("Error creating task", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			"error", err,
			"user_id", userID,
			"task_id", task.ID)
		return internalFailure("Error creating task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", userID)

	return SuccessResult("Task created successfully", newTaskData(task))
}

// UpdateTaskStatus changes the status of the user's task identified by
// taskID. A task that does not exist and a task owned by another user
// produce the same failure.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status string,
) Result {
	newStatus := domain.TaskStatus(status)
	if !newStatus.IsValid() {
		return validationFailure(MsgInvalidStatus)
	}

	task, err := s.taskStore.UpdateStatus(ctx, taskID, userID, newStatus)
	if err != nil {
		if store.IsNotFoundError(err) {
			return validationFailure(MsgTaskNotOwned)
		}
		s.logger.Error("failed to update task status",
			"error", err,
			"user_id", userID,
			"task_id", taskID,
			"target_status", newStatus)
		return internalFailure("Error updating task status", err)
	}

	s.logger.Info("task status updated",
		"task_id", taskID,
		"user_id", userID,
		"status", newStatus)

	return SuccessResult("Task status updated successfully", newTaskData(task))
}

// SearchTasks dispatches on which criteria are present and returns the
// matching tasks ordered by creation time, newest first.
func (s *taskServiceImpl) SearchTasks(
	ctx context.Context,
	userID uuid.UUID,
	params SearchParams,
) Result {
	filter, err := buildTaskFilter(userID, params)
	if err != nil {
		return validationFailure(MsgInvalidCreatedDate)
	}

	tasks, err := s.taskStore.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to search tasks",
			"error", err,
			"user_id", userID)
		return internalFailure("Error searching tasks", err)
	}

	data := SearchData{
		Tasks: make([]TaskData, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		data.Tasks = append(data.Tasks, newTaskData(t))
	}

	return SuccessResult("Search completed successfully", data)
}

// buildTaskFilter normalizes the search criteria into a store filter.
// A whitespace-only detail counts as absent. The criteria always
// combine conjunctively with the owner restriction.
func buildTaskFilter(userID uuid.UUID, params SearchParams) (store.TaskFilter, error) {
	filter := store.TaskFilter{UserID: userID}

	if detail := strings.TrimSpace(params.Detail); detail != "" {
		filter.DetailContains = &detail
	}
	if params.CreatedDate != "" {
		day, err := time.ParseInLocation(dateLayout, params.CreatedDate, time.UTC)
		if err != nil {
			return store.TaskFilter{}, err
		}
		filter.CreatedOn = &day
	}

	return filter, nil
}

// newTaskData copies the fields of a task into its envelope
// representation.
func newTaskData(t *domain.Task) TaskData {
	return TaskData{
		ID:        t.ID,
		Detail:    t.Detail,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
