package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskDetailEmpty is returned when a task's detail is empty after
	// trimming leading and trailing whitespace.
	ErrTaskDetailEmpty = errors.New("task detail cannot be empty")

	// ErrTaskInvalidStatus is returned when a task's status is not one of
	// the recognized status values.
	ErrTaskInvalidStatus = errors.New("invalid task status")
)

// TaskStatus represents the lifecycle state of a task.
// It is a closed enumeration: only the three declared values are ever
// persisted, and validity is checked at the boundary rather than by
// ad-hoc string comparison in callers.
type TaskStatus string

const (
	// TaskStatusPending is the initial status of every task.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusCompleted marks a task as done.
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusCancelled marks a task as abandoned.
	TaskStatusCancelled TaskStatus = "cancelled"
)

// ValidTaskStatuses lists every recognized status, in declaration order.
// Exposed so callers can build user-facing messages without duplicating
// the enumeration.
var ValidTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// IsValid reports whether the status is a member of the closed set.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Task represents a single to-do item owned by exactly one user.
// Ownership is exclusive: every read, search, and mutation is scoped to
// the owning user, and tasks are never shared or transferred.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Detail    string     `json:"detail"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTask creates a new Task for the given user with the given detail.
// The detail is trimmed of surrounding whitespace and must be non-empty
// afterwards; the status is always forced to pending at creation.
//
// Task IDs are UUIDv7, so creation order is embedded in the ID itself.
// This gives search results a stable, deterministic secondary sort key
// (id descending) for tasks created within the same timestamp.
func NewTask(userID uuid.UUID, detail string) (*Task, error) {
	now := time.Now().UTC()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:        id,
		UserID:    userID,
		Detail:    strings.TrimSpace(detail),
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Detail) == "" {
		return ErrTaskDetailEmpty
	}

	if !t.Status.IsValid() {
		return ErrTaskInvalidStatus
	}

	return nil
}

// SetStatus overwrites the task's status and refreshes UpdatedAt.
// Any status may transition to any other status: completed and
// cancelled are deliberately not terminal, and callers must not add
// transition restrictions here.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrTaskInvalidStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}
