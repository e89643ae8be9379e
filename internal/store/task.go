package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
)

// TaskFilter describes the predicate for task queries. All set fields
// are combined with AND; zero-valued optional fields are ignored.
// UserID is mandatory: every query is implicitly scoped to the owner,
// and no filter can widen visibility beyond one user's tasks.
type TaskFilter struct {
	// UserID scopes the query to tasks owned by this user. Required.
	UserID uuid.UUID

	// DetailContains, when non-nil, matches tasks whose detail contains
	// the given substring, case-insensitively.
	DetailContains *string

	// CreatedOn, when non-nil, matches tasks whose created_at falls on
	// the given calendar date. Only the date component is compared;
	// time-of-day is ignored.
	CreatedOn *time.Time
}

// TaskStore defines the interface for task data persistence.
// Implementations must return results ordered by created_at descending
// with ties broken by id descending, so that query results are stable
// and deterministic across calls.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDAndUser retrieves a task by its ID, scoped to the given
	// owner. The lookup is a single conjunctive predicate
	// (id = taskID AND user_id = userID): a task owned by another user
	// yields ErrTaskNotFound exactly like a nonexistent task, so
	// existence is never leaked across owners.
	GetByIDAndUser(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)

	// Find retrieves all tasks matching the filter, ordered by
	// created_at descending then id descending. Returns an empty slice
	// (never nil) when nothing matches.
	Find(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// UpdateStatus overwrites the status of the task identified by
	// taskID, scoped to the given owner, refreshing updated_at.
	// Returns the updated task on success. Returns ErrTaskNotFound when
	// no task matches the id+owner predicate (same opacity rule as
	// GetByIDAndUser). The status must already be validated by the caller.
	UpdateStatus(
		ctx context.Context,
		taskID, userID uuid.UUID,
		status domain.TaskStatus,
	) (*domain.Task, error)
}
