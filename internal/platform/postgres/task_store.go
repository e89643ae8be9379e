package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
	"github.com/taskdo/taskdo-api/internal/platform/logger"
	"github.com/taskdo/taskdo-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, detail, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Detail,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByIDAndUser implements store.TaskStore.GetByIDAndUser
// The lookup predicate combines id and owner in a single WHERE clause,
// so an ownership mismatch and a missing row are the same outcome:
// store.ErrTaskNotFound.
func (s *PostgresTaskStore) GetByIDAndUser(
	ctx context.Context,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, detail, status, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	var task domain.Task
	var status string

	err := s.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID,
		&task.UserID,
		&task.Detail,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			log.Debug("task not found for user",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	return &task, nil
}

// Find implements store.TaskStore.Find
// It retrieves all tasks matching the filter, ordered by created_at
// descending with ties broken by id descending. Returns an empty slice
// if no tasks match the criteria.
func (s *PostgresTaskStore) Find(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, detail, status, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
	`
	args := []any{filter.UserID}

	if filter.DetailContains != nil {
		args = append(args, "%"+escapeLikePattern(*filter.DetailContains)+"%")
		query += fmt.Sprintf(" AND detail ILIKE $%d", len(args))
	}

	if filter.CreatedOn != nil {
		args = append(args, filter.CreatedOn.Format("2006-01-02"))
		query += fmt.Sprintf(" AND (created_at AT TIME ZONE 'UTC')::date = $%d::date", len(args))
	}

	query += " ORDER BY created_at DESC, id DESC"

	log.Debug("finding tasks",
		slog.String("user_id", filter.UserID.String()),
		slog.Bool("by_detail", filter.DetailContains != nil),
		slog.Bool("by_date", filter.CreatedOn != nil))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", filter.UserID.String()))
		return nil, store.NewStoreError("task", "find", "failed to query tasks", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var status string

		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Detail,
			&status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}

		task.Status = domain.TaskStatus(status)
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("found tasks",
		slog.String("user_id", filter.UserID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// The UPDATE is scoped by the same id+owner predicate as GetByIDAndUser,
// and the refreshed row is returned in the same round trip.
// Returns store.ErrTaskNotFound if no task matches the predicate.
func (s *PostgresTaskStore) UpdateStatus(
	ctx context.Context,
	taskID, userID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		log.Warn("invalid status during task update",
			slog.String("task_id", taskID.String()),
			slog.String("status", string(status)))
		return nil, domain.ErrTaskInvalidStatus
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, detail, status, created_at, updated_at
	`

	var task domain.Task
	var statusStr string

	err := s.db.QueryRowContext(ctx, query, status, updatedAt, taskID, userID).Scan(
		&task.ID,
		&task.UserID,
		&task.Detail,
		&statusStr,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			log.Debug("task not found for status update",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		if isCheckViolation(err) {
			log.Warn("status rejected by check constraint",
				slog.String("task_id", taskID.String()),
				slog.String("status", string(status)))
			return nil, domain.ErrTaskInvalidStatus
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("status", string(status)))
		return nil, store.NewStoreError("task", "update_status", "failed to update task", err)
	}

	task.Status = domain.TaskStatus(statusStr)

	log.Info("task status updated successfully",
		slog.String("task_id", taskID.String()),
		slog.String("status", string(task.Status)))
	return &task, nil
}

// escapeLikePattern escapes the LIKE metacharacters in a user-supplied
// substring so it matches literally inside an ILIKE pattern.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
