package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
	"github.com/taskdo/taskdo-api/internal/store"
)

// MemoryTaskStore implements the store.TaskStore interface using an
// in-process map. It is used by service and handler tests, and by local
// development when no database is available. All operations copy tasks
// on the way in and out so callers never share mutable state with the
// store.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
	seq   map[uuid.UUID]int // insertion order, id -> sequence number
	next  int
}

// NewMemoryTaskStore creates an empty in-memory TaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
		seq:   make(map[uuid.UUID]int),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *task
	s.tasks[cp.ID] = &cp
	s.seq[cp.ID] = s.next
	s.next++
	return nil
}

// GetByIDAndUser implements store.TaskStore.GetByIDAndUser
// A task owned by another user yields store.ErrTaskNotFound, the same
// as a task that does not exist.
func (s *MemoryTaskStore) GetByIDAndUser(
	ctx context.Context,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	cp := *task
	return &cp, nil
}

// Find implements store.TaskStore.Find
// Results are ordered by created_at descending, ties broken by
// insertion order descending (matching the id-descending ordering of
// the PostgreSQL store, since task IDs are time-ordered).
func (s *MemoryTaskStore) Find(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var needle string
	if filter.DetailContains != nil {
		needle = strings.ToLower(*filter.DetailContains)
	}

	matched := []*domain.Task{}
	for _, task := range s.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.DetailContains != nil &&
			!strings.Contains(strings.ToLower(task.Detail), needle) {
			continue
		}
		if filter.CreatedOn != nil && !sameDate(task.CreatedAt, *filter.CreatedOn) {
			continue
		}

		cp := *task
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return s.seq[matched[i].ID] > s.seq[matched[j].ID]
	})

	return matched, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *MemoryTaskStore) UpdateStatus(
	ctx context.Context,
	taskID, userID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrTaskInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	// The domain entity owns the transition rule.
	if err := task.SetStatus(status); err != nil {
		return nil, err
	}

	cp := *task
	return &cp, nil
}

// sameDate reports whether two instants fall on the same UTC calendar date.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
