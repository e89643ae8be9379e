package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
	"github.com/taskdo/taskdo-api/internal/service/auth"
	"github.com/taskdo/taskdo-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// MemoryUserStore implements the store.UserStore interface using an
// in-process map, mirroring the hashing behavior of the PostgreSQL
// store so auth flows can be exercised without a database.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	hasher  auth.PasswordHasher
}

// NewMemoryUserStore creates an empty in-memory UserStore. A nil
// hasher falls back to bcrypt at the default cost; tests usually pass
// auth.NewBcryptHasher(bcrypt.MinCost) to keep hashing fast.
func NewMemoryUserStore(hasher auth.PasswordHasher) *MemoryUserStore {
	if hasher == nil {
		hasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	}
	return &MemoryUserStore{
		users:   make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
		hasher:  hasher,
	}
}

// Ensure MemoryUserStore implements store.UserStore interface
var _ store.UserStore = (*MemoryUserStore)(nil)

// Create implements store.UserStore.Create
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}

	cp := *user
	if cp.Password != "" {
		hashed, err := s.hasher.Hash(cp.Password)
		if err != nil {
			return err
		}
		cp.HashedPassword = hashed
		cp.Password = ""
	}

	if cp.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	s.users[cp.ID] = &cp
	s.byEmail[cp.Email] = cp.ID

	// Mirror the postgres store: the caller's copy loses the plaintext.
	user.HashedPassword = cp.HashedPassword
	user.Password = ""
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	cp := *s.users[id]
	return &cp, nil
}

// EmailExists implements store.UserStore.EmailExists
func (s *MemoryUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}
