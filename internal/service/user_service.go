package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdo/taskdo-api/internal/domain"
	"github.com/taskdo/taskdo-api/internal/service/auth"
	"github.com/taskdo/taskdo-api/internal/store"
)

// RegisterParams carries the client-supplied fields for registration.
// Pointers distinguish absent fields from empty ones so both can be
// reported as missing.
type RegisterParams struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UserData is the user representation embedded in envelopes. Password
// material never appears here.
type UserData struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// UserService provides registration and authentication. Like
// TaskService, every method returns an envelope.
type UserService interface {
	// Register creates a new user account.
	Register(ctx context.Context, params RegisterParams) Result

	// Authenticate verifies an email and password pair. An unknown email
	// and a wrong password produce the same failure.
	Authenticate(ctx context.Context, email, password string) Result

	// GetProfile looks up the account fields for the given user ID.
	GetProfile(ctx context.Context, userID uuid.UUID) Result
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if the user store or password verifier is nil.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", nil)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Register validates the supplied fields, rejects duplicate emails, and
// creates the account with a hashed password.
func (s *userServiceImpl) Register(ctx context.Context, params RegisterParams) Result {
	var missing []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"email", params.Email},
		{"password", params.Password},
		{"first_name", params.FirstName},
		{"last_name", params.LastName},
	} {
		if f.value == nil || *f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return validationFailure(missingFieldsMessage(missing))
	}

	if !validEmailFormat(*params.Email) {
		return validationFailure("Invalid email format")
	}
	if !validPasswordStrength(*params.Password) {
		return validationFailure("Password must be at least 8 characters long")
	}

	exists, err := s.userStore.EmailExists(ctx, *params.Email)
	if err != nil {
		s.logger.Error("failed to check email existence",
			"error", err)
		return internalFailure("Failed to register user", err)
	}
	if exists {
		return validationFailure(MsgEmailTaken)
	}

	user, err := domain.NewUser(*params.Email, *params.Password, *params.FirstName, *params.LastName)
	if err != nil {
		s.logger.Error("failed to construct user",
			"error", err)
		return internalFailure("Failed to register user", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		// Concurrent registration can still hit the unique constraint
		// after the existence check passed.
		if store.IsDuplicateError(err) {
			return validationFailure(MsgEmailTaken)
		}
		s.logger.Error("failed to save user",
			"error", err,
			"user_id", user.ID)
		return internalFailure("Failed to register user", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID)

	return SuccessResult("User registered successfully", UserData{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Authenticate verifies the password against the stored hash and
// returns the account data on success. Credential failures carry no
// hint of which part was wrong.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) Result {
	if !validEmailFormat(email) {
		return validationFailure("Invalid email format")
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return validationFailure(MsgInvalidCredentials)
		}
		s.logger.Error("failed to look up user",
			"error", err)
		return internalFailure("Authentication failed", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch",
			"user_id", user.ID)
		return validationFailure(MsgInvalidCredentials)
	}

	s.logger.Info("user authenticated",
		"user_id", user.ID)

	return SuccessResult("Authentication successful", UserData{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// GetProfile returns the account fields for the given user ID. A
// missing account can happen when a token outlives its user.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) Result {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return validationFailure(MsgUserNotFound)
		}
		s.logger.Error("failed to look up user",
			"error", err,
			"user_id", userID)
		return internalFailure("Error retrieving user profile", err)
	}

	return SuccessResult("User profile retrieved successfully", UserData{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
