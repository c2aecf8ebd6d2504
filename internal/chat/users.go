// ABOUTME: Registration, login, and user directory operations
// ABOUTME: bcrypt hashing with timing-safe verification against enumeration

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"secure-chat/internal/store"
)

// dummyHash is compared against when the username is unknown, so a
// failed login takes the same time whether or not the user exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// registerInput carries the validated registration fields.
type registerInput struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
}

// UserInfo is a directory entry: who is registered and since when.
// The password hash is never part of the directory view.
type UserInfo struct {
	Username string
	JoinedAt time.Time
}

// Register creates a new user. The password must match its
// confirmation, the username must be at least 3 characters and the
// password at least 6. Registration does not log the user in; the
// caller authenticates separately via Login.
func (s *Service) Register(ctx context.Context, username, password, confirm string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	in := registerInput{Username: username, Password: password}
	if err := s.validate.Struct(in); err != nil {
		if len(username) < 3 {
			return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
		}
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, username)
		}
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Info("registered user", "username", username)
	return nil
}

// Login verifies the credentials and returns a new Session. Empty
// fields, unknown usernames, and wrong passwords all fail with ErrAuth.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrAuth)
	}

	ok, err := s.verifyLogin(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuth
	}

	s.logger.Info("login successful", "username", username)
	return newSession(username), nil
}

// verifyLogin reports whether the credentials match a stored user.
// Unknown usernames return false, not an error.
func (s *Service) verifyLogin(ctx context.Context, username, password string) (bool, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Burn the same bcrypt cost as the found path
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// ListUsers returns all registered users, most recently joined first.
// The listing is re-read from the store on every call.
func (s *Service) ListUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, UserInfo{Username: u.Username, JoinedAt: u.CreatedAt})
	}
	return infos, nil
}

// UserExists reports whether the username is registered.
func (s *Service) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.store.UserExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return exists, nil
}
