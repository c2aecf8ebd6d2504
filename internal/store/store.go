// ABOUTME: Store interface and data types for secure-chat persistence
// ABOUTME: Defines User, Message structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create a user with an existing username
var ErrUsernameExists = errors.New("username already exists")

// User represents a registered identity. Users are created once and
// never updated or deleted.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, never the raw password
	CreatedAt    time.Time
}

// Message represents a single directed text message between two users.
// Messages are append-only: once written they are never mutated.
//
// Seq is assigned by the database on insert and is strictly increasing
// with insertion order. History queries order by (CreatedAt, Seq) so
// messages written within the same second keep their insertion order.
type Message struct {
	Seq       int64
	ID        string
	Sender    string
	Receiver  string
	Body      string
	CreatedAt time.Time
}

// Store defines the interface for user and message persistence
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context) ([]*User, error)

	// Messages
	AppendMessage(ctx context.Context, msg *Message) error
	Conversation(ctx context.Context, userA, userB string) ([]*Message, error)

	Close() error
}
