// ABOUTME: Tests for SQLite store implementation
// ABOUTME: Covers user uniqueness, listing order, message persistence and ordering

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testUser(username string, createdAt time.Time) *User {
	return &User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: "$2a$10$fakehashfortesting",
		CreatedAt:    createdAt,
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := testUser("alice", time.Now().UTC().Truncate(time.Second))
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}

	if got.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, user.ID)
	}
	if got.Username != user.Username {
		t.Errorf("Username mismatch: got %q, want %q", got.Username, user.Username)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", got.PasswordHash, user.PasswordHash)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUserByUsername(context.Background(), "nonexistent")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByUsername_CaseSensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("Alice", time.Now().UTC())); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := store.GetUserByUsername(ctx, "alice"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("alice", time.Now().UTC())); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	dup := testUser("alice", time.Now().UTC())
	dup.ID = "user-alice-2"
	if err := store.CreateUser(ctx, dup); err != ErrUsernameExists {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestUserExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.UserExists(ctx, "alice")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if exists {
		t.Error("expected alice to not exist yet")
	}

	if err := store.CreateUser(ctx, testUser("alice", time.Now().UTC())); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	exists, err = store.UserExists(ctx, "alice")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if !exists {
		t.Error("expected alice to exist")
	}
}

func TestListUsers_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	if err := store.CreateUser(ctx, testUser("alice", base)); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, testUser("bob", base.Add(time.Minute))); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, testUser("carol", base.Add(2*time.Minute))); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	want := []string{"carol", "bob", "alice"}
	if len(users) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(users))
	}
	for i, username := range want {
		if users[i].Username != username {
			t.Errorf("position %d: got %q, want %q", i, users[i].Username, username)
		}
	}
}

func TestListUsers_SameSecondStableOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Joins within the same second fall back to username order
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"zoe", "abe", "mia"} {
		if err := store.CreateUser(ctx, testUser(name, at)); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	want := []string{"abe", "mia", "zoe"}
	for i, username := range want {
		if users[i].Username != username {
			t.Errorf("position %d: got %q, want %q", i, users[i].Username, username)
		}
	}
}

func TestAppendMessage_AssignsSeq(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	msg := &Message{
		ID:        "msg-1",
		Sender:    "alice",
		Receiver:  "bob",
		Body:      "hello",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AppendMessage(ctx, msg); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if msg.Seq == 0 {
		t.Error("expected seq to be assigned on insert")
	}

	msg2 := &Message{
		ID:        "msg-2",
		Sender:    "bob",
		Receiver:  "alice",
		Body:      "hi",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AppendMessage(ctx, msg2); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if msg2.Seq <= msg.Seq {
		t.Errorf("expected seq to increase: first %d, second %d", msg.Seq, msg2.Seq)
	}
}

func TestConversation_Empty(t *testing.T) {
	store := newTestStore(t)

	messages, err := store.Conversation(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty conversation, got %d messages", len(messages))
	}
}

func TestConversation_Symmetric(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	appendMsg(t, store, "alice", "bob", "hello", base)
	appendMsg(t, store, "bob", "alice", "hi!", base.Add(time.Second))
	appendMsg(t, store, "alice", "bob", "how are you?", base.Add(2*time.Second))

	// A chat with a third user must not leak into the pair view
	appendMsg(t, store, "alice", "carol", "unrelated", base.Add(time.Second))

	ab, err := store.Conversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	ba, err := store.Conversation(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}

	if len(ab) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(ab))
	}
	if len(ab) != len(ba) {
		t.Fatalf("asymmetric conversation: %d vs %d messages", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].ID != ba[i].ID {
			t.Errorf("position %d: %q vs %q", i, ab[i].ID, ba[i].ID)
		}
	}

	wantBodies := []string{"hello", "hi!", "how are you?"}
	for i, body := range wantBodies {
		if ab[i].Body != body {
			t.Errorf("position %d: got %q, want %q", i, ab[i].Body, body)
		}
	}
}

func TestConversation_SameSecondKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// All messages share one coarse timestamp; seq must preserve order
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		appendMsg(t, store, "alice", "bob", fmt.Sprintf("burst-%d", i), at)
	}

	messages, err := store.Conversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if len(messages) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(messages))
	}
	for i, msg := range messages {
		want := fmt.Sprintf("burst-%d", i)
		if msg.Body != want {
			t.Errorf("position %d: got %q, want %q", i, msg.Body, want)
		}
	}
}

func TestConversation_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	appendMsg(t, store, "alice", "bob", "hello", time.Now().UTC())

	first, err := store.Conversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	second, err := store.Conversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("re-read changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Body != second[i].Body {
			t.Errorf("position %d differs between reads", i)
		}
	}
}

func appendMsg(t *testing.T, store *SQLiteStore, sender, receiver, body string, at time.Time) {
	t.Helper()
	msg := &Message{
		ID:        fmt.Sprintf("msg-%s-%s-%s", sender, receiver, body),
		Sender:    sender,
		Receiver:  receiver,
		Body:      body,
		CreatedAt: at,
	}
	if err := store.AppendMessage(context.Background(), msg); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
}
