// Package store provides persistent storage for secure-chat using SQLite.
//
// # Data Models
//
//   - User: a registered identity with a bcrypt password hash and join time
//   - Message: a directed text message between two usernames
//
// Both tables are effectively append-only: the core never updates or
// deletes a user or a message once written.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode so that two independent processes
// of the application can share one database file:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA busy_timeout=5000;
//
// # Ordering
//
// Messages carry both an RFC3339 timestamp and a database-assigned seq
// column. Conversation queries order by (created_at, seq), so messages
// written within the same second are returned in insertion order.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity does not exist
//   - ErrUsernameExists: Username collision on user creation
//
// All methods accept context.Context for cancellation support.
package store
