// Package chat is the session/access facade over the durable store.
//
// # Overview
//
// The presentation layer talks to the core exclusively through Service:
//
//   - Register / Login: credential creation and verification
//   - ListUsers / UserExists: the user directory
//   - OpenConversation: validated entry into a two-party conversation
//   - Conversation.Send / Conversation.History: the message log
//   - SendMessage / ConversationHistory: flat forms of the above
//   - Logout: session invalidation
//
// # Sessions
//
// Login returns an explicit *Session value which the caller threads
// through every subsequent operation. There is no package-level
// "current user"; two sessions can coexist in one process.
//
// # Errors
//
// Every failure is classified by a sentinel error (ErrValidation,
// ErrDuplicateUser, ErrAuth, ErrUnknownUser, ErrSelfChat, ErrStore)
// with detail attached via wrapping; callers match with errors.Is.
// The core never retries a failed store operation.
//
// # Passwords
//
// Passwords are stored as bcrypt hashes. Login compares against a
// dummy hash when the username is unknown, so neither the result nor
// the timing distinguishes a missing user from a wrong password.
package chat
