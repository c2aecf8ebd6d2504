// ABOUTME: Error taxonomy for the chat facade
// ABOUTME: Sentinel errors classify every failure the core can surface

package chat

import "errors"

// ErrValidation is returned for malformed input: short username or
// password, mismatched confirmation, empty message body.
var ErrValidation = errors.New("validation failed")

// ErrDuplicateUser is returned when registering a username that is taken.
var ErrDuplicateUser = errors.New("username already exists")

// ErrAuth is returned on failed login. Wrong password and unknown
// username are deliberately indistinguishable so error messages cannot
// be used to enumerate usernames.
var ErrAuth = errors.New("invalid username or password")

// ErrUnknownUser is returned when a chat partner is not registered.
var ErrUnknownUser = errors.New("unknown user")

// ErrSelfChat is returned when opening a conversation with oneself.
var ErrSelfChat = errors.New("cannot chat with yourself")

// ErrStore wraps persistence failures not otherwise classified.
var ErrStore = errors.New("store failure")
