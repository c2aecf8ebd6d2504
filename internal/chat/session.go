// ABOUTME: Session value representing one authenticated identity
// ABOUTME: Threaded explicitly through facade calls, never ambient global state

package chat

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one authenticated user. It is created by Login and
// passed explicitly to every facade call, so multiple sessions can
// coexist in one process (two test users, or a future multi-client
// design). Logout invalidates it; there is no other lifecycle.
type Session struct {
	id         string
	username   string
	loggedInAt time.Time
	active     bool
}

func newSession(username string) *Session {
	return &Session{
		id:         uuid.New().String(),
		username:   username,
		loggedInAt: time.Now(),
		active:     true,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Username returns the authenticated username.
func (s *Session) Username() string { return s.username }

// LoggedInAt returns when the session was created.
func (s *Session) LoggedInAt() time.Time { return s.loggedInAt }

// Active reports whether the session is still usable.
func (s *Session) Active() bool { return s != nil && s.active }

// Logout invalidates the session and clears its identity. Facade calls
// with a logged-out session fail with ErrAuth.
func (s *Service) Logout(sess *Session) {
	if sess == nil || !sess.active {
		return
	}
	s.logger.Info("logout", "username", sess.username)
	sess.active = false
	sess.username = ""
}

// requireAuth checks that the session is present and still active.
func (s *Service) requireAuth(sess *Session) error {
	if !sess.Active() {
		return ErrAuth
	}
	return nil
}
