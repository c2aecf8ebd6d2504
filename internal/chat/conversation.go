// ABOUTME: Conversation view over the message log for one (session, partner) pair
// ABOUTME: Append and ordered history replay; always re-queries the store

package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"secure-chat/internal/store"
)

// Message is one history entry as the presentation layer sees it.
type Message struct {
	Sender string
	Body   string
	SentAt time.Time
}

// Conversation is the open chat between an authenticated session and a
// partner. It carries no message data; Send and History go back to the
// store every time, so a partner's concurrently appended message shows
// up on the next read.
type Conversation struct {
	svc     *Service
	session *Session
	partner string
}

// Partner returns the other participant's username.
func (c *Conversation) Partner() string { return c.partner }

// OpenConversation validates the partner and returns the conversation.
// Fails with ErrSelfChat for the session's own username and
// ErrUnknownUser for an unregistered partner.
func (s *Service) OpenConversation(ctx context.Context, sess *Session, partner string) (*Conversation, error) {
	if err := s.requireAuth(sess); err != nil {
		return nil, err
	}

	partner = strings.TrimSpace(partner)
	if partner == "" {
		return nil, fmt.Errorf("%w: partner username required", ErrValidation)
	}
	if partner == sess.Username() {
		return nil, ErrSelfChat
	}

	exists, err := s.store.UserExists(ctx, partner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, partner)
	}

	return &Conversation{svc: s, session: sess, partner: partner}, nil
}

// Send appends a message from the session user to the partner. A body
// that trims to empty is silently dropped, mirroring the send box of
// the original client.
func (c *Conversation) Send(ctx context.Context, body string) error {
	if err := c.svc.requireAuth(c.session); err != nil {
		return err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	return c.svc.appendMessage(ctx, c.session.Username(), c.partner, body)
}

// History returns every message exchanged with the partner, in both
// directions, oldest first. An empty conversation yields an empty
// slice, not an error.
func (c *Conversation) History(ctx context.Context) ([]Message, error) {
	if err := c.svc.requireAuth(c.session); err != nil {
		return nil, err
	}
	return c.svc.history(ctx, c.session.Username(), c.partner)
}

// SendMessage is the flat form of Conversation.Send: it validates the
// partner and appends in one call.
func (s *Service) SendMessage(ctx context.Context, sess *Session, partner, body string) error {
	conv, err := s.OpenConversation(ctx, sess, partner)
	if err != nil {
		return err
	}
	return conv.Send(ctx, body)
}

// ConversationHistory is the flat form of Conversation.History.
func (s *Service) ConversationHistory(ctx context.Context, sess *Session, partner string) ([]Message, error) {
	conv, err := s.OpenConversation(ctx, sess, partner)
	if err != nil {
		return nil, err
	}
	return conv.History(ctx)
}

// appendMessage persists one message. Both endpoints must be registered
// users; an empty body is a validation failure at this level.
func (s *Service) appendMessage(ctx context.Context, sender, receiver, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: message body is empty", ErrValidation)
	}

	for _, username := range []string{sender, receiver} {
		exists, err := s.store.UserExists(ctx, username)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrUnknownUser, username)
		}
	}

	msg := &store.Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Receiver:  receiver,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Debug("sent message", "sender", sender, "receiver", receiver, "seq", msg.Seq)
	return nil
}

func (s *Service) history(ctx context.Context, userA, userB string) ([]Message, error) {
	rows, err := s.store.Conversation(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	messages := make([]Message, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, Message{
			Sender: m.Sender,
			Body:   m.Body,
			SentAt: m.CreatedAt,
		})
	}
	return messages, nil
}
