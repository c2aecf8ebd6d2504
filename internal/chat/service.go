// ABOUTME: Service is the single entry point the presentation layer calls
// ABOUTME: Coordinates the credential store and message log behind typed errors

package chat

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"secure-chat/internal/store"
)

// Service is the session/access facade over the durable store. It holds
// no row data across calls: every read re-queries the store, so writes
// from a concurrent process become visible on the next read.
type Service struct {
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a new chat service backed by the given store.
func New(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		validate: validator.New(),
		logger:   logger.With("component", "chat"),
	}
}
