package builder

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(logger ports.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sets the domain event publisher.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Store) {
		s.publisher = publisher
	}
}

// WithStorage sets the backend used by Save and Restore.
func WithStorage(storage ports.KeyValueStore) Option {
	return func(s *Store) {
		s.storage = storage
	}
}

// WithHistoryLimit bounds both history stacks.
func WithHistoryLimit(limit int) Option {
	return func(s *Store) {
		s.history = NewHistory(limit)
	}
}

// WithClock overrides the time source used for LastSaved.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides component id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewComponentID returns a fresh opaque component id.
func NewComponentID() string {
	return "component_" + uuid.NewString()
}
