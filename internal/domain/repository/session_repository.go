package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// SessionRepository storefront sessions bilan ishlash uchun interface
type SessionRepository interface {
	// GetOrCreate returns the session with id, creating it when missing.
	// An empty id always creates a new session with a generated id.
	GetOrCreate(ctx context.Context, id string) (entity.Session, error)

	// Get sessiyani olish
	Get(ctx context.Context, id string) (entity.Session, error)

	// Update runs fn on the session under its lock and stores the result.
	// If fn returns an error nothing is stored.
	Update(ctx context.Context, id string, fn func(s *entity.Session) error) (entity.Session, error)
}
