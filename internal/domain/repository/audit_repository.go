package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// AuditRepository admin harakatlarini saqlash uchun interface
type AuditRepository interface {
	// LogAction admin harakatini loglash
	LogAction(ctx context.Context, action entity.AdminAction) error

	// ListActions newest first; limit <= 0 returns everything
	ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}
