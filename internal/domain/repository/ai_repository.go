package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// GenerateResponse answers prompt given the earlier exchanges
	GenerateResponse(ctx context.Context, prompt string, history []entity.Message) (string, error)
}
