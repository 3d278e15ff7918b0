package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// ChatRepository advisor chat history bilan ishlash uchun interface
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory last limit messages of a session, oldest first (limit <= 0: all)
	GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.Message, error)

	// ClearHistory sessiya tarixini tozalash
	ClearHistory(ctx context.Context, sessionID string) error

	// ClearAll barcha tarixlarni o'chirish
	ClearAll(ctx context.Context) error
}
