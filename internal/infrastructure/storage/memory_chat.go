package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

type memoryChatRepository struct {
	mu       sync.RWMutex
	contexts map[string]*entity.ChatContext
	maxSize  int
}

// NewMemoryChatRepository in-memory advisor history yaratish.
// Each session keeps at most maxContextSize messages.
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	if maxContextSize <= 0 {
		maxContextSize = 10
	}
	return &memoryChatRepository{
		contexts: make(map[string]*entity.ChatContext),
		maxSize:  maxContextSize,
	}
}

// SaveMessage xabarni saqlash
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatCtx, exists := m.contexts[message.SessionID]
	if !exists {
		chatCtx = &entity.ChatContext{SessionID: message.SessionID}
		m.contexts[message.SessionID] = chatCtx
	}

	chatCtx.Messages = append(chatCtx.Messages, message)
	chatCtx.LastUsed = time.Now()

	// Maksimal hajmni nazorat qilish
	if len(chatCtx.Messages) > m.maxSize {
		chatCtx.Messages = append([]entity.Message(nil), chatCtx.Messages[len(chatCtx.Messages)-m.maxSize:]...)
	}

	return nil
}

// GetHistory sessiya chat tarixini olish
func (m *memoryChatRepository) GetHistory(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chatCtx, exists := m.contexts[sessionID]
	if !exists {
		return []entity.Message{}, nil
	}

	messages := chatCtx.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return append([]entity.Message(nil), messages...), nil
}

// ClearHistory sessiya tarixini tozalash
func (m *memoryChatRepository) ClearHistory(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, sessionID)
	return nil
}

// ClearAll barcha chat tarixlarini tozalash
func (m *memoryChatRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts = make(map[string]*entity.ChatContext)
	return nil
}
