package storage

import (
	"context"
	"sync"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

type memoryAuditRepository struct {
	mu      sync.RWMutex
	actions []entity.AdminAction
}

// NewMemoryAuditRepository in-memory audit log yaratish
func NewMemoryAuditRepository() repository.AuditRepository {
	return &memoryAuditRepository{}
}

// LogAction admin harakatini loglash
func (m *memoryAuditRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}

// ListActions oxirgi harakatlar, yangilari birinchi
func (m *memoryAuditRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.actions)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]entity.AdminAction, 0, n)
	for i := len(m.actions) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.actions[i])
	}
	return result, nil
}
