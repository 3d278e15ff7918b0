package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestMemoryChatRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChatRepository(3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.SaveMessage(ctx, entity.Message{SessionID: "s1", Text: fmt.Sprintf("q%d", i)}))
	}
	require.NoError(t, repo.SaveMessage(ctx, entity.Message{SessionID: "s2", Text: "other"}))

	history, err := repo.GetHistory(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "q3", history[0].Text)
	assert.Equal(t, "q5", history[2].Text)

	history, _ = repo.GetHistory(ctx, "s1", 2)
	assert.Equal(t, "q4", history[0].Text)

	require.NoError(t, repo.ClearHistory(ctx, "s1"))
	history, _ = repo.GetHistory(ctx, "s1", 0)
	assert.Empty(t, history)

	require.NoError(t, repo.ClearAll(ctx))
	history, _ = repo.GetHistory(ctx, "s2", 0)
	assert.Empty(t, history)
}

func TestMemoryAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditRepository()

	for _, a := range []string{"create_product", "update_stock", "delete_product"} {
		require.NoError(t, repo.LogAction(ctx, entity.AdminAction{Action: a}))
	}

	actions, err := repo.ListActions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "delete_product", actions[0].Action)
	assert.Equal(t, "update_stock", actions[1].Action)

	all, _ := repo.ListActions(ctx, 0)
	assert.Len(t, all, 3)
}
