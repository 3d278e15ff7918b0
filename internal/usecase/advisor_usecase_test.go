package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestAdvisorAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without an AI backend", func(t *testing.T) {
		env := newTestEnv(t)
		advisor := NewAdvisorUseCase(nil, env.chatRepo, env.catalogRepo, env.sessionRepo, env.formatter, nil)

		assert.False(t, advisor.Enabled())
		_, err := advisor.Ask(ctx, env.sessionID, "brake pads for a Camry?")
		assert.ErrorIs(t, err, entity.ErrAdvisorDisabled)
	})

	t.Run("prompt carries the catalog in the session currency", func(t *testing.T) {
		env := newTestEnv(t)
		ai := new(MockAIRepository)
		advisor := NewAdvisorUseCase(ai, env.chatRepo, env.catalogRepo, env.sessionRepo, env.formatter, nil)

		ai.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return assert.Contains(t, prompt, "brake pads for a Camry?") &&
				assert.Contains(t, prompt, "Synthetic Motor Oil 5W-30 (SKU OIL-5W30-4L) - GH₵503.75") &&
				assert.Contains(t, prompt, "[Brakes & Suspension]") &&
				assert.Contains(t, prompt, "fits: Camry, Corolla, RAV4")
		}), []entity.Message{}).Return("Try BP-TY-001.", nil).Once()

		answer, err := advisor.Ask(ctx, env.sessionID, "brake pads for a Camry?")
		require.NoError(t, err)
		assert.Equal(t, "Try BP-TY-001.", answer)

		history, err := advisor.History(ctx, env.sessionID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "brake pads for a Camry?", history[0].Text)
		assert.Equal(t, "Try BP-TY-001.", history[0].Response)
		ai.AssertExpectations(t)

		require.NoError(t, advisor.ClearHistory(ctx, env.sessionID))
		history, _ = advisor.History(ctx, env.sessionID)
		assert.Empty(t, history)
	})

	t.Run("out of stock parts are marked", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.admin.SetStock(ctx, testAdmin, 3, 0)
		require.NoError(t, err)
		_, err = env.nav.SetCurrency(ctx, env.sessionID, entity.USD)
		require.NoError(t, err)

		ai := new(MockAIRepository)
		advisor := NewAdvisorUseCase(ai, env.chatRepo, env.catalogRepo, env.sessionRepo, env.formatter, nil)
		ai.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return assert.Contains(t, prompt, "LED Headlight Bulbs (H11) (SKU LGT-H11-LED) - $89.99, brand BMW, OUT OF STOCK")
		}), mock.Anything).Return("ok", nil).Once()

		_, err = advisor.Ask(ctx, env.sessionID, "headlights?")
		require.NoError(t, err)
	})

	t.Run("AI failure is not stored", func(t *testing.T) {
		env := newTestEnv(t)
		ai := new(MockAIRepository)
		advisor := NewAdvisorUseCase(ai, env.chatRepo, env.catalogRepo, env.sessionRepo, env.formatter, nil)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota")).Once()

		_, err := advisor.Ask(ctx, env.sessionID, "anything")
		assert.Error(t, err)

		history, _ := advisor.History(ctx, env.sessionID)
		assert.Empty(t, history)
	})

	t.Run("empty question", func(t *testing.T) {
		env := newTestEnv(t)
		advisor := NewAdvisorUseCase(new(MockAIRepository), env.chatRepo, env.catalogRepo, env.sessionRepo, env.formatter, nil)
		_, err := advisor.Ask(ctx, env.sessionID, "   ")
		assert.ErrorIs(t, err, entity.ErrEmptyQuestion)
	})
}
