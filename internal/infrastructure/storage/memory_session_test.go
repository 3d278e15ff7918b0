package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id creates a new session", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.GHS)

		s, err := repo.GetOrCreate(ctx, "")
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, entity.PageHome, s.Page)
		assert.Equal(t, entity.GHS, s.Currency)
		assert.Empty(t, s.Cart)

		again, err := repo.GetOrCreate(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, again.ID)
	})

	t.Run("client supplied id is kept", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD)

		s, err := repo.GetOrCreate(ctx, "chat-42")
		require.NoError(t, err)
		assert.Equal(t, "chat-42", s.ID)
	})

	t.Run("update stores changes", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD)
		s, _ := repo.GetOrCreate(ctx, "")

		_, err := repo.Update(ctx, s.ID, func(s *entity.Session) error {
			s.Page = entity.PageCart
			return nil
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PageCart, got.Page)
	})

	t.Run("failed update stores nothing", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD)
		s, _ := repo.GetOrCreate(ctx, "")
		boom := errors.New("boom")

		_, err := repo.Update(ctx, s.ID, func(s *entity.Session) error {
			s.Page = entity.PageCart
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, _ := repo.Get(ctx, s.ID)
		assert.Equal(t, entity.PageHome, got.Page)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD)

		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, entity.ErrSessionNotFound)
		_, err = repo.Update(ctx, "nope", func(*entity.Session) error { return nil })
		assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	})

	t.Run("updates on one session do not interleave", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD)
		s, _ := repo.GetOrCreate(ctx, "")

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.Update(ctx, s.ID, func(s *entity.Session) error {
					s.Params.ID++
					return nil
				})
			}()
		}
		wg.Wait()

		got, _ := repo.Get(ctx, s.ID)
		assert.Equal(t, 50, got.Params.ID)
	})

	t.Run("cap evicts the least recently updated session", func(t *testing.T) {
		repo := NewMemorySessionRepository(entity.USD, WithMaxSessions(2))

		_, err := repo.GetOrCreate(ctx, "a")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = repo.GetOrCreate(ctx, "b")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = repo.Update(ctx, "a", func(s *entity.Session) error { return nil })
		require.NoError(t, err)

		_, err = repo.GetOrCreate(ctx, "c")
		require.NoError(t, err)

		_, err = repo.Get(ctx, "b")
		assert.ErrorIs(t, err, entity.ErrSessionNotFound)
		_, err = repo.Get(ctx, "a")
		assert.NoError(t, err)
		_, err = repo.Get(ctx, "c")
		assert.NoError(t, err)
	})
}
