package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin email lands on dashboard", func(t *testing.T) {
		env := newTestEnv(t)

		s, err := env.auth.Login(ctx, env.sessionID, "Admin@Vandrid.com", "x")
		require.NoError(t, err)
		require.NotNil(t, s.User)
		assert.Equal(t, entity.RoleAdmin, s.User.Role)
		assert.Equal(t, "Vandrid Admin", s.User.Name)
		assert.Equal(t, entity.PageDashboard, s.Page)
	})

	t.Run("anyone else is a customer", func(t *testing.T) {
		env := newTestEnv(t)

		s, err := env.auth.Login(ctx, env.sessionID, "jane@example.com", "x")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleCustomer, s.User.Role)
		assert.Equal(t, "Customer User", s.User.Name)
		assert.Equal(t, "0555555555", s.User.PhoneNumber)
		assert.Equal(t, entity.PageHome, s.Page)
	})

	t.Run("email required", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.auth.Login(ctx, env.sessionID, "   ", "x")
		assert.ErrorIs(t, err, entity.ErrInvalidEmail)
	})

	t.Run("no admin email configured", func(t *testing.T) {
		env := newTestEnv(t)
		auth := NewAuthUseCase(env.sessionRepo, "", nil)

		s, err := auth.Login(ctx, env.sessionID, "admin@vandrid.com", "x")
		require.NoError(t, err)
		assert.False(t, s.User.IsAdmin())
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	form := entity.Registration{
		Name: "Kwame Mensah", Email: "kwame@example.com", PhoneNumber: "0244000000",
		Password: "pw", ConfirmPassword: "pw",
	}

	t.Run("creates a customer", func(t *testing.T) {
		env := newTestEnv(t)

		s, err := env.auth.Register(ctx, env.sessionID, form)
		require.NoError(t, err)
		assert.Equal(t, "Kwame Mensah", s.User.Name)
		assert.Equal(t, entity.RoleCustomer, s.User.Role)
		assert.Equal(t, entity.PageHome, s.Page)
	})

	t.Run("password mismatch keeps the session anonymous", func(t *testing.T) {
		env := newTestEnv(t)
		bad := form
		bad.ConfirmPassword = "other"

		_, err := env.auth.Register(ctx, env.sessionID, bad)
		assert.ErrorIs(t, err, entity.ErrPasswordMismatch)

		s, _ := env.sessionRepo.Get(ctx, env.sessionID)
		assert.Nil(t, s.User)
	})

	t.Run("name required", func(t *testing.T) {
		env := newTestEnv(t)
		bad := form
		bad.Name = ""

		_, err := env.auth.Register(ctx, env.sessionID, bad)
		assert.ErrorIs(t, err, entity.ErrInvalidName)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.login(t, "admin@vandrid.com")

	s, err := env.auth.Logout(ctx, env.sessionID)
	require.NoError(t, err)
	assert.Nil(t, s.User)
	assert.Equal(t, entity.PageHome, s.Page)
}
