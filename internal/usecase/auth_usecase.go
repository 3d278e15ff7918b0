package usecase

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"go.uber.org/zap"
)

const (
	mockUserID    = 1
	mockUserPhone = "0555555555"
	adminName     = "Vandrid Admin"
	customerName  = "Customer User"
)

// AuthUseCase mock login/register. There is no credential check: the role
// is derived from the email alone.
type AuthUseCase interface {
	// Login sets the session user; admins land on the dashboard, others on home
	Login(ctx context.Context, sessionID, email, password string) (entity.Session, error)

	// Register creates a customer and logs them in
	Register(ctx context.Context, sessionID string, form entity.Registration) (entity.Session, error)

	// Logout clears the user and returns to home
	Logout(ctx context.Context, sessionID string) (entity.Session, error)
}

type authUseCase struct {
	sessionRepo repository.SessionRepository
	adminEmail  string
	log         *zap.Logger
}

// NewAuthUseCase yangi AuthUseCase yaratish. An empty adminEmail means no
// login is ever granted the admin role.
func NewAuthUseCase(sessionRepo repository.SessionRepository, adminEmail string, log *zap.Logger) AuthUseCase {
	return &authUseCase{
		sessionRepo: sessionRepo,
		adminEmail:  strings.ToLower(strings.TrimSpace(adminEmail)),
		log:         logger.OrNop(log),
	}
}

// Login tizimga kirish
func (u *authUseCase) Login(ctx context.Context, sessionID, email, password string) (entity.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entity.Session{}, entity.ErrInvalidEmail
	}

	isAdmin := u.adminEmail != "" && strings.ToLower(email) == u.adminEmail
	user := &entity.User{
		ID:          mockUserID,
		Name:        customerName,
		Email:       email,
		PhoneNumber: mockUserPhone,
		Role:        entity.RoleCustomer,
		CreatedAt:   time.Now(),
	}
	if isAdmin {
		user.Name = adminName
		user.Role = entity.RoleAdmin
	}

	s, err := u.signIn(ctx, sessionID, user)
	if err != nil {
		return entity.Session{}, err
	}
	u.log.Info("user logged in",
		zap.String("session_id", sessionID),
		zap.String("role", string(user.Role)),
	)
	return s, nil
}

// Register ro'yxatdan o'tish
func (u *authUseCase) Register(ctx context.Context, sessionID string, form entity.Registration) (entity.Session, error) {
	if strings.TrimSpace(form.Name) == "" {
		return entity.Session{}, entity.ErrInvalidName
	}
	if strings.TrimSpace(form.Email) == "" {
		return entity.Session{}, entity.ErrInvalidEmail
	}
	if form.Password != form.ConfirmPassword {
		return entity.Session{}, entity.ErrPasswordMismatch
	}

	user := &entity.User{
		ID:          rand.IntN(1000),
		Name:        strings.TrimSpace(form.Name),
		Email:       strings.TrimSpace(form.Email),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Role:        entity.RoleCustomer,
		CreatedAt:   time.Now(),
	}
	return u.signIn(ctx, sessionID, user)
}

// Logout tizimdan chiqish
func (u *authUseCase) Logout(ctx context.Context, sessionID string) (entity.Session, error) {
	return u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		s.User = nil
		s.Page = entity.PageHome
		s.Params = entity.NavParams{}
		return nil
	})
}

func (u *authUseCase) signIn(ctx context.Context, sessionID string, user *entity.User) (entity.Session, error) {
	return u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		s.User = user
		s.Params = entity.NavParams{}
		if user.IsAdmin() {
			s.Page = entity.PageDashboard
		} else {
			s.Page = entity.PageHome
		}
		return nil
	})
}
