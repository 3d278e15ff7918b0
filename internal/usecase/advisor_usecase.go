package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"go.uber.org/zap"
)

const (
	advisorTimeout = 20 * time.Second
	historyLimit   = 10
)

// PriceFormatter renders canonical prices for display
type PriceFormatter interface {
	MustFormat(amount float64, code entity.CurrencyCode) string
}

// AdvisorUseCase ehtiyot qismlar bo'yicha maslahatchi
type AdvisorUseCase interface {
	// Ask answers a free-text question using the current catalog
	Ask(ctx context.Context, sessionID, question string) (string, error)

	// History sessiya savol-javoblari
	History(ctx context.Context, sessionID string) ([]entity.Message, error)

	// ClearHistory sessiya tarixini tozalash
	ClearHistory(ctx context.Context, sessionID string) error

	// Enabled reports whether an AI backend is configured
	Enabled() bool
}

type advisorUseCase struct {
	aiRepo      repository.AIRepository
	chatRepo    repository.ChatRepository
	catalogRepo repository.CatalogRepository
	sessionRepo repository.SessionRepository
	prices      PriceFormatter
	log         *zap.Logger
}

// NewAdvisorUseCase yangi AdvisorUseCase yaratish. aiRepo may be nil, in
// which case Ask fails with entity.ErrAdvisorDisabled.
func NewAdvisorUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	catalogRepo repository.CatalogRepository,
	sessionRepo repository.SessionRepository,
	prices PriceFormatter,
	log *zap.Logger,
) AdvisorUseCase {
	return &advisorUseCase{
		aiRepo:      aiRepo,
		chatRepo:    chatRepo,
		catalogRepo: catalogRepo,
		sessionRepo: sessionRepo,
		prices:      prices,
		log:         logger.OrNop(log),
	}
}

func (u *advisorUseCase) Enabled() bool {
	return u.aiRepo != nil
}

// Ask savolga javob berish
func (u *advisorUseCase) Ask(ctx context.Context, sessionID, question string) (string, error) {
	if !u.Enabled() {
		return "", entity.ErrAdvisorDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", entity.ErrEmptyQuestion
	}

	// AI so'rovlarini osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, advisorTimeout)
	defer cancel()

	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	history, err := u.chatRepo.GetHistory(ctx, sessionID, historyLimit)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog: %w", err)
	}

	prompt := u.buildPrompt(question, catalog, session.Currency)
	u.log.Debug("advisor prompt", zap.String("session_id", sessionID), zap.Int("prompt_len", len(prompt)))

	response, err := u.aiRepo.GenerateResponse(ctx, prompt, history)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	// tarixga asl savol yoziladi, prompt emas
	message := entity.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Text:      question,
		Response:  response,
		Timestamp: time.Now(),
	}
	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	return response, nil
}

func (u *advisorUseCase) buildPrompt(question string, catalog entity.Catalog, currency entity.CurrencyCode) string {
	return fmt.Sprintf(`Customer question: %s

AVAILABLE PARTS:
%s
RULES:
1. Only recommend parts from the list above, by their full name and SKU.
2. Quote the listed price exactly.
3. Check the compatible models against the customer's vehicle; "Universal" fits any vehicle.
4. Never recommend a part that is out of stock without saying so.

Answer the customer:`, question, u.buildCatalogContext(catalog, currency))
}

// buildCatalogContext mahsulotlarni kategoriyalar bo'yicha guruhlab matnga aylantirish
func (u *advisorUseCase) buildCatalogContext(catalog entity.Catalog, currency entity.CurrencyCode) string {
	var sb strings.Builder

	brands := make(map[int]string, len(catalog.Brands))
	for _, b := range catalog.Brands {
		brands[b.ID] = b.Name
	}

	byCategory := make(map[int][]entity.Product)
	for _, p := range catalog.Products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	write := func(title string, products []entity.Product) {
		if len(products) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n[%s]\n", title)
		for i, p := range products {
			fmt.Fprintf(&sb, "  %d. %s (SKU %s) - %s", i+1, p.Name, p.SKU, u.prices.MustFormat(p.Price, currency))
			if brand := brands[p.BrandID]; brand != "" {
				fmt.Fprintf(&sb, ", brand %s", brand)
			}
			if p.InStock() {
				fmt.Fprintf(&sb, ", %d in stock", p.Stock)
			} else {
				sb.WriteString(", OUT OF STOCK")
			}
			if len(p.CompatibleModels) > 0 {
				fmt.Fprintf(&sb, "\n     fits: %s", strings.Join(p.CompatibleModels, ", "))
			}
			if p.Description != "" {
				fmt.Fprintf(&sb, "\n     %s", p.Description)
			}
			sb.WriteString("\n")
		}
	}

	known := make(map[int]bool, len(catalog.Categories))
	for _, c := range catalog.Categories {
		known[c.ID] = true
		write(c.Name, byCategory[c.ID])
	}

	var other []entity.Product
	for _, p := range catalog.Products {
		if !known[p.CategoryID] {
			other = append(other, p)
		}
	}
	write(uncategorized, other)

	return sb.String()
}

// History sessiya tarixini olish
func (u *advisorUseCase) History(ctx context.Context, sessionID string) ([]entity.Message, error) {
	return u.chatRepo.GetHistory(ctx, sessionID, 0)
}

// ClearHistory sessiya tarixini tozalash
func (u *advisorUseCase) ClearHistory(ctx context.Context, sessionID string) error {
	return u.chatRepo.ClearHistory(ctx, sessionID)
}
