package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/currency"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/storage"
)

const testPlaceholder = "https://example.com/placeholder.jpg"

var (
	testAdmin    = &entity.User{ID: 1, Name: "Vandrid Admin", Email: "admin@vandrid.com", Role: entity.RoleAdmin}
	testCustomer = &entity.User{ID: 1, Name: "Customer User", Email: "jane@example.com", Role: entity.RoleCustomer}
)

// --- Mock AI repository ---
type MockAIRepository struct {
	mock.Mock
}

func (m *MockAIRepository) GenerateResponse(ctx context.Context, prompt string, history []entity.Message) (string, error) {
	args := m.Called(ctx, prompt, history)
	return args.String(0), args.Error(1)
}

// --- Mock spreadsheet ---
type MockSpreadsheet struct {
	mock.Mock
}

func (m *MockSpreadsheet) ParseProductsFromBytes(ctx context.Context, data []byte) ([]entity.ProductDraft, error) {
	args := m.Called(ctx, data)
	drafts, _ := args.Get(0).([]entity.ProductDraft)
	return drafts, args.Error(1)
}

func (m *MockSpreadsheet) ExportProducts(ctx context.Context, catalog entity.Catalog) ([]byte, error) {
	args := m.Called(ctx, catalog)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// --- Counting metrics ---
type countingMetrics struct {
	added, outOfStock, orders int
	actions                   []string
}

func (c *countingMetrics) CartItemAdded()      { c.added++ }
func (c *countingMetrics) OutOfStockRejected() { c.outOfStock++ }
func (c *countingMetrics) OrderPlaced(float64) { c.orders++ }
func (c *countingMetrics) AdminAction(a string) {
	c.actions = append(c.actions, a)
}

type testEnv struct {
	catalogRepo repository.CatalogRepository
	sessionRepo repository.SessionRepository
	chatRepo    repository.ChatRepository
	auditRepo   repository.AuditRepository
	sheet       *MockSpreadsheet
	metrics     *countingMetrics
	formatter   *currency.Formatter

	catalog   CatalogUseCase
	cart      CartUseCase
	auth      AuthUseCase
	nav       NavigationUseCase
	admin     AdminUseCase
	sessionID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		catalogRepo: storage.NewMemoryCatalogRepository(storage.DefaultCatalog()),
		sessionRepo: storage.NewMemorySessionRepository(entity.GHS),
		chatRepo:    storage.NewMemoryChatRepository(10),
		auditRepo:   storage.NewMemoryAuditRepository(),
		sheet:       new(MockSpreadsheet),
		metrics:     &countingMetrics{},
		formatter:   currency.MustDefault(),
	}

	env.catalog = NewCatalogUseCase(env.catalogRepo)
	env.cart = NewCartUseCase(env.catalogRepo, env.sessionRepo, entity.DefaultTaxRate, env.metrics, nil)
	env.auth = NewAuthUseCase(env.sessionRepo, "admin@vandrid.com", nil)
	env.nav = NewNavigationUseCase(env.sessionRepo, env.catalog, env.formatter, entity.DefaultTaxRate)
	env.admin = NewAdminUseCase(AdminDeps{
		Catalog:          env.catalogRepo,
		Audit:            env.auditRepo,
		Chat:             env.chatRepo,
		Spreadsheet:      env.sheet,
		Prices:           env.formatter,
		Seed:             storage.DefaultCatalog(),
		PlaceholderImage: testPlaceholder,
		Metrics:          env.metrics,
	})

	s, err := env.sessionRepo.GetOrCreate(context.Background(), "")
	require.NoError(t, err)
	env.sessionID = s.ID
	return env
}

func (e *testEnv) login(t *testing.T, email string) {
	t.Helper()
	_, err := e.auth.Login(context.Background(), e.sessionID, email, "secret")
	require.NoError(t, err)
}
