package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"go.uber.org/zap"
)

// StoreMetrics counters reported by the storefront use cases
type StoreMetrics interface {
	CartItemAdded()
	OutOfStockRejected()
	OrderPlaced(total float64)
	AdminAction(action string)
}

type nopMetrics struct{}

func (nopMetrics) CartItemAdded()      {}
func (nopMetrics) OutOfStockRejected() {}
func (nopMetrics) OrderPlaced(float64) {}
func (nopMetrics) AdminAction(string)  {}

func metricsOrNop(m StoreMetrics) StoreMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

// ComputeTotals subtotal, tax and total of lines. Amounts are not rounded.
func ComputeTotals(lines []entity.CartLine, taxRate float64) entity.Totals {
	var t entity.Totals
	for _, l := range lines {
		t.Subtotal += l.LineTotal()
		t.ItemCount += l.Quantity
	}
	t.Tax = t.Subtotal * taxRate
	t.Total = t.Subtotal + t.Tax
	return t
}

// NewCartView cart view of lines; Empty when there are none
func NewCartView(lines []entity.CartLine, taxRate float64) entity.CartView {
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return entity.CartView{
		Lines:  lines,
		Totals: ComputeTotals(lines, taxRate),
		Empty:  len(lines) == 0,
	}
}

// CartUseCase savat va checkout bilan bog'liq business logic
type CartUseCase interface {
	// Add adds one unit of the product. Out of stock products are rejected
	// with entity.ErrOutOfStock and the cart is left unchanged.
	Add(ctx context.Context, sessionID string, productID int) (entity.AddResult, error)

	// UpdateQuantity sets the quantity of a line; quantities below 1 are ignored
	UpdateQuantity(ctx context.Context, sessionID string, index, quantity int) (entity.CartView, error)

	// Remove savatdan qatorni o'chirish
	Remove(ctx context.Context, sessionID string, index int) (entity.CartView, error)

	// View savat ko'rinishi
	View(ctx context.Context, sessionID string) (entity.CartView, error)

	// PlaceOrder checks out the cart of a logged in session and empties it
	PlaceOrder(ctx context.Context, sessionID string, address entity.ShippingAddress) (*entity.Order, error)
}

type cartUseCase struct {
	catalogRepo repository.CatalogRepository
	sessionRepo repository.SessionRepository
	taxRate     float64
	metrics     StoreMetrics
	log         *zap.Logger
}

// NewCartUseCase yangi CartUseCase yaratish
func NewCartUseCase(
	catalogRepo repository.CatalogRepository,
	sessionRepo repository.SessionRepository,
	taxRate float64,
	metrics StoreMetrics,
	log *zap.Logger,
) CartUseCase {
	return &cartUseCase{
		catalogRepo: catalogRepo,
		sessionRepo: sessionRepo,
		taxRate:     taxRate,
		metrics:     metricsOrNop(metrics),
		log:         logger.OrNop(log),
	}
}

// Add savatga qo'shish
func (u *cartUseCase) Add(ctx context.Context, sessionID string, productID int) (entity.AddResult, error) {
	product, err := u.catalogRepo.GetProduct(ctx, productID)
	if err != nil {
		return entity.AddResult{}, err
	}
	if product.Stock <= 0 {
		u.metrics.OutOfStockRejected()
		u.log.Warn("add to cart rejected, out of stock",
			zap.String("session_id", sessionID),
			zap.Int("product_id", productID),
		)
		return entity.AddResult{}, fmt.Errorf("%s: %w", product.Name, entity.ErrOutOfStock)
	}

	var result entity.AddResult
	_, err = u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		for i := range s.Cart {
			if s.Cart[i].Product.ID == productID {
				s.Cart[i].Quantity++
				result = entity.AddResult{Line: s.Cart[i], Updated: true}
				return nil
			}
		}
		line := entity.CartLine{Product: product.Clone(), Quantity: 1}
		s.Cart = append(s.Cart, line)
		result = entity.AddResult{Line: line}
		return nil
	})
	if err != nil {
		return entity.AddResult{}, err
	}

	u.metrics.CartItemAdded()
	return result, nil
}

// UpdateQuantity miqdorni o'zgartirish
func (u *cartUseCase) UpdateQuantity(ctx context.Context, sessionID string, index, quantity int) (entity.CartView, error) {
	s, err := u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		if index < 0 || index >= len(s.Cart) {
			return fmt.Errorf("line %d: %w", index, entity.ErrCartLineNotFound)
		}
		if quantity < 1 {
			return nil
		}
		s.Cart[index].Quantity = quantity
		return nil
	})
	if err != nil {
		return entity.CartView{}, err
	}
	return NewCartView(s.Cart, u.taxRate), nil
}

// Remove qatorni o'chirish
func (u *cartUseCase) Remove(ctx context.Context, sessionID string, index int) (entity.CartView, error) {
	s, err := u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		if index < 0 || index >= len(s.Cart) {
			return fmt.Errorf("line %d: %w", index, entity.ErrCartLineNotFound)
		}
		s.Cart = append(s.Cart[:index], s.Cart[index+1:]...)
		return nil
	})
	if err != nil {
		return entity.CartView{}, err
	}
	return NewCartView(s.Cart, u.taxRate), nil
}

// View savatni ko'rish
func (u *cartUseCase) View(ctx context.Context, sessionID string) (entity.CartView, error) {
	s, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return entity.CartView{}, err
	}
	return NewCartView(s.Cart, u.taxRate), nil
}

// PlaceOrder buyurtma berish
func (u *cartUseCase) PlaceOrder(ctx context.Context, sessionID string, address entity.ShippingAddress) (*entity.Order, error) {
	var order *entity.Order

	_, err := u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		if s.User == nil {
			return entity.ErrLoginRequired
		}
		if len(s.Cart) == 0 {
			return entity.ErrEmptyCart
		}
		line := address.String()
		if line == "" {
			return entity.ErrInvalidAddress
		}

		totals := ComputeTotals(s.Cart, u.taxRate)
		items := make([]entity.OrderItem, 0, len(s.Cart))
		for _, l := range s.Cart {
			items = append(items, entity.OrderItem{
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
				Quantity:    l.Quantity,
				Price:       l.Product.Price,
			})
		}

		order = &entity.Order{
			ID:              uuid.New().String(),
			UserID:          s.User.ID,
			Items:           items,
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Total:           totals.Total,
			Status:          entity.OrderPending,
			ShippingAddress: line,
			CreatedAt:       time.Now(),
		}

		s.Cart = []entity.CartLine{}
		s.LastOrder = order
		s.Page = entity.PageOrderSuccess
		s.Params = entity.NavParams{}
		return nil
	})
	if err != nil {
		u.log.Warn("checkout rejected", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	u.metrics.OrderPlaced(order.Total)
	u.log.Info("order placed",
		zap.String("session_id", sessionID),
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	return order, nil
}
