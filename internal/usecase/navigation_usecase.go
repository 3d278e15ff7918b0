package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

// CanAccess is the only capability check: the dashboard needs an admin,
// every other page is public.
func CanAccess(user *entity.User, page entity.Page) bool {
	if page == entity.PageDashboard {
		return user.IsAdmin()
	}
	return true
}

// CurrencyTable valyutalarni tekshirish uchun
type CurrencyTable interface {
	Lookup(code entity.CurrencyCode) (entity.Currency, error)
}

// NavigationUseCase sessiya sahifalari va ko'rinishlari
type NavigationUseCase interface {
	// Start returns the session with id, creating it when missing or empty
	Start(ctx context.Context, sessionID string) (entity.Session, error)

	// Navigate moves the session to page with params
	Navigate(ctx context.Context, sessionID string, page entity.Page, params entity.NavParams) (entity.Session, error)

	// Search navigates to the catalog filtered by query
	Search(ctx context.Context, sessionID, query string) (entity.Session, error)

	// ClearFilters navigates to the unfiltered catalog
	ClearFilters(ctx context.Context, sessionID string) (entity.Session, error)

	// SetCurrency display valyutasini tanlash
	SetCurrency(ctx context.Context, sessionID string, code entity.CurrencyCode) (entity.Session, error)

	// Render builds the view of the session's current page
	Render(ctx context.Context, sessionID string) (entity.View, error)
}

type navigationUseCase struct {
	sessionRepo repository.SessionRepository
	catalog     CatalogUseCase
	currencies  CurrencyTable
	taxRate     float64
}

// NewNavigationUseCase yangi NavigationUseCase yaratish
func NewNavigationUseCase(
	sessionRepo repository.SessionRepository,
	catalog CatalogUseCase,
	currencies CurrencyTable,
	taxRate float64,
) NavigationUseCase {
	return &navigationUseCase{
		sessionRepo: sessionRepo,
		catalog:     catalog,
		currencies:  currencies,
		taxRate:     taxRate,
	}
}

// Start sessiyani boshlash
func (u *navigationUseCase) Start(ctx context.Context, sessionID string) (entity.Session, error) {
	return u.sessionRepo.GetOrCreate(ctx, sessionID)
}

// Navigate sahifaga o'tish
func (u *navigationUseCase) Navigate(ctx context.Context, sessionID string, page entity.Page, params entity.NavParams) (entity.Session, error) {
	if !page.Valid() {
		return entity.Session{}, fmt.Errorf("%q: %w", page, entity.ErrUnknownPage)
	}
	params.Search = strings.TrimSpace(params.Search)

	return u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		s.Page = page
		s.Params = params
		return nil
	})
}

// Search qidiruv
func (u *navigationUseCase) Search(ctx context.Context, sessionID, query string) (entity.Session, error) {
	return u.Navigate(ctx, sessionID, entity.PageCatalog, entity.NavParams{Search: query})
}

// ClearFilters filtrlarni tozalash
func (u *navigationUseCase) ClearFilters(ctx context.Context, sessionID string) (entity.Session, error) {
	return u.Navigate(ctx, sessionID, entity.PageCatalog, entity.NavParams{})
}

// SetCurrency valyutani o'zgartirish
func (u *navigationUseCase) SetCurrency(ctx context.Context, sessionID string, code entity.CurrencyCode) (entity.Session, error) {
	c, err := u.currencies.Lookup(code)
	if err != nil {
		return entity.Session{}, err
	}
	return u.sessionRepo.Update(ctx, sessionID, func(s *entity.Session) error {
		s.Currency = c.Code
		return nil
	})
}

// Render joriy sahifa ko'rinishi
func (u *navigationUseCase) Render(ctx context.Context, sessionID string) (entity.View, error) {
	s, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return entity.View{}, err
	}

	view := entity.View{
		Page:     s.Page,
		Params:   s.Params,
		Currency: s.Currency,
		User:     s.User,
	}
	for _, l := range s.Cart {
		view.CartCount += l.Quantity
	}

	if !CanAccess(s.User, s.Page) {
		view.Blank = true
		return view, nil
	}

	switch s.Page {
	case entity.PageHome:
		err = u.renderHome(ctx, &view)
	case entity.PageCatalog:
		err = u.renderCatalog(ctx, &view)
	case entity.PageProduct:
		err = u.renderProduct(ctx, &view)
	case entity.PageCart:
		cart := NewCartView(s.Cart, u.taxRate)
		view.Cart = &cart
		view.Empty = cart.Empty
	case entity.PageCheckout:
		if s.User == nil {
			view.LoginRequired = true
			view.Redirect = entity.PageLogin
			break
		}
		cart := NewCartView(s.Cart, u.taxRate)
		view.Cart = &cart
		view.Empty = cart.Empty
	case entity.PageOrderSuccess:
		view.Order = s.LastOrder
	case entity.PageDashboard:
		err = u.renderDashboard(ctx, &view)
	}
	if err != nil {
		return entity.View{}, err
	}
	return view, nil
}

func (u *navigationUseCase) renderHome(ctx context.Context, view *entity.View) error {
	featured, err := u.catalog.Featured(ctx)
	if err != nil {
		return err
	}
	view.Featured = featured
	return u.withTaxonomy(ctx, view)
}

func (u *navigationUseCase) renderCatalog(ctx context.Context, view *entity.View) error {
	filter := view.Params.Filter()
	products, err := u.catalog.List(ctx, filter)
	if err != nil {
		return err
	}
	view.Filter = &filter
	view.Products = products
	view.Empty = len(products) == 0
	return u.withTaxonomy(ctx, view)
}

func (u *navigationUseCase) renderProduct(ctx context.Context, view *entity.View) error {
	if view.Params.ID == 0 {
		view.Blank = true
		return nil
	}

	detail, err := u.catalog.GetProduct(ctx, view.Params.ID)
	if errors.Is(err, entity.ErrProductNotFound) {
		view.NotFound = true
		view.Redirect = entity.PageCatalog
		return nil
	}
	if err != nil {
		return err
	}
	view.Product = detail
	return nil
}

func (u *navigationUseCase) renderDashboard(ctx context.Context, view *entity.View) error {
	products, err := u.catalog.List(ctx, entity.ProductFilter{})
	if err != nil {
		return err
	}
	view.Products = products
	return u.withTaxonomy(ctx, view)
}

func (u *navigationUseCase) withTaxonomy(ctx context.Context, view *entity.View) error {
	brands, err := u.catalog.Brands(ctx)
	if err != nil {
		return err
	}
	categories, err := u.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	view.Brands = brands
	view.Categories = categories
	return nil
}
