package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"github.com/yourusername/autoparts-storefront/internal/usecase"
	"go.uber.org/zap"
)

// PriceFormatter narxlarni formatlash va valyuta jadvali
type PriceFormatter interface {
	MustFormat(amount float64, code entity.CurrencyCode) string
	Currencies() []entity.Currency
}

// Handler storefront HTTP handlerlari
type Handler struct {
	catalog usecase.CatalogUseCase
	cart    usecase.CartUseCase
	auth    usecase.AuthUseCase
	nav     usecase.NavigationUseCase
	admin   usecase.AdminUseCase
	advisor usecase.AdvisorUseCase
	prices  PriceFormatter

	maxUploadBytes int64
	log            *zap.Logger
}

// Deps handler dependencies
type Deps struct {
	Catalog    usecase.CatalogUseCase
	Cart       usecase.CartUseCase
	Auth       usecase.AuthUseCase
	Navigation usecase.NavigationUseCase
	Admin      usecase.AdminUseCase
	Advisor    usecase.AdvisorUseCase
	Prices     PriceFormatter

	MaxUploadBytes int64
	Logger         *zap.Logger
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		catalog:        deps.Catalog,
		cart:           deps.Cart,
		auth:           deps.Auth,
		nav:            deps.Navigation,
		admin:          deps.Admin,
		advisor:        deps.Advisor,
		prices:         deps.Prices,
		maxUploadBytes: deps.MaxUploadBytes,
		log:            logger.OrNop(deps.Logger),
	}
}

func (h *Handler) presenter(c *gin.Context) presenter {
	return presenter{prices: h.prices, currency: currentSession(c).Currency}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Currencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"currencies": h.prices.Currencies(),
		"selected":   currentSession(c).Currency,
	})
}

type currencyRequest struct {
	Code string `json:"code" binding:"required"`
}

// SetCurrency display valyutasini o'zgartirish
func (h *Handler) SetCurrency(c *gin.Context) {
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("currency code is required", err))
		return
	}
	s, err := h.nav.SetCurrency(c.Request.Context(), currentSession(c).ID, entity.CurrencyCode(req.Code))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// View renders the session's current page
func (h *Handler) View(c *gin.Context) {
	view, err := h.nav.Render(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).view(view))
}

type navigateRequest struct {
	Page   entity.Page      `json:"page" binding:"required"`
	Params entity.NavParams `json:"params"`
}

func (h *Handler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("page is required", err))
		return
	}
	ctx := c.Request.Context()
	id := currentSession(c).ID
	if _, err := h.nav.Navigate(ctx, id, req.Page, req.Params); err != nil {
		fail(c, err)
		return
	}
	view, err := h.nav.Render(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).view(view))
}

// ListProducts katalogni filtrlash
func (h *Handler) ListProducts(c *gin.Context) {
	var filter entity.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, badRequest("invalid filter", err))
		return
	}
	products, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": h.presenter(c).products(products),
		"count":    len(products),
		"empty":    len(products) == 0,
	})
}

func (h *Handler) ClearFilters(c *gin.Context) {
	s, err := h.nav.ClearFilters(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Featured(c *gin.Context) {
	products, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": h.presenter(c).products(products)})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).detail(detail))
}

func (h *Handler) Brands(c *gin.Context) {
	brands, err := h.catalog.Brands(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) Cart(c *gin.Context) {
	view, err := h.cart.View(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).cart(view))
}

type addToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// AddToCart savatga bitta dona qo'shish
func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("product_id is required", err))
		return
	}
	ctx := c.Request.Context()
	id := currentSession(c).ID

	result, err := h.cart.Add(ctx, id, req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	view, err := h.cart.View(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	message := result.Line.Product.Name + " added to cart!"
	if result.Updated {
		message = "Updated " + result.Line.Product.Name + " quantity in cart!"
	}

	p := h.presenter(c)
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"updated":  result.Updated,
		"quantity": result.Line.Quantity,
		"cart":     p.cart(view),
	})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCartLine(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("quantity is required", err))
		return
	}
	view, err := h.cart.UpdateQuantity(c.Request.Context(), currentSession(c).ID, index, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).cart(view))
}

func (h *Handler) RemoveCartLine(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	view, err := h.cart.Remove(c.Request.Context(), currentSession(c).ID, index)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).cart(view))
}

// Checkout buyurtma berish
func (h *Handler) Checkout(c *gin.Context) {
	var addr entity.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		fail(c, badRequest("invalid shipping address", err))
		return
	}
	order, err := h.cart.PlaceOrder(c.Request.Context(), currentSession(c).ID, addr)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.presenter(c).order(order))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("invalid login form", err))
		return
	}
	s, err := h.auth.Login(c.Request.Context(), currentSession(c).ID, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Register(c *gin.Context) {
	var form entity.Registration
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, badRequest("invalid registration form", err))
		return
	}
	s, err := h.auth.Register(c.Request.Context(), currentSession(c).ID, form)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) Logout(c *gin.Context) {
	s, err := h.auth.Logout(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask parts advisor
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("question is required", err))
		return
	}
	answer, err := h.advisor.Ask(c.Request.Context(), currentSession(c).ID, req.Question)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, badRequest("invalid "+name, err))
		return 0, false
	}
	return v, true
}

func (h *Handler) AdvisorHistory(c *gin.Context) {
	history, err := h.advisor.History(c.Request.Context(), currentSession(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history, "enabled": h.advisor.Enabled()})
}

func (h *Handler) ClearAdvisorHistory(c *gin.Context) {
	if err := h.advisor.ClearHistory(c.Request.Context(), currentSession(c).ID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
