package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"github.com/yourusername/autoparts-storefront/internal/metrics"
	"go.uber.org/zap"
)

// RouterConfig middleware sozlamalari
type RouterConfig struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires middleware and routes. A nil m disables the metrics
// middleware and the /metrics endpoint.
func NewRouter(h *Handler, cfg RouterConfig, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)

	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(Recovery(log))
	if m != nil {
		r.Use(Metrics(m))
	}
	r.Use(corsMiddleware(cfg.CORSOrigins))
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		r.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}
	r.Use(ErrorMiddleware())

	r.GET("/healthz", h.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/", Session(h.nav))
	{
		api.GET("/currencies", h.Currencies)
		api.PUT("/session/currency", h.SetCurrency)
		api.GET("/view", h.View)
		api.POST("/navigate", h.Navigate)

		api.GET("/products", h.ListProducts)
		api.GET("/products/featured", h.Featured)
		api.GET("/products/:id", h.GetProduct)
		api.DELETE("/catalog/filters", h.ClearFilters)
		api.GET("/brands", h.Brands)
		api.GET("/categories", h.Categories)

		api.GET("/cart", h.Cart)
		api.POST("/cart/items", h.AddToCart)
		api.PATCH("/cart/lines/:index", h.UpdateCartLine)
		api.DELETE("/cart/lines/:index", h.RemoveCartLine)
		api.POST("/checkout", h.Checkout)

		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)
		api.POST("/auth/logout", h.Logout)

		api.POST("/advisor", h.Ask)
		api.GET("/advisor/history", h.AdvisorHistory)
		api.DELETE("/advisor/history", h.ClearAdvisorHistory)
	}

	admin := api.Group("/admin", RequireAdmin())
	{
		admin.GET("/products", h.AdminSearch)
		admin.POST("/products", h.AdminCreateProduct)
		admin.PATCH("/products/:id/stock", h.AdminUpdateStock)
		admin.DELETE("/products/:id", h.AdminDeleteProduct)
		admin.POST("/brands", h.AdminCreateBrand)
		admin.POST("/categories", h.AdminCreateCategory)
		admin.POST("/import", h.AdminImport)
		admin.GET("/export", h.AdminExport)
		admin.GET("/info", h.AdminInfo)
		admin.GET("/actions", h.AdminActions)
		admin.POST("/reset", h.AdminReset)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", SessionHeader, RequestIDHeader},
		ExposeHeaders:    []string{SessionHeader, RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
