package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"github.com/yourusername/autoparts-storefront/internal/metrics"
	"github.com/yourusername/autoparts-storefront/internal/usecase"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	SessionHeader   = "X-Session-ID"
	RequestIDHeader = "X-Request-ID"

	ctxRequestID = "request_id"
	ctxSession   = "session"
)

// RequestID reuses the caller's request id or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// RequestLogger har bir so'rov uchun bitta strukturali log yozadi
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if rid := c.GetString(ctxRequestID); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Error(c.Errors.Last().Err))
		}

		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

// Metrics records request count and latency by route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns panics into a 500 AppError
func Recovery(log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(ctxRequestID)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			NewAppError(http.StatusInternalServerError, "internal", "internal server error", nil))
	})
}

const defaultMaxTrackedIPs = 10000

// RateLimiter per-IP token bucket
type RateLimiter struct {
	mu     sync.Mutex
	ips    map[string]*rate.Limiter
	rate   rate.Limit
	burst  int
	maxIPs int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		ips:    make(map[string]*rate.Limiter),
		rate:   rate.Limit(rps),
		burst:  burst,
		maxIPs: defaultMaxTrackedIPs,
	}
}

// Limiter IP uchun limiter (kerak bo'lsa yaratadi)
func (rl *RateLimiter) Limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.ips[ip]; ok {
		return limiter
	}
	if len(rl.ips) >= rl.maxIPs {
		rl.pruneLocked()
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.ips[ip] = limiter
	return limiter
}

// pruneLocked drops limiters with a full bucket; if none are idle the map is reset
func (rl *RateLimiter) pruneLocked() {
	for ip, limiter := range rl.ips {
		if limiter.Tokens() >= float64(rl.burst) {
			delete(rl.ips, ip)
		}
	}
	if len(rl.ips) >= rl.maxIPs {
		rl.ips = make(map[string]*rate.Limiter)
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				NewAppError(http.StatusTooManyRequests, "rate_limited", "too many requests", nil))
			return
		}
		c.Next()
	}
}

// Session loads or creates the shopper session named by the X-Session-ID
// header and echoes the id back.
func Session(nav usecase.NavigationUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := nav.Start(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(ctxSession, s)
		c.Header(SessionHeader, s.ID)
		c.Next()
	}
}

// RequireAdmin faqat admin foydalanuvchilar uchun
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentSession(c).User
		switch {
		case user == nil:
			fail(c, entity.ErrLoginRequired)
		case !user.IsAdmin():
			fail(c, entity.ErrForbidden)
		default:
			c.Next()
		}
	}
}

func currentSession(c *gin.Context) entity.Session {
	s, _ := c.Get(ctxSession)
	session, _ := s.(entity.Session)
	return session
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
