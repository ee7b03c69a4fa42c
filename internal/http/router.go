// Package httpapi wires the HTTP transport (Gin) to the study session and the
// identity adapter. It centralizes cross-cutting concerns such as tracing,
// correlation IDs, logging/redaction, panic recovery, compression, metrics,
// idempotency, rate limiting, CORS and security headers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-study-session/docs"
	"github.com/tbourn/go-study-session/internal/config"
	"github.com/tbourn/go-study-session/internal/domain"
	"github.com/tbourn/go-study-session/internal/http/handlers"
	"github.com/tbourn/go-study-session/internal/http/middleware"
	"github.com/tbourn/go-study-session/internal/repo"
)

// idempotencyShim adapts the repository free functions to
// middleware.IdempotencyStore.
type idempotencyShim struct {
	db  *gorm.DB
	ttl time.Duration
}

// Load proxies repo.GetIdempotency; a missing or expired record is not an error.
func (s idempotencyShim) Load(ctx context.Context, userID, target, key string, now time.Time) (middleware.StoredResponse, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, userID, target, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return middleware.StoredResponse{}, false, nil
	}
	if err != nil {
		return middleware.StoredResponse{}, false, err
	}
	return middleware.StoredResponse{Status: rec.Status, Body: rec.Body}, true, nil
}

// Save proxies repo.CreateIdempotency.
func (s idempotencyShim) Save(ctx context.Context, userID, target, key string, resp middleware.StoredResponse) error {
	_, err := repo.CreateIdempotency(ctx, s.db, userID, target, key, resp.Status, resp.Body, s.ttl)
	return err
}

// RegisterRoutes attaches all middleware and endpoints to r and mounts the
// API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry
//  2. RequestID
//  3. CurrentUser (feeds logging, idempotency and rate limiting)
//  4. RedactingLogger
//  5. Recovery
//  6. Gzip, outside idempotency so recorded bodies are uncompressed
//  7. Body size limiter
//  8. Metrics
//  9. Idempotency (a replay stops here, before the rate limiter)
//  10. Rate limiter
//  11. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sess handlers.SessionService, ident handlers.IdentityService, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	apiBase := cfg.APIBasePath

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.CurrentUser(func() *domain.User { return ident.Current().User }))
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())

	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var idemStore middleware.IdempotencyStore
	if db != nil {
		idemStore = idempotencyShim{db: db, ttl: cfg.IdempotencyTTL}
	}
	r.Use(middleware.Idempotency(middleware.IdempotencyOptions{MaxLen: 200}, idemStore))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP(), "/health", "/metrics", "/swagger")
	r.Use(rl.Handler())

	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey, middleware.HeaderRequestID}
	exposeHeaders := []string{middleware.HeaderRequestID, "ETag", middleware.HeaderIdempotencyReplayed, "Retry-After", "Content-Length"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Without an allowlist, answer ACAO: * even when no Origin was sent.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{joinPath(apiBase, "/auth")},
		EnablePolicy:    true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = apiBase
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(sess, ident)

	api := groupWithPrefix(r, apiBase)
	{
		api.GET("/session", h.GetSession)
		api.GET("/session/summary", h.GetSummary)

		api.POST("/conversation/reset", h.ResetConversation)
		api.GET("/conversation/messages", h.ListMessages)
		api.POST("/conversation/messages", h.SendMessage)

		api.GET("/plan/tasks", h.ListTasks)
		api.POST("/plan/generate", h.GeneratePlan)
		api.POST("/plan/tasks/:id/advance", h.AdvanceTask)

		api.GET("/decks", h.ListDecks)
		api.POST("/decks", h.CreateDeck)
		api.GET("/decks/search", h.SearchCards)
		api.GET("/decks/:id", h.GetDeck)
		api.POST("/decks/:id/cards", h.AddCard)
		api.POST("/decks/:id/notes", h.ImportNotes)

		api.GET("/auth/me", h.Me)
		api.POST("/auth/sign-in", h.SignIn)
		api.POST("/auth/sign-up", h.SignUp)
		api.POST("/auth/sign-out", h.SignOut)
	}
}

// limitBody caps request bodies at maxBytes; oversized reads fail downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return base + p
}
