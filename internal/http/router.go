// Package httpapi wires the HTTP transport (Gin) to the application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging with redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
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

	_ "github.com/hheidy0463/ReproCare/docs"
	"github.com/hheidy0463/ReproCare/internal/config"
	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/http/handlers"
	"github.com/hheidy0463/ReproCare/internal/http/middleware"
	"github.com/hheidy0463/ReproCare/internal/llm"
	"github.com/hheidy0463/ReproCare/internal/repo"
	"github.com/hheidy0463/ReproCare/internal/services"
	"github.com/hheidy0463/ReproCare/internal/whereby"
)

// visitRepoShim adapts the repository free functions to the services.VisitRepo
// interface. Services stay decoupled from the concrete repo package while the
// existing functions are reused as-is.
type visitRepoShim struct{}

func (visitRepoShim) CreateVisit(ctx context.Context, db *gorm.DB) (*domain.Visit, error) {
	return repo.CreateVisit(ctx, db)
}

func (visitRepoShim) GetVisit(ctx context.Context, db *gorm.DB, id string) (*domain.Visit, error) {
	return repo.GetVisit(ctx, db, id)
}

func (visitRepoShim) SaveVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error {
	return repo.SaveVisit(ctx, db, v)
}

func (visitRepoShim) CountVisits(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountVisits(ctx, db)
}

func (visitRepoShim) ListVisitsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Visit, error) {
	return repo.ListVisitsPage(ctx, db, offset, limit)
}

func (visitRepoShim) VisitsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.VisitsStats(ctx, db)
}

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine and injects the provider clients and services.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. Identity: map X-User-ID into the context
//  3. RequestID: generate/propagate correlation id
//  4. RedactingLogger: structured logs with patient-data scrubbing
//  5. Recovery: capture panics after the logger
//  6. Body size limiter
//  7. Metrics
//  8. Idempotency validator (before the rate limiter so replays can bypass)
//  9. Rate limiter per user/IP
//  10. CORS, security headers, gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Caller identity. There is no authentication layer; the header keys
	// idempotency records and rate-limit buckets.
	r.Use(identity())

	// 3) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-Api-Key"},
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB); intake payloads are small JSON.
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics and the scrape endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (allow all when nothing is configured; the demo web
	// client runs on a separate origin)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and the request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Transcripts and visit listings compress well.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: provider clients ← config, services ← db/repo
	completions := llm.New(cfg.LLM)
	rooms := whereby.New(cfg.Whereby)

	h := handlers.New(
		services.NewVisitService(db, visitRepoShim{}),
		services.NewIntakeService(db, visitRepoShim{}, completions),
		services.NewEncounterService(db, visitRepoShim{}, rooms),
		services.NewSummaryService(db, visitRepoShim{}, completions),
		services.NewPharmacyService(db, visitRepoShim{}),
	)

	// Visit lifecycle
	r.GET("/", h.Root)
	r.POST("/visit", h.CreateVisit)
	r.GET("/visit/:id", h.GetVisit)
	r.GET("/visits", h.ListVisits)

	// Workflow stages
	r.POST("/intake_to_json", h.IntakeToJSON)
	r.POST("/create_room", h.CreateRoom)
	r.POST("/fetch_transcription", h.FetchTranscription)
	r.POST("/post_visit_explain", h.PostVisitExplain)
	r.POST("/pharmacy_order", h.PharmacyOrder)
}

// identity copies the X-User-ID header into the context so idempotency and
// rate limiting key on the caller rather than the IP alone.
func identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader("X-User-ID"); uid != "" {
			c.Set("userID", uid)
		}
		c.Next()
	}
}

// limitBody caps the request body for all endpoints via http.MaxBytesReader.
// Reads past the cap error downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
