// Package httpapi wires the HTTP transport (Gin) to application
// services, middleware, and route handlers. It centralizes the
// cross-cutting concerns: tracing, correlation IDs, logging with
// redaction, panic recovery, metrics, rate limiting, CORS, and security
// headers.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dealerhub/dealerhub-backend/internal/config"
	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/http/handlers"
	"github.com/dealerhub/dealerhub-backend/internal/http/middleware"
	"github.com/dealerhub/dealerhub-backend/internal/repo"
	"github.com/dealerhub/dealerhub-backend/internal/services"
	"github.com/dealerhub/dealerhub-backend/internal/store"
	"github.com/dealerhub/dealerhub-backend/internal/uploads"
)

// maxBodyBytes caps request bodies. Attachments arrive inline as base64
// data URIs, so the cap is generous compared to a JSON-only API.
const maxBodyBytes = 10 << 20

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine, building the repository and service graph on top of the
// injected stores.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics and the /metrics endpoint
//  7. Rate limiter (per session identity, falling back to IP)
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, docs store.DocumentStore, blobs store.BlobStore, cfg config.Config, log zerolog.Logger) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: handlers ← services ← repos ← stores.
	up := uploads.New(blobs, log)
	partnerRepo := repo.NewPartnerRepo(docs, up, log)
	orderRepo := repo.NewOrderRepo(docs, log)
	rewardRepo := repo.NewRewardRepo(docs, up, log)
	rateRepo := repo.NewRateRepo(docs, log)
	adminRepo := repo.NewAdminRepo(docs, log)

	authSvc := services.NewAuthService(adminRepo, []byte(cfg.JWTSecret), cfg.SessionTTL)
	partnerSvc := services.NewPartnerService(partnerRepo)
	orderSvc := services.NewOrderService(orderRepo)
	rewardSvc := services.NewRewardService(rewardRepo)
	rateSvc := services.NewRateService(rateRepo)
	summarySvc := &services.SummaryService{
		Partners: partnerSvc,
		Orders:   orderSvc,
		Rewards:  rewardSvc,
		Rates:    rateSvc,
	}

	h := handlers.New(authSvc, partnerSvc, orderSvc, rewardSvc, rateSvc, summarySvc)

	sessionRequired := middleware.RequireSession(func(token string) (string, error) {
		sess, err := authSvc.Verify(token)
		if err != nil {
			return "", err
		}
		return sess.Email, nil
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	// The SSE stream must bypass gzip; compression middleware buffers
	// writes and would defeat incremental delivery.
	api.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/rates/stream"})))

	api.POST("/auth/login", h.Login)

	auth := api.Group("", sessionRequired)
	{
		auth.GET("/auth/session", h.Session)

		auth.GET("/dealers", h.ListPartners(domain.RoleDealer))
		auth.POST("/dealers", h.CreatePartner(domain.RoleDealer))
		auth.GET("/dealers/:id", h.GetPartner)
		auth.PATCH("/dealers/:id", h.UpdatePartner)
		auth.DELETE("/dealers/:id", h.DeletePartner)

		auth.GET("/influencers", h.ListPartners(domain.RoleInfluencer))
		auth.POST("/influencers", h.CreatePartner(domain.RoleInfluencer))
		auth.GET("/influencers/:id", h.GetPartner)
		auth.PATCH("/influencers/:id", h.UpdatePartner)
		auth.DELETE("/influencers/:id", h.DeletePartner)

		auth.GET("/orders/:channel", h.ListOrders)
		auth.POST("/orders/:channel", h.CreateOrder)
		auth.PATCH("/orders/:channel/:id", h.UpdateOrder)
		auth.DELETE("/orders/:channel/:id", h.DeleteOrder)
		auth.GET("/orders/:channel/:id/fulfillments", h.ListFulfillments)
		auth.POST("/orders/:channel/:id/fulfillments", h.CreateFulfillment)

		auth.GET("/rewards", h.ListRewards)
		auth.POST("/rewards", h.CreateReward)
		auth.GET("/rewards/history", h.ListRedemptions)
		auth.POST("/rewards/history", h.Redeem)
		auth.PATCH("/rewards/history/:id", h.SettleRedemption)
		auth.PATCH("/rewards/:id", h.UpdateReward)
		auth.DELETE("/rewards/:id", h.DeleteReward)

		auth.GET("/rates/latest", h.LatestRate)
		auth.GET("/rates/stream", h.StreamRates)
		auth.POST("/rates", h.PostRate)

		auth.GET("/dashboard/summary", h.DashboardSummary)
	}
}

// corsMiddleware builds the CORS layer: allow-all when no origins are
// configured (credentials stay off), an explicit allowlist otherwise.
func corsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}
	return cors.New(conf)
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; oversized bodies error on the first read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as
// root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
