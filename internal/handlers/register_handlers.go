package handlers

import (
	"github.com/SscSPs/multicurrency_ledger/cmd/docs"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the HTTP-only infrastructure the routes need besides services.
// Both fields are optional.
type RouteDeps struct {
	LoginLimiter     *limiter.Limiter
	IdempotencyStore middleware.IdempotencyStore
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	public := r.Group("/api/v1")
	registerAuthRoutes(public, service.Auth, deps.LoginLimiter)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	admin := v1.Group("/admin", middleware.RequireAdmin())
	idempotency := middleware.Idempotency(deps.IdempotencyStore)

	registerAccountRoutes(v1, service.Account)
	registerTransferRoutes(v1, service.Transfer, idempotency)
	registerTopUpRoutes(v1, admin, service.TopUp, idempotency)
	registerScheduledTransferRoutes(v1, admin, service.ScheduledTransfer, service.Scheduler)
	registerExchangeRateRoutes(v1, admin, service.ExchangeRate)
	registerAdminRoutes(admin, service.Account, service.Transfer, idempotency)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
