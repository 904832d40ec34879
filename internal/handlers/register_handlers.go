package handlers

import (
	"net/http"

	"github.com/SscSPs/money_billing/cmd/docs"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/SscSPs/money_billing/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Reads are public; writes and
// per-user listings go through AuthMiddleware.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ClientCurrency(cfg.CurrencyCookieName))
	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	RegisterCurrencyRoutes(v1, services.Currency, auth)
	RegisterExchangeRateRoutes(v1, services.ExchangeRate, auth)
	RegisterConversionRoutes(v1, services.Converter)
	RegisterTransactionRoutes(v1, services.Transaction, auth)
	RegisterAccountRoutes(v1, services.Account, auth)
	RegisterBillRoutes(v1, services.Account, services.Converter, auth)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
