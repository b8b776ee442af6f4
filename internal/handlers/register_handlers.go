package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/product_catalog_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes. apiMiddleware is applied to
// the /api/v1 group only, leaving /health reachable for probes.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	registerValidatorTagNames()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services, apiMiddleware...)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", apiMiddleware...)

	registerCategoryRoutes(v1, services.Category)
	registerProductRoutes(v1, services.Product)
}
