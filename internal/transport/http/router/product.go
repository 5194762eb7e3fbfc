package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-marketplace-api/internal/core/auth"
	"go-marketplace-api/internal/domain"
	"go-marketplace-api/internal/transport/http/handler"
	mdw "go-marketplace-api/internal/transport/http/middleware"
)

// NewProductEngine wires the catalog service. Reads are public; mutations
// need a bearer token; the bulk owner operations need the Admin role.
func NewProductEngine(l *zap.Logger, jwter *auth.JWTer, productH *handler.ProductHandler) *gin.Engine {
	r := gin.New()
	r.Use(baseMiddleware(l, "productapi")...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/products", productH.Search)
	api.GET("/products/:id", productH.Get)

	authed := api.Group("", mdw.AuthJWT(jwter, l))
	authed.POST("/products", productH.Create)
	authed.PUT("/products/:id", productH.Update)
	authed.DELETE("/products/:id", productH.Delete)

	admin := r.Group("/admin/v1", mdw.AuthJWT(jwter, l), mdw.RequireRole(domain.RoleAdmin))
	admin.POST("/products/users/:userId/soft-delete", productH.SoftDeleteByOwner)
	admin.POST("/products/users/:userId/restore", productH.RestoreByOwner)

	return r
}
