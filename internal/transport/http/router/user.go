package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-marketplace-api/internal/core/auth"
	"go-marketplace-api/internal/domain"
	"go-marketplace-api/internal/transport/http/handler"
	mdw "go-marketplace-api/internal/transport/http/middleware"
)

// NewUserEngine wires the identity service: public auth endpoints, the
// authenticated self-read and the admin user management group.
func NewUserEngine(l *zap.Logger, jwter *auth.JWTer, authH *handler.AuthHandler, userH *handler.UserHandler) *gin.Engine {
	r := gin.New()
	r.Use(baseMiddleware(l, "userapi")...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/confirm-email", authH.ConfirmEmail)
	api.POST("/auth/forgot-password", authH.ForgotPassword)
	api.POST("/auth/reset-password", authH.ResetPassword)

	authed := api.Group("", mdw.AuthJWT(jwter, l))
	authed.GET("/users/:id", userH.Get)

	admin := r.Group("/admin/v1", mdw.AuthJWT(jwter, l), mdw.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userH.List)
	admin.PATCH("/users/:id/activate", userH.Activate)
	admin.PATCH("/users/:id/deactivate", userH.Deactivate)
	admin.DELETE("/users/:id", userH.Delete)

	return r
}

func baseMiddleware(l *zap.Logger, service string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1 << 20),
		mdw.Timeout(10 * time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(service),
		mdw.AccessLog(l),
		cors.Default(),
	}
}
