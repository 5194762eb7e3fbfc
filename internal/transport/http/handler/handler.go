package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-marketplace-api/internal/service"
	resp "go-marketplace-api/internal/transport/http/response"
)

// fail maps service errors to business codes. Anything unexpected becomes a
// generic 500; the detail stays in the log.
func fail(c *gin.Context, l *zap.Logger, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		code = resp.CodeConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		code = resp.CodeUnauthorized
	case errors.Is(err, service.ErrNotFound):
		code = resp.CodeNotFound
	case errors.Is(err, service.ErrNotOwner):
		code = resp.CodeForbidden
	case errors.Is(err, service.ErrNotImplemented):
		code = resp.CodeNotImplemented
	default:
		l.Error("request failed", zap.String("rid", c.GetString("X-Request-ID")), zap.Error(err))
		c.JSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, ""))
		return
	}
	c.JSON(resp.HTTPStatus(code), resp.Error(code, err.Error()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(resp.HTTPStatus(resp.CodeBadRequest), resp.Error(resp.CodeBadRequest, err.Error()))
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(resp.HTTPStatus(resp.CodeOK), resp.OK(data))
}
