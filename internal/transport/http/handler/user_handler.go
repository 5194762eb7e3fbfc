package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-marketplace-api/internal/domain"
	"go-marketplace-api/internal/service"
	mdw "go-marketplace-api/internal/transport/http/middleware"
	resp "go-marketplace-api/internal/transport/http/response"
)

// UserHandler serves admin user management plus the authenticated self-read.
type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

type userRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func toUserRow(u *domain.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type listUsersQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	users, total, err := h.users.List(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	rows := make([]userRow, 0, len(users))
	for i := range users {
		rows = append(rows, toUserRow(&users[i]))
	}
	ok(c, gin.H{"total": total, "items": rows})
}

// Get lets users read themselves; everything else needs the Admin role.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if c.GetString(mdw.KeyRole) != domain.RoleAdmin && c.GetString(mdw.KeyUserID) != id {
		c.JSON(resp.HTTPStatus(resp.CodeForbidden), resp.Error(resp.CodeForbidden, "forbidden"))
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, toUserRow(u))
}

func (h *UserHandler) Activate(c *gin.Context) {
	if err := h.users.Activate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id")})
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.users.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id")})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id")})
}
