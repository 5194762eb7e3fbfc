package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-marketplace-api/internal/core/cache"
	"go-marketplace-api/internal/domain"
	"go-marketplace-api/internal/service"
	mdw "go-marketplace-api/internal/transport/http/middleware"
	resp "go-marketplace-api/internal/transport/http/response"
)

type ProductHandler struct {
	products *service.ProductService
	cache    *cache.Cache // optional read cache for the public detail route
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewProductHandler(products *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

// WithCache enables the redis read-through cache on Get.
func (h *ProductHandler) WithCache(c *cache.Cache, ttl time.Duration) *ProductHandler {
	h.cache = c
	h.cacheTTL = ttl
	return h
}

type createProductReq struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=1000"`
	Price       float64 `json:"price" binding:"gte=0"`
	IsAvailable *bool   `json:"isAvailable"`
}

type updateProductReq struct {
	Name        string   `json:"name" binding:"omitempty,max=200"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"isAvailable"`
}

type searchProductsQuery struct {
	Name        string   `form:"name"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
	IsAvailable *bool    `form:"is_available"`
	OwnerID     string   `form:"user_id"`
	Page        int      `form:"page,default=1"`
	PageSize    int      `form:"page_size,default=20"`
}

func (h *ProductHandler) Search(c *gin.Context) {
	var q searchProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.products.Search(c.Request.Context(), domain.ProductFilter{
		Name:        q.Name,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		IsAvailable: q.IsAvailable,
		OwnerID:     q.OwnerID,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if items == nil {
		items = []domain.Product{}
	}
	ok(c, gin.H{"items": items, "page": q.Page, "pageSize": q.PageSize})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.cache != nil {
		p, err := cache.GetOrLoadJSON[domain.Product](h.cache, ctx, productKey(id), h.cacheTTL,
			func(ctx context.Context) (*domain.Product, error) {
				return h.products.GetByID(ctx, id)
			})
		if err != nil {
			fail(c, h.log, err)
			return
		}
		ok(c, p)
		return
	}

	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in createProductReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	avail := true
	if in.IsAvailable != nil {
		avail = *in.IsAvailable
	}
	p, err := h.products.Create(c.Request.Context(), service.CreateProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsAvailable: avail,
	}, c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in updateProductReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	p, err := h.products.Update(c.Request.Context(), id, service.UpdateProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsAvailable: in.IsAvailable,
	}, c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.invalidate(c, id)
	ok(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.products.Delete(c.Request.Context(), id, c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(resp.HTTPStatus(resp.CodeNotFound), resp.Error(resp.CodeNotFound, "product not found"))
		return
	}
	h.invalidate(c, id)
	ok(c, gin.H{"id": id, "deleted": true})
}

// SoftDeleteByOwner and RestoreByOwner are the admin bulk operations. Both
// drop the affected cache entries so the public detail route never serves a
// soft-deleted product from redis.
func (h *ProductHandler) SoftDeleteByOwner(c *gin.Context) {
	owner := c.Param("userId")
	ids, err := h.products.SoftDeleteByOwner(c.Request.Context(), owner)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.invalidate(c, ids...)
	ok(c, gin.H{"userId": owner, "affected": len(ids)})
}

func (h *ProductHandler) RestoreByOwner(c *gin.Context) {
	owner := c.Param("userId")
	ids, err := h.products.RestoreByOwner(c.Request.Context(), owner)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.invalidate(c, ids...)
	ok(c, gin.H{"userId": owner, "affected": len(ids)})
}

func (h *ProductHandler) invalidate(c *gin.Context, ids ...string) {
	if h.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	h.cache.Invalidate(c.Request.Context(), keys...)
}

func productKey(id string) string { return "product:" + id }
