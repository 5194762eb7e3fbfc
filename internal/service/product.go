package service

import (
	"context"

	"go.uber.org/zap"

	"go-marketplace-api/internal/domain"
	"go-marketplace-api/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	IsAvailable bool
}

// UpdateProductInput carries a partial update. Empty Name/Description mean
// "leave unchanged", not "clear"; Price and IsAvailable use pointers so their
// zero values stay updatable.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       *float64
	IsAvailable *bool
}

type ProductService struct {
	products domain.ProductRepository
	log      *zap.Logger
}

func NewProductService(products domain.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *ProductService) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return s.products.Search(ctx, f)
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, ownerID string) (*domain.Product, error) {
	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsAvailable: in.IsAvailable,
		UserID:      ownerID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", p.ID), zap.String("owner_id", ownerID))
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput, actingUserID string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.UserID != actingUserID {
		return nil, ErrNotOwner
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete reports (false, nil) for an unknown id; only the owner may delete.
func (s *ProductService) Delete(ctx context.Context, id, actingUserID string) (bool, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	if p.UserID != actingUserID {
		return false, ErrNotOwner
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return false, err
	}
	s.log.Info("product soft-deleted", zap.String("product_id", id))
	return true, nil
}

func (s *ProductService) SoftDeleteByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ids, err := s.products.SoftDeleteByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("owner products soft-deleted",
		zap.String("owner_id", ownerID), zap.Int("count", len(ids)))
	return ids, nil
}

func (s *ProductService) RestoreByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ids, err := s.products.RestoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("owner products restored",
		zap.String("owner_id", ownerID), zap.Int("count", len(ids)))
	return ids, nil
}
