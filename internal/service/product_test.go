package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-marketplace-api/internal/domain"
)

// fakeProductRepo mirrors the GORM repo's semantics in memory: soft-deleted
// rows are invisible to reads, search orders by creation time and paginates
// with (page-1)*size offsets.
type fakeProductRepo struct {
	items map[string]*domain.Product
	seq   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.seq++
	p.CreatedAt = time.Unix(int64(f.seq), 0)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.items[id]
	if !ok || p.DeletedAt.Valid {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Search(_ context.Context, flt domain.ProductFilter) ([]domain.Product, error) {
	var all []domain.Product
	for _, p := range f.items {
		if p.DeletedAt.Valid {
			continue
		}
		if flt.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(flt.Name)) {
			continue
		}
		if flt.MinPrice != nil && p.Price < *flt.MinPrice {
			continue
		}
		if flt.MaxPrice != nil && p.Price > *flt.MaxPrice {
			continue
		}
		if flt.IsAvailable != nil && p.IsAvailable != *flt.IsAvailable {
			continue
		}
		if flt.OwnerID != "" && p.UserID != flt.OwnerID {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	offset := (flt.Page - 1) * flt.PageSize
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + flt.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	if p, ok := f.items[id]; ok && !p.DeletedAt.Valid {
		p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeProductRepo) SoftDeleteByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, p := range f.items {
		if p.UserID == ownerID && !p.DeletedAt.Valid {
			p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
			p.UpdatedAt = time.Now()
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakeProductRepo) RestoreByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, p := range f.items {
		if p.UserID == ownerID && p.DeletedAt.Valid {
			p.DeletedAt = gorm.DeletedAt{}
			p.UpdatedAt = time.Now()
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func newProductService(repo domain.ProductRepository) *ProductService {
	return NewProductService(repo, zap.NewNop())
}

func mustCreate(t *testing.T, s *ProductService, name, owner string, price float64) *domain.Product {
	t.Helper()
	p, err := s.Create(context.Background(), CreateProductInput{
		Name:        name,
		Description: "desc of " + name,
		Price:       price,
		IsAvailable: true,
	}, owner)
	require.NoError(t, err)
	return p
}

func TestCreate_SetsOwnerAndID(t *testing.T) {
	s := newProductService(newFakeProductRepo())

	p := mustCreate(t, s, "Widget", "owner-1", 9.99)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner-1", p.UserID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestGetByID_NotFound(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	_, err := s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_ForbiddenForNonOwner(t *testing.T) {
	repo := newFakeProductRepo()
	s := newProductService(repo)
	p := mustCreate(t, s, "Widget", "owner-1", 5)

	price := 9.99
	_, err := s.Update(context.Background(), p.ID, UpdateProductInput{Price: &price}, "intruder")
	assert.ErrorIs(t, err, ErrNotOwner)

	// Product unchanged.
	got, err := s.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Price)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	_, err := s.Update(context.Background(), "missing", UpdateProductInput{}, "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_EmptyStringsSkipped(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	p := mustCreate(t, s, "Widget", "owner-1", 5)

	// Empty name/description are "no change", not "clear".
	got, err := s.Update(context.Background(), p.ID, UpdateProductInput{Name: "", Description: ""}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "desc of Widget", got.Description)
}

func TestUpdate_PartialFields(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	p := mustCreate(t, s, "Widget", "owner-1", 5)

	price := 0.0
	avail := false
	got, err := s.Update(context.Background(), p.ID, UpdateProductInput{
		Name:        "Gadget",
		Price:       &price,
		IsAvailable: &avail,
	}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)
	assert.Equal(t, "desc of Widget", got.Description)
	assert.Equal(t, 0.0, got.Price)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, "owner-1", got.UserID)
}

func TestDelete(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	p := mustCreate(t, s, "Widget", "owner-1", 5)

	ok, err := s.Delete(context.Background(), "missing", "owner-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Delete(context.Background(), p.ID, "intruder")
	assert.ErrorIs(t, err, ErrNotOwner)

	ok, err = s.Delete(context.Background(), p.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDeleteAndRestoreByOwner(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreate(t, s, fmt.Sprintf("Widget %d", i), "owner-1", float64(i))
	}
	other := mustCreate(t, s, "Foreign", "owner-2", 1)

	deleted, err := s.SoftDeleteByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, deleted, 3)

	rows, err := s.Search(ctx, domain.ProductFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The other owner's rows are untouched.
	rows, err = s.Search(ctx, domain.ProductFilter{OwnerID: "owner-2"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].ID)

	restored, err := s.RestoreByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, deleted, restored)

	rows, err = s.Search(ctx, domain.ProductFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, p := range rows {
		assert.Equal(t, fmt.Sprintf("Widget %d", i), p.Name)
		assert.Equal(t, float64(i), p.Price)
	}
}

func TestSearch_Pagination(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		mustCreate(t, s, fmt.Sprintf("Item %02d", i), "owner-1", float64(i))
	}

	rows, err := s.Search(ctx, domain.ProductFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, "Item 11", rows[0].Name)
	assert.Equal(t, "Item 20", rows[9].Name)

	rows, err = s.Search(ctx, domain.ProductFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	// Oversized page sizes clamp to the max of 100, they do not fall back
	// to the default of 20.
	rows, err = s.Search(ctx, domain.ProductFilter{PageSize: 10_000})
	require.NoError(t, err)
	assert.Len(t, rows, 25)
}

func TestSearch_FiltersAndCaps(t *testing.T) {
	s := newProductService(newFakeProductRepo())
	ctx := context.Background()

	mustCreate(t, s, "Cheap Widget", "owner-1", 1)
	mid := mustCreate(t, s, "Mid widget", "owner-2", 50)
	mustCreate(t, s, "Pricey gadget", "owner-2", 500)

	minP, maxP := 10.0, 100.0
	rows, err := s.Search(ctx, domain.ProductFilter{MinPrice: &minP, MaxPrice: &maxP})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mid.ID, rows[0].ID)

	// Name match is case-insensitive.
	rows, err = s.Search(ctx, domain.ProductFilter{Name: "WIDGET"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Zero and negative page sizes fall back to the default.
	rows, err = s.Search(ctx, domain.ProductFilter{PageSize: -1})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
