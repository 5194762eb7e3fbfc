package handler_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-marketplace-api/internal/domain"
)

// In-memory repositories for end-to-end handler tests.

type memUserRepo struct {
	byID map[string]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: map[string]*domain.User{}} }

// Create mirrors the partial unique index: live emails are unique, emails
// on soft-deleted rows are free again.
func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, ex := range m.byID {
		if ex.Email == u.Email && !ex.DeletedAt.Valid {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok || u.DeletedAt.Valid {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range m.byID {
		if !u.DeletedAt.Valid {
			out = append(out, *u)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserRepo) SoftDelete(_ context.Context, id string) error {
	if u, ok := m.byID[id]; ok {
		u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

type memProductRepo struct {
	items map[string]*domain.Product
	seq   int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*domain.Product{}}
}

func (m *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.seq++
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok || p.DeletedAt.Valid {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) Search(_ context.Context, flt domain.ProductFilter) ([]domain.Product, error) {
	var all []domain.Product
	for _, p := range m.items {
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

func (m *memProductRepo) Update(_ context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProductRepo) SoftDelete(_ context.Context, id string) error {
	if p, ok := m.items[id]; ok && !p.DeletedAt.Valid {
		p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (m *memProductRepo) SoftDeleteByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, p := range m.items {
		if p.UserID == ownerID && !p.DeletedAt.Valid {
			p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
			p.UpdatedAt = time.Now()
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (m *memProductRepo) RestoreByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, p := range m.items {
		if p.UserID == ownerID && p.DeletedAt.Valid {
			p.DeletedAt = gorm.DeletedAt{}
			p.UpdatedAt = time.Now()
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}
