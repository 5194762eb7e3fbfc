package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	Price       float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	IsAvailable bool           `gorm:"not null;default:true" json:"isAvailable"`
	UserID      string         `gorm:"size:36;not null;index" json:"userId"` // owner, immutable after create
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

type ProductFilter struct {
	Name        string // substring match, case-insensitive
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
	OwnerID     string
	Page        int // 1-indexed
	PageSize    int
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, f ProductFilter) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	SoftDelete(ctx context.Context, id string) error
	// The bulk owner operations report the affected product ids so callers
	// can drop stale cache entries.
	SoftDeleteByOwner(ctx context.Context, ownerID string) ([]string, error)
	RestoreByOwner(ctx context.Context, ownerID string) ([]string, error)
}
