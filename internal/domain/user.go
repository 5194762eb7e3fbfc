package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	// Uniqueness holds among live rows only; soft-deleting a user frees the
	// email for re-registration. The partial index lives in database.EnsureIndexes.
	Email          string         `gorm:"index;size:255;not null" json:"email"`
	PasswordHash   string         `gorm:"size:100;not null" json:"-"`
	Role           string         `gorm:"size:16;not null;default:User" json:"role"`
	IsActive       bool           `gorm:"not null;default:true" json:"isActive"`
	EmailConfirmed bool           `gorm:"not null;default:false" json:"emailConfirmed"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// Lookups exclude soft-deleted rows; absent rows come back as (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
}
