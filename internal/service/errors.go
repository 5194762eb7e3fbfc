package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("forbidden")
	ErrNotImplemented     = errors.New("not implemented")
)

// isDupKey matches unique-constraint violations across drivers without
// depending on gorm.ErrDuplicatedKey being wired for every dialect.
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
