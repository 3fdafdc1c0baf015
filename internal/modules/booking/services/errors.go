package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantActive      = errors.New("tenant is still active, deactivate it first")
	ErrKnowledgeNotFound = errors.New("knowledge base not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAmount     = errors.New("total price must equal unit price times party size")
	ErrDuplicateItem     = errors.New("item id already exists")
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// notFound maps gorm's record-not-found onto a domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// validID rejects ids that would make postgres fail with a uuid syntax error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
