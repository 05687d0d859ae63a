package repository

import (
	"context"
	"errors"
	"time"

	"haircolor-mixer/models"
)

// ErrNotFound is returned when a catalog document or formula session does not exist
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the contract for catalog document storage
type CatalogRepositoryInterface interface {
	GetDocument(ctx context.Context, name string) ([]byte, error)
	SaveDocument(ctx context.Context, name string, document []byte) error
	ListDocuments(ctx context.Context) ([]string, error)
}

// FormulaRepositoryInterface defines the contract for formula session storage
type FormulaRepositoryInterface interface {
	Create(ctx context.Context, formula *models.Formula) error
	Get(ctx context.Context, id string) (*models.Formula, error)
	Update(ctx context.Context, id string, fn func(f *models.Formula) error) (*models.Formula, error)
	Delete(ctx context.Context, id string) error
	DeleteIdle(ctx context.Context, olderThan time.Time) []string
}
