// Package accommodations persists accommodation listings.
package accommodations

import (
	"context"

	"github.com/rentlyapp/rently/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error)
	GetByID(ctx context.Context, id string) (*models.Accommodation, error)
	ListAll(ctx context.Context) ([]*models.Accommodation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Accommodation, error)
	Update(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error)
}
