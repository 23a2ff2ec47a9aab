// Package bookings persists reservations made against accommodations.
package bookings

import (
	"context"

	"github.com/rentlyapp/rently/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Booking, error)
	Delete(ctx context.Context, id string) error
}
