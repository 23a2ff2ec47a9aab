package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/dbx"
	"github.com/rentlyapp/rently/internal/logging"
	"github.com/rentlyapp/rently/internal/server/auth"
	"github.com/rentlyapp/rently/internal/server/models"
	"github.com/rentlyapp/rently/internal/server/repositories/repomanager"
)

// BookingInput carries the fields a caller submits to book a place.
type BookingInput struct {
	Place          string    `json:"place"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Price          int64     `json:"price"`
}

// BookingService implements reservation creation, listing, and owner-guarded
// cancellation.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *BookingService {
	return &BookingService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "booking_service"),
	}
}

// Book creates a reservation owned by the caller. The check-in date must
// precede the check-out date; no further date-range rules apply.
func (s *BookingService) Book(ctx context.Context, identity *auth.Identity, in BookingInput) (*models.Booking, error) {
	if in.Place == "" || in.Name == "" || in.Email == "" || in.Phone == "" {
		return nil, common.ErrValidation
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return nil, common.ErrValidation
	}

	b := &models.Booking{
		ID:             uuid.New().String(),
		User:           identity.UserID,
		Place:          in.Place,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		NumberOfGuests: in.NumberOfGuests,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Price:          in.Price,
	}

	repo := s.repomanager.Bookings(s.db)
	created, err := repo.Create(ctx, b)
	if err != nil {
		s.logger.Error(ctx, "booking creation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return created, nil
}

// List returns the caller's bookings, newest first.
func (s *BookingService) List(ctx context.Context, identity *auth.Identity) ([]*models.Booking, error) {
	repo := s.repomanager.Bookings(s.db)

	list, err := repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		s.logger.Error(ctx, "booking listing failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// Cancel deletes the booking after verifying the caller owns it. The lookup,
// ownership check, and delete run in one transaction so a concurrent cancel
// cannot slip between the check and the delete.
func (s *BookingService) Cancel(ctx context.Context, identity *auth.Identity, id string) error {
	if id == "" {
		return common.ErrValidation
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookings(tx)

		b, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := auth.AssertOwner(identity, b.User); err != nil {
			return err
		}

		return repo.Delete(ctx, id)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrForbidden):
		return err
	default:
		s.logger.Error(ctx, "booking cancellation failed", "error", err)
		return common.ErrorInternal
	}
}
