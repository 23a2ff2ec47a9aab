package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/dbx"
	"github.com/rentlyapp/rently/internal/logging"
	"github.com/rentlyapp/rently/internal/server/auth"
	"github.com/rentlyapp/rently/internal/server/models"
	"github.com/rentlyapp/rently/internal/server/repositories/repomanager"
)

// AccommodationInput carries the caller-editable fields of a listing.
type AccommodationInput struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int64    `json:"price"`
}

// AccommodationService implements listing creation, retrieval, and
// owner-guarded updates.
type AccommodationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAccommodationService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *AccommodationService {
	return &AccommodationService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "accommodation_service"),
	}
}

func (s *AccommodationService) Create(ctx context.Context, identity *auth.Identity, in AccommodationInput) (*models.Accommodation, error) {
	if err := validateAccommodation(in); err != nil {
		return nil, err
	}

	a := &models.Accommodation{
		ID:          uuid.New().String(),
		Owner:       identity.UserID,
		Title:       in.Title,
		Address:     in.Address,
		Photos:      in.Photos,
		Description: in.Description,
		Perks:       in.Perks,
		ExtraInfo:   in.ExtraInfo,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		MaxGuests:   in.MaxGuests,
		Price:       in.Price,
	}

	repo := s.repomanager.Accommodations(s.db)
	created, err := repo.Create(ctx, a)
	if err != nil {
		s.logger.Error(ctx, "accommodation creation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return created, nil
}

func (s *AccommodationService) ListAll(ctx context.Context) ([]*models.Accommodation, error) {
	repo := s.repomanager.Accommodations(s.db)

	list, err := repo.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "accommodation listing failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *AccommodationService) ListOwn(ctx context.Context, identity *auth.Identity) ([]*models.Accommodation, error) {
	repo := s.repomanager.Accommodations(s.db)

	list, err := repo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		s.logger.Error(ctx, "owner accommodation listing failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *AccommodationService) GetByID(ctx context.Context, id string) (*models.Accommodation, error) {
	if id == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Accommodations(s.db)

	a, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "accommodation lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return a, nil
}

// Update loads the listing, enforces ownership, and persists the new field
// values, all in one transaction. Domain errors (not found, forbidden) pass
// through unchanged.
func (s *AccommodationService) Update(ctx context.Context, identity *auth.Identity, id string, in AccommodationInput) (*models.Accommodation, error) {
	if id == "" {
		return nil, common.ErrValidation
	}
	if err := validateAccommodation(in); err != nil {
		return nil, err
	}

	var updated *models.Accommodation

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accommodations(tx)

		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := auth.AssertOwner(identity, a.Owner); err != nil {
			return err
		}

		a.Title = in.Title
		a.Address = in.Address
		a.Photos = in.Photos
		a.Description = in.Description
		a.Perks = in.Perks
		a.ExtraInfo = in.ExtraInfo
		a.CheckIn = in.CheckIn
		a.CheckOut = in.CheckOut
		a.MaxGuests = in.MaxGuests
		a.Price = in.Price

		updated, err = repo.Update(ctx, a)
		return err
	})

	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrForbidden):
		return nil, err
	default:
		s.logger.Error(ctx, "accommodation update failed", "error", err)
		return nil, common.ErrorInternal
	}
}

func validateAccommodation(in AccommodationInput) error {
	if in.Title == "" || in.Address == "" || in.Description == "" {
		return common.ErrValidation
	}
	if in.CheckIn == "" || in.CheckOut == "" {
		return common.ErrValidation
	}
	if in.MaxGuests <= 0 {
		return common.ErrValidation
	}
	return nil
}
