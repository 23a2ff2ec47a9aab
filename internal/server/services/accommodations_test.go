package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/server/auth"
	"github.com/rentlyapp/rently/internal/server/models"
)

func newAccommodationService(t *testing.T, rm *fakeRepoManager) (*AccommodationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTxDB(t)
	return NewAccommodationService(db, rm, newTestLogger(t)), mock
}

func validAccommodationInput() AccommodationInput {
	return AccommodationInput{
		Title:       "Sea view flat",
		Address:     "1 Shore Rd",
		Description: "Nice place",
		CheckIn:     "14:00",
		CheckOut:    "11:00",
		MaxGuests:   4,
		Price:       150,
	}
}

func TestAccommodationCreate_OwnerIsCaller(t *testing.T) {
	repo := &fakeAccommodationsRepo{}
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: repo})
	identity := &auth.Identity{UserID: "u-1"}

	got, err := s.Create(context.Background(), identity, validAccommodationInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Owner != "u-1" {
		t.Fatalf("owner must be the caller, got %q", got.Owner)
	}
	if got.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestAccommodationCreate_Validation(t *testing.T) {
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: &fakeAccommodationsRepo{}})
	identity := &auth.Identity{UserID: "u-1"}

	tests := []struct {
		name   string
		mutate func(*AccommodationInput)
	}{
		{"missing title", func(in *AccommodationInput) { in.Title = "" }},
		{"missing address", func(in *AccommodationInput) { in.Address = "" }},
		{"missing description", func(in *AccommodationInput) { in.Description = "" }},
		{"missing check-in", func(in *AccommodationInput) { in.CheckIn = "" }},
		{"zero guests", func(in *AccommodationInput) { in.MaxGuests = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validAccommodationInput()
			tc.mutate(&in)
			_, err := s.Create(context.Background(), identity, in)
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("want common.ErrValidation, got %v", err)
			}
		})
	}
}

func TestAccommodationCreate_StorageFailureIsOpaque(t *testing.T) {
	repo := &fakeAccommodationsRepo{createErr: errors.New("db down")}
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	_, err := s.Create(context.Background(), &auth.Identity{UserID: "u-1"}, validAccommodationInput())
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestAccommodationGetByID(t *testing.T) {
	repo := &fakeAccommodationsRepo{byIDOut: &models.Accommodation{ID: "a-1", Owner: "u-1"}}
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	got, err := s.GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "a-1" {
		t.Fatalf("unexpected accommodation: %+v", got)
	}

	if _, err := s.GetByID(context.Background(), ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("empty id: want common.ErrValidation, got %v", err)
	}
}

func TestAccommodationGetByID_NotFound(t *testing.T) {
	repo := &fakeAccommodationsRepo{byIDErr: common.ErrorNotFound}
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestAccommodationListOwn_FiltersByCaller(t *testing.T) {
	repo := &fakeAccommodationsRepo{byOwnerOut: []*models.Accommodation{{ID: "a-1", Owner: "u-1"}}}
	s, _ := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	got, err := s.ListOwn(context.Background(), &auth.Identity{UserID: "u-1"})
	if err != nil {
		t.Fatalf("ListOwn error: %v", err)
	}
	if len(got) != 1 || got[0].Owner != "u-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestAccommodationUpdate_OwnerCanSave(t *testing.T) {
	repo := &fakeAccommodationsRepo{byIDOut: &models.Accommodation{ID: "a-1", Owner: "u-1", Title: "Old"}}
	s, mock := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	mock.ExpectBegin()
	mock.ExpectCommit()

	in := validAccommodationInput()
	got, err := s.Update(context.Background(), &auth.Identity{UserID: "u-1"}, "a-1", in)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "Sea view flat" {
		t.Fatalf("title not updated: %+v", got)
	}
	if repo.updated == nil || repo.updated.Owner != "u-1" {
		t.Fatalf("owner must be preserved: %+v", repo.updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestAccommodationUpdate_NonOwnerForbidden(t *testing.T) {
	repo := &fakeAccommodationsRepo{byIDOut: &models.Accommodation{ID: "a-1", Owner: "u-1"}}
	s, mock := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Update(context.Background(), &auth.Identity{UserID: "intruder"}, "a-1", validAccommodationInput())
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("want common.ErrForbidden, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("update must not run for a non-owner")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestAccommodationUpdate_NotFound(t *testing.T) {
	repo := &fakeAccommodationsRepo{byIDErr: common.ErrorNotFound}
	s, mock := newAccommodationService(t, &fakeRepoManager{accommodations: repo})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Update(context.Background(), &auth.Identity{UserID: "u-1"}, "missing", validAccommodationInput())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
