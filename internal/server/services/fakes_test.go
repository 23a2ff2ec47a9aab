package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rentlyapp/rently/internal/dbx"
	"github.com/rentlyapp/rently/internal/logging"
	"github.com/rentlyapp/rently/internal/server/config"
	"github.com/rentlyapp/rently/internal/server/models"
	"github.com/rentlyapp/rently/internal/server/repositories/accommodations"
	"github.com/rentlyapp/rently/internal/server/repositories/bookings"
	"github.com/rentlyapp/rently/internal/server/repositories/users"
)

// --- shared helpers ---

func newTestLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTxDB returns a mocked *sql.DB for services that open transactions.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		S3Bucket:              "photos",
		S3Region:              "us-east-1",
	}
}

// --- fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	created *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeAccommodationsRepo struct {
	createErr error
	created   *models.Accommodation

	byIDOut *models.Accommodation
	byIDErr error

	listAllOut []*models.Accommodation
	listAllErr error

	byOwnerOut []*models.Accommodation
	byOwnerErr error

	updateErr error
	updated   *models.Accommodation
}

func (f *fakeAccommodationsRepo) Create(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error) {
	f.created = a
	if f.createErr != nil {
		return nil, f.createErr
	}
	return a, nil
}

func (f *fakeAccommodationsRepo) GetByID(ctx context.Context, id string) (*models.Accommodation, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeAccommodationsRepo) ListAll(ctx context.Context) ([]*models.Accommodation, error) {
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	return f.listAllOut, nil
}

func (f *fakeAccommodationsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Accommodation, error) {
	if f.byOwnerErr != nil {
		return nil, f.byOwnerErr
	}
	return f.byOwnerOut, nil
}

func (f *fakeAccommodationsRepo) Update(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error) {
	f.updated = a
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return a, nil
}

type fakeBookingsRepo struct {
	createErr error
	created   *models.Booking

	byIDOut *models.Booking
	byIDErr error

	byUserOut []*models.Booking
	byUserErr error

	deleteErr error
	deletedID string
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	f.created = b
	if f.createErr != nil {
		return nil, f.createErr
	}
	return b, nil
}

func (f *fakeBookingsRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeBookingsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	if f.byUserErr != nil {
		return nil, f.byUserErr
	}
	return f.byUserOut, nil
}

func (f *fakeBookingsRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeRepoManager struct {
	users          *fakeUsersRepo
	accommodations *fakeAccommodationsRepo
	bookings       *fakeBookingsRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return f.users }

func (f *fakeRepoManager) Accommodations(db dbx.DBTX) accommodations.Repository {
	return f.accommodations
}

func (f *fakeRepoManager) Bookings(db dbx.DBTX) bookings.Repository { return f.bookings }
