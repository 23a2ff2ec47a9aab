package accommodations

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleAccommodation() *models.Accommodation {
	return &models.Accommodation{
		ID:          "a-1",
		Owner:       "u-1",
		Title:       "Sea view flat",
		Address:     "1 Shore Rd",
		Photos:      []string{"photos/1.jpg"},
		Description: "Nice place",
		Perks:       []string{"wifi"},
		ExtraInfo:   "no pets",
		CheckIn:     "14:00",
		CheckOut:    "11:00",
		MaxGuests:   4,
		Price:       150,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccommodation()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accommodations`).
		WithArgs(a.ID, a.Owner, a.Title, a.Address, []byte(`["photos/1.jpg"]`), a.Description,
			[]byte(`["wifi"]`), a.ExtraInfo, a.CheckIn, a.CheckOut, a.MaxGuests, a.Price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" {
		t.Fatalf("unexpected accommodation: %+v", got)
	}
}

func TestCreate_NilListsStoredAsEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccommodation()
	a.Photos = nil
	a.Perks = nil

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accommodations`).
		WithArgs(a.ID, a.Owner, a.Title, a.Address, []byte(`[]`), a.Description,
			[]byte(`[]`), a.ExtraInfo, a.CheckIn, a.CheckOut, a.MaxGuests, a.Price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func accommodationColumns() []string {
	return []string{"id", "owner", "title", "address", "photos", "description",
		"perks", "extra_info", "check_in", "check_out", "max_guests", "price"}
}

func sampleRow(rows *sqlmock.Rows, id, owner string) *sqlmock.Rows {
	return rows.AddRow(id, owner, "Sea view flat", "1 Shore Rd", []byte(`["photos/1.jpg"]`),
		"Nice place", []byte(`["wifi"]`), "no pets", "14:00", "11:00", 4, int64(150))
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sampleRow(sqlmock.NewRows(accommodationColumns()), "a-1", "u-1")
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+accommodations\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Owner != "u-1" || len(got.Photos) != 1 || got.Photos[0] != "photos/1.jpg" {
		t.Fatalf("unexpected accommodation: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+accommodations\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(accommodationColumns())
	sampleRow(rows, "a-1", "u-1")
	sampleRow(rows, "a-2", "u-2")
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+accommodations\s*$`).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "a-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sampleRow(sqlmock.NewRows(accommodationColumns()), "a-1", "u-1")
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+accommodations\s+WHERE\s+owner\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 1 || got[0].Owner != "u-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccommodation()

	mock.ExpectExec(`(?s)^UPDATE\s+accommodations\s+SET`).
		WithArgs(a.ID, a.Title, a.Address, []byte(`["photos/1.jpg"]`), a.Description,
			[]byte(`["wifi"]`), a.ExtraInfo, a.CheckIn, a.CheckOut, a.MaxGuests, a.Price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.Update(context.Background(), a); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccommodation()

	mock.ExpectExec(`(?s)^UPDATE\s+accommodations\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), a)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+accommodations\s+SET`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Update(context.Background(), sampleAccommodation())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
