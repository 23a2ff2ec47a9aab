package accommodations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/dbx"
	"github.com/rentlyapp/rently/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// photos and perks are stored as jsonb columns.
func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func scanAccommodation(scan func(dest ...any) error) (*models.Accommodation, error) {
	a := &models.Accommodation{}
	var photos, perks []byte

	err := scan(&a.ID, &a.Owner, &a.Title, &a.Address, &photos, &a.Description,
		&perks, &a.ExtraInfo, &a.CheckIn, &a.CheckOut, &a.MaxGuests, &a.Price)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(photos, &a.Photos); err != nil {
		return nil, fmt.Errorf("photos decode error: %w", err)
	}
	if err := json.Unmarshal(perks, &a.Perks); err != nil {
		return nil, fmt.Errorf("perks decode error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error) {

	photos, err := marshalList(a.Photos)
	if err != nil {
		return nil, fmt.Errorf("photos encode error: %w", err)
	}
	perks, err := marshalList(a.Perks)
	if err != nil {
		return nil, fmt.Errorf("perks encode error: %w", err)
	}

	query :=
		`INSERT INTO accommodations (id, owner, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.Owner, a.Title, a.Address, photos, a.Description,
		perks, a.ExtraInfo, a.CheckIn, a.CheckOut, a.MaxGuests, a.Price)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Accommodation, error) {
	query :=
		`SELECT id, owner, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price
		 FROM accommodations
		 WHERE id = $1
		 `

	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAccommodation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Accommodation, error) {
	query :=
		`SELECT id, owner, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price
		 FROM accommodations
		 `

	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Accommodation, error) {
	query :=
		`SELECT id, owner, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price
		 FROM accommodations
		 WHERE owner = $1
		 `

	return r.list(ctx, query, ownerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Accommodation
	for rows.Next() {
		a, err := scanAccommodation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error) {

	photos, err := marshalList(a.Photos)
	if err != nil {
		return nil, fmt.Errorf("photos encode error: %w", err)
	}
	perks, err := marshalList(a.Perks)
	if err != nil {
		return nil, fmt.Errorf("perks encode error: %w", err)
	}

	query :=
		`UPDATE accommodations
		 SET title = $2, address = $3, photos = $4, description = $5, perks = $6, extra_info = $7, check_in = $8, check_out = $9, max_guests = $10, price = $11
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Address, photos, a.Description,
		perks, a.ExtraInfo, a.CheckIn, a.CheckOut, a.MaxGuests, a.Price)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return a, nil
}
