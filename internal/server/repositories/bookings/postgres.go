package bookings

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {

	query :=
		`INSERT INTO bookings (id, user_id, place_id, check_in, check_out, number_of_guests, name, email, phone, price)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		b.ID, b.User, b.Place, b.CheckIn, b.CheckOut,
		b.NumberOfGuests, b.Name, b.Email, b.Phone, b.Price).Scan(&b.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query :=
		`SELECT id, user_id, place_id, check_in, check_out, number_of_guests, name, email, phone, price, created_at
		 FROM bookings
		 WHERE id = $1
		 `

	b := &models.Booking{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.User, &b.Place, &b.CheckIn, &b.CheckOut,
		&b.NumberOfGuests, &b.Name, &b.Email, &b.Phone, &b.Price, &b.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	query :=
		`SELECT id, user_id, place_id, check_in, check_out, number_of_guests, name, email, phone, price, created_at
		 FROM bookings
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(&b.ID, &b.User, &b.Place, &b.CheckIn, &b.CheckOut,
			&b.NumberOfGuests, &b.Name, &b.Email, &b.Phone, &b.Price, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM bookings
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
