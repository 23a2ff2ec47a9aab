package repomanager

import (
	"context"
	"database/sql"

	"github.com/rentlyapp/rently/internal/dbx"
	"github.com/rentlyapp/rently/internal/server/repositories/accommodations"
	"github.com/rentlyapp/rently/internal/server/repositories/bookings"
	"github.com/rentlyapp/rently/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Accommodations(db dbx.DBTX) accommodations.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
