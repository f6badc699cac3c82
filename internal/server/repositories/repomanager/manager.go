package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/operations"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Operations(db dbx.DBTX) operations.Repository
}
