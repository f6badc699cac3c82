package users

import (
	"context"

	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

// Repository persists credentials. Create must report a username or email
// collision as common.ErrDuplicateUser; GetUserByUsername reports a missing
// user as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
