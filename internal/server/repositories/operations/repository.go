package operations

import (
	"context"

	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

// Repository stores arithmetic history.
type Repository interface {
	Create(ctx context.Context, op *models.Operation) (*models.Operation, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Operation, error)
}
