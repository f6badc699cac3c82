package operations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, op *models.Operation) (*models.Operation, error) {
	query :=
		`INSERT INTO operation_history (operation, num1, num2, result, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		op.Operation, op.Num1, op.Num2, op.Result, op.UserID).Scan(&op.ID, &op.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return op, nil
}

// ListByUser returns userID's operations, newest first. Rows created within
// the same instant are ordered by id so the result is stable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Operation, error) {
	query :=
		`SELECT id, operation, num1, num2, result, created_at, user_id FROM operation_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Operation, 0)
	for rows.Next() {
		var item models.Operation
		if err := rows.Scan(
			&item.ID, &item.Operation, &item.Num1, &item.Num2, &item.Result, &item.Timestamp, &item.UserID,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
