package services

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/repomanager"
)

// OperationService performs arithmetic on behalf of an authenticated user
// and records every successful call in that user's history.
type OperationService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewOperationService(db dbx.DBTX, m repomanager.RepositoryManager, logger logging.Logger) *OperationService {
	return &OperationService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "operation_service"),
	}
}

func (s *OperationService) Add(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error) {
	return s.record(ctx, userID, models.OperationAdd, num1, num2, num1+num2)
}

func (s *OperationService) Subtract(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error) {
	return s.record(ctx, userID, models.OperationSubtract, num1, num2, num1-num2)
}

func (s *OperationService) Multiply(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error) {
	return s.record(ctx, userID, models.OperationMultiply, num1, num2, num1*num2)
}

// Root stores num2 as 0, since square root takes a single operand.
func (s *OperationService) Root(ctx context.Context, userID string, number float64) (*models.Operation, error) {
	if number < 0 {
		return nil, common.ErrNegativeRoot
	}
	return s.record(ctx, userID, models.OperationRoot, number, 0, math.Sqrt(number))
}

// History returns userID's operations, newest first.
func (s *OperationService) History(ctx context.Context, userID string) ([]*models.Operation, error) {
	ops, err := s.repomanager.Operations(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "history lookup failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return ops, nil
}

func (s *OperationService) record(ctx context.Context, userID, operation string, num1, num2, result float64) (*models.Operation, error) {
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return nil, fmt.Errorf("%w: result of %s is not a finite number", common.ErrValidation, operation)
	}

	op, err := s.repomanager.Operations(s.db).Create(ctx, &models.Operation{
		Operation: operation,
		Num1:      num1,
		Num2:      num2,
		Result:    result,
		UserID:    userID,
	})
	if err != nil {
		s.logger.Error(ctx, "operation insert failed", "operation", operation, "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Debug(ctx, "operation performed", "operation", operation, "user_id", userID, "result", result)
	return op, nil
}
