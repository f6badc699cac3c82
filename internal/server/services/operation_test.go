package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationService_Arithmetic(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewOperationService(nil, rm, logging.Discard())
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() (*models.Operation, error)
		op     string
		result float64
	}{
		{"add", func() (*models.Operation, error) { return s.Add(ctx, "u-1", 2, 3) }, models.OperationAdd, 5},
		{"subtract", func() (*models.Operation, error) { return s.Subtract(ctx, "u-1", 2, 3) }, models.OperationSubtract, -1},
		{"multiply", func() (*models.Operation, error) { return s.Multiply(ctx, "u-1", 2.5, 4) }, models.OperationMultiply, 10},
		{"root", func() (*models.Operation, error) { return s.Root(ctx, "u-1", 16) }, models.OperationRoot, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, tt.op, op.Operation)
			assert.Equal(t, tt.result, op.Result)
			assert.Equal(t, "u-1", op.UserID)
			assert.NotZero(t, op.ID)
		})
	}
}

func TestOperationService_Root(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewOperationService(nil, rm, logging.Discard())

	op, err := s.Root(context.Background(), "u-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, op.Result)
	assert.Equal(t, 0.0, op.Num2)

	_, err = s.Root(context.Background(), "u-1", -4)
	assert.ErrorIs(t, err, common.ErrNegativeRoot)
	assert.Len(t, rm.ops.rows, 1)
}

func TestOperationService_NonFiniteResult(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewOperationService(nil, rm, logging.Discard())

	_, err := s.Multiply(context.Background(), "u-1", math.MaxFloat64, 10)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, rm.ops.rows)
}

func TestOperationService_History(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewOperationService(nil, rm, logging.Discard())
	ctx := context.Background()

	_, err := s.Add(ctx, "alice", 1, 1)
	require.NoError(t, err)
	_, err = s.Multiply(ctx, "bob", 3, 3)
	require.NoError(t, err)
	_, err = s.Subtract(ctx, "alice", 5, 2)
	require.NoError(t, err)

	ops, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, models.OperationSubtract, ops[0].Operation)
	assert.Equal(t, models.OperationAdd, ops[1].Operation)

	empty, err := s.History(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestOperationService_StorageErrors(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewOperationService(nil, rm, logging.Discard())
	ctx := context.Background()

	rm.ops.createErr = errors.New("insert failed")
	_, err := s.Add(ctx, "u-1", 1, 2)
	assert.ErrorIs(t, err, common.ErrorInternal)

	rm.ops.listErr = errors.New("select failed")
	_, err = s.History(ctx, "u-1")
	assert.ErrorIs(t, err, common.ErrorInternal)
}
