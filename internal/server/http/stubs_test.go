package http

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/server/auth"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

type userStub struct {
	token string
	err   error

	gotUsername string
	gotEmail    string
	gotPassword string
}

func (u *userStub) Register(_ context.Context, username, email, password string) (string, error) {
	u.gotUsername, u.gotEmail, u.gotPassword = username, email, password
	return u.token, u.err
}

func (u *userStub) Login(_ context.Context, username, password string) (string, error) {
	u.gotUsername, u.gotPassword = username, password
	return u.token, u.err
}

// resolverStub accepts exactly one token.
type resolverStub struct {
	validToken string
	identity   *auth.Identity
	err        error
	calls      int
}

func (r *resolverStub) Resolve(_ context.Context, token string) (*auth.Identity, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if token != r.validToken {
		return nil, common.ErrorUnauthorized
	}
	return r.identity, nil
}

type opsStub struct {
	mu      sync.Mutex
	calls   int
	rows    []*models.Operation
	err     error
	panics  bool
	gotUser string
}

func (o *opsStub) record(userID, op string, num1, num2, result float64) (*models.Operation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.gotUser = userID
	if o.panics {
		panic("boom")
	}
	if o.err != nil {
		return nil, o.err
	}
	row := &models.Operation{
		ID:        int64(len(o.rows) + 1),
		Operation: op,
		Num1:      num1,
		Num2:      num2,
		Result:    result,
		UserID:    userID,
		Timestamp: time.Date(2026, 3, 1, 12, 0, len(o.rows), 0, time.UTC),
	}
	o.rows = append(o.rows, row)
	return row, nil
}

func (o *opsStub) Add(_ context.Context, userID string, a, b float64) (*models.Operation, error) {
	return o.record(userID, models.OperationAdd, a, b, a+b)
}

func (o *opsStub) Subtract(_ context.Context, userID string, a, b float64) (*models.Operation, error) {
	return o.record(userID, models.OperationSubtract, a, b, a-b)
}

func (o *opsStub) Multiply(_ context.Context, userID string, a, b float64) (*models.Operation, error) {
	return o.record(userID, models.OperationMultiply, a, b, a*b)
}

func (o *opsStub) Root(_ context.Context, userID string, n float64) (*models.Operation, error) {
	if n < 0 {
		return nil, common.ErrNegativeRoot
	}
	return o.record(userID, models.OperationRoot, n, 0, math.Sqrt(n))
}

func (o *opsStub) History(_ context.Context, userID string) ([]*models.Operation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	if o.err != nil {
		return nil, o.err
	}
	var out []*models.Operation
	for i := len(o.rows) - 1; i >= 0; i-- {
		if o.rows[i].UserID == userID {
			out = append(out, o.rows[i])
		}
	}
	return out, nil
}
