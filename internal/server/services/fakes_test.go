package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/operations"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/users"
)

// memoryUsers behaves like the users table: username and email are unique.
type memoryUsers struct {
	mu        sync.Mutex
	byName    map[string]*models.User
	lookupErr error
	createErr error
	seq       int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byName: map[string]*models.User{}}
}

func (r *memoryUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byName {
		if existing.UserName == u.UserName || existing.Email == u.Email {
			return nil, common.ErrDuplicateUser
		}
	}
	r.seq++
	stored := *u
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	stored.IsActive = true
	stored.CreatedAt = time.Now()
	r.byName[u.UserName] = &stored
	out := stored
	return &out, nil
}

func (r *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *memoryUsers) setActive(username string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[username].IsActive = active
}

type memoryOperations struct {
	mu        sync.Mutex
	rows      []*models.Operation
	createErr error
	listErr   error
	clock     time.Time
}

func (r *memoryOperations) Create(_ context.Context, op *models.Operation) (*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.clock = r.clock.Add(time.Second)
	stored := *op
	stored.ID = int64(len(r.rows) + 1)
	stored.Timestamp = r.clock
	r.rows = append(r.rows, &stored)
	out := stored
	return &out, nil
}

func (r *memoryOperations) ListByUser(_ context.Context, userID string) ([]*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*models.Operation{}
	for _, op := range r.rows {
		if op.UserID == userID {
			c := *op
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

type fakeRepoManager struct {
	users *memoryUsers
	ops   *memoryOperations
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newMemoryUsers(), ops: &memoryOperations{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *fakeRepoManager) Operations(dbx.DBTX) operations.Repository { return m.ops }
