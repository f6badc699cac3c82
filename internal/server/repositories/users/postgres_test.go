package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*is_active,\s*created_at\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*username,\s*email,\s*password_hash,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func newUser() *models.User {
	return &models.User{UserName: "alice", Email: "alice@x.com", PasswordHash: "$2a$04$hash"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "is_active", "created_at"}).AddRow("u-42", true, created)
	mock.ExpectQuery(insertQuery).
		WithArgs("alice", "alice@x.com", "$2a$04$hash").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), newUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-42" || got.UserName != "alice" || !got.IsActive || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("alice", "alice@x.com", "$2a$04$hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), newUser())
	if !errors.Is(err, common.ErrDuplicateUser) {
		t.Fatalf("want common.ErrDuplicateUser, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("alice", "alice@x.com", "$2a$04$hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), newUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrDuplicateUser) {
		t.Fatalf("generic failure must not look like a duplicate")
	}
}

func TestGetUserByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "is_active", "created_at"}).
		AddRow("u-1", "alice", "alice@x.com", "$2a$04$hash", true, time.Now())
	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "alice@x.com" || got.PasswordHash != "$2a$04$hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByUsername_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByUsername(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
