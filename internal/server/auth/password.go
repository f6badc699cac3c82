package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/calcapi/internal/logging"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher hashes and verifies passwords with bcrypt. At most
// `concurrency` bcrypt computations run at once; callers beyond that wait
// (or give up when their context is cancelled).
type PasswordHasher struct {
	cost   int
	sem    *semaphore.Weighted
	logger logging.Logger
	dummy  []byte
}

// NewPasswordHasher builds a hasher. It pre-computes a throwaway hash used by
// VerifyDummy, so construction itself costs one bcrypt round.
func NewPasswordHasher(cost, concurrency int, logger logging.Logger) (*PasswordHasher, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("hash concurrency must be at least 1, got %d", concurrency)
	}

	filler := make([]byte, 16)
	if _, err := rand.Read(filler); err != nil {
		return nil, fmt.Errorf("generating dummy password: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword(filler, cost)
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}

	return &PasswordHasher{
		cost:   cost,
		sem:    semaphore.NewWeighted(int64(concurrency)),
		logger: logger.With("module", "password_hasher"),
		dummy:  dummy,
	}, nil
}

// Hash returns a self-describing bcrypt hash ($2a$<cost>$<salt+digest>).
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches storedHash. It never returns an
// error: a malformed hash or a cancelled context simply yields false.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, storedHash string) bool {
	if err := ctx.Err(); err != nil {
		h.logger.Debug(ctx, "password check skipped", "error", err)
		return false
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		h.logger.Debug(ctx, "password check skipped", "error", err)
		return false
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		h.logger.Warn(ctx, "password hash could not be checked", "error", err)
		return false
	}
}

// VerifyDummy spends the same effort as Verify against a real hash.
// Login calls it for unknown usernames.
func (h *PasswordHasher) VerifyDummy(ctx context.Context, plaintext string) {
	_ = h.Verify(ctx, plaintext, string(h.dummy))
}
