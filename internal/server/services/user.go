// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and access-token issuing,
// and exposes the identity resolver used by protected endpoints.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/auth"
	"github.com/dmitrijs2005/calcapi/internal/server/config"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/repomanager"
)

// Input limits for registration.
const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores anything beyond 72 bytes
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserService provides authentication-related operations:
// - Register: validate, hash, persist and mint an access token
// - Login: verify credentials and mint a fresh access token
// - Resolver: turn bearer tokens back into users
type UserService struct {
	db                          dbx.DBTX
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.PasswordHasher
	codec                       *auth.TokenCodec
	resolver                    *auth.IdentityResolver
	logger                      logging.Logger
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	codec *auth.TokenCodec, cfg *config.Config, logger logging.Logger) *UserService {

	s := &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		codec:                       codec,
		logger:                      logger.With("module", "user_service"),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
	s.resolver = auth.NewIdentityResolver(codec, s.findUser, logger)
	return s
}

// Resolver returns the identity resolver bound to the user repository.
func (s *UserService) Resolver() *auth.IdentityResolver {
	return s.resolver
}

// Register creates a user and returns an access token for it.
// A taken username or email yields common.ErrDuplicateUser, bad input
// yields an error wrapping common.ErrValidation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (string, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return "", common.ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "registration lookup failed", "username", username, "error", err)
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "username", username, "error", err)
		return "", common.ErrorInternal
	}

	// The unique index settles races that slipped past the lookup above.
	user, err := repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return "", common.ErrDuplicateUser
		}
		s.logger.Error(ctx, "user insert failed", "username", username, "error", err)
		return "", common.ErrorInternal
	}

	token, err := s.generateAccessToken(ctx, user.UserName)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "user registered", "username", user.UserName)
	return token, nil
}

// Login checks username/password and returns a new access token. An unknown
// user and a wrong password are both common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(ctx, password)
			s.logger.Info(ctx, "login failed", "username", username)
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "login lookup failed", "username", username, "error", err)
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		if err := ctx.Err(); err != nil {
			s.logger.Error(ctx, "login aborted", "username", username, "error", err)
			return "", common.ErrorInternal
		}
		s.logger.Info(ctx, "login failed", "username", username)
		return "", common.ErrorUnauthorized
	}
	if !user.IsActive {
		s.logger.Info(ctx, "login failed", "username", username)
		return "", common.ErrorUnauthorized
	}

	token, err := s.generateAccessToken(ctx, user.UserName)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "user logged in", "username", user.UserName)
	return token, nil
}

// --- helpers below ---

func (s *UserService) findUser(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetUserByUsername(ctx, username)
}

func (s *UserService) generateAccessToken(ctx context.Context, username string) (string, error) {
	token, err := s.codec.Issue(username, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "username", username, "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

func validateRegistration(username, email, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("%w: username must be between %d and %d characters", common.ErrValidation, minUsernameLen, maxUsernameLen)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email is not a valid address", common.ErrValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, maxPasswordLen)
	}
	return nil
}
