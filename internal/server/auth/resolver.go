package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

// LookupFunc loads a user by username. A missing user must be reported as
// common.ErrorNotFound.
type LookupFunc func(ctx context.Context, username string) (*models.User, error)

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID   string
	Username string
	IsActive bool
}

// IdentityResolver turns a bearer token into a persisted, active user.
type IdentityResolver struct {
	codec  *TokenCodec
	lookup LookupFunc
	logger logging.Logger
}

func NewIdentityResolver(codec *TokenCodec, lookup LookupFunc, logger logging.Logger) *IdentityResolver {
	return &IdentityResolver{
		codec:  codec,
		lookup: lookup,
		logger: logger.With("module", "identity_resolver"),
	}
}

// Resolve returns the identity behind token.
//
// Every authentication failure (no token, bad or expired token, unknown or
// inactive user) is reported as common.ErrorUnauthorized; the precise reason
// only goes to the log. A storage failure is common.ErrorInternal.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := r.codec.Decode(token)
	if err != nil {
		r.logger.Debug(ctx, "token rejected", "reason", err)
		return nil, common.ErrorUnauthorized
	}

	user, err := r.lookup(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.logger.Info(ctx, "token subject not found", "username", claims.Subject)
			return nil, common.ErrorUnauthorized
		}
		r.logger.Error(ctx, "user lookup failed", "username", claims.Subject, "error", err)
		return nil, common.ErrorInternal
	}

	if !user.IsActive {
		r.logger.Info(ctx, "inactive user rejected", "username", user.UserName)
		return nil, common.ErrorUnauthorized
	}

	return &Identity{UserID: user.ID, Username: user.UserName, IsActive: user.IsActive}, nil
}
