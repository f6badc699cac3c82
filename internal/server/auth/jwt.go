// Package auth holds the authentication core: bcrypt password hashing,
// HS256 access tokens and bearer-token identity resolution.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity carried by an access token: sub, iat, exp and a
// random jti so that two tokens for one subject never coincide.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes HS256 access tokens. The secret is fixed at
// construction and only read afterwards, so a codec is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now, mostly for tests around expiry.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is empty")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	c := &TokenCodec{secret: key, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject valid for ttl from now. exp is rounded up
// to the next whole second, so the token never expires before now+ttl.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}

	now := c.now()
	exp := now.Add(ttl)
	if whole := exp.Truncate(time.Second); whole.Before(exp) {
		exp = whole.Add(time.Second)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString and returns its claims.
//
// Errors are common.ErrTokenExpired once now >= exp (no leeway) and
// common.ErrInvalidToken for anything else: bad signature, foreign
// algorithm, malformed segments or a missing subject.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
