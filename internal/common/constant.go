package common

import "time"

// AuthorizationHeaderName carries the bearer token on inbound HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme accepted by protected endpoints.
const BearerScheme = "Bearer"

// TokenType is reported to clients alongside every issued access token.
const TokenType = "bearer"

// DefaultAccessTokenTTL is the lifetime of an access token when
// ACCESS_TOKEN_EXPIRE_MINUTES is not configured.
const DefaultAccessTokenTTL = 30 * time.Minute
