package scope

import "time"

const (
	// TokenExpirationDuration is the lifetime of tokens minted by CreateToken.
	// Production tokens come from the auth service.
	TokenExpirationDuration = 24 * time.Hour

	// MinSecretLength is the shortest HS256 secret New accepts.
	MinSecretLength = 32
)
