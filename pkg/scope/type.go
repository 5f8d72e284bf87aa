package scope

import "github.com/golang-jwt/jwt/v5"

// Payload is the claim set of an access token. UserID is the borrower id or
// the admin account id.
type Payload struct {
	jwt.RegisteredClaims
	UserID   string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	// Refresh marks refresh tokens, which Verify rejects.
	Refresh bool `json:"refresh"`
}

type implManager struct {
	secretKey []byte
}
