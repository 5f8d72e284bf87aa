package scope

import "fmt"

// Manager verifies the access tokens the auth service issues to borrowers
// and admins. Safe for concurrent use.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload) (string, error)
}

// New panics on a secret shorter than MinSecretLength; config validation
// rejects those before this point.
func New(secretKey string) Manager {
	if len(secretKey) < MinSecretLength {
		panic(fmt.Sprintf("scope: secret key must be at least %d characters", MinSecretLength))
	}
	return &implManager{secretKey: []byte(secretKey)}
}
