package model

// Roles carried in the access token.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Scope is the authenticated caller of an HTTP request. For borrowers UserID
// is also the citizen id notifications are addressed to.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	JTI      string `json:"jti"`
}

func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Owns reports whether a record addressed to citizenID belongs to the caller.
func (s Scope) Owns(citizenID *string) bool {
	return citizenID != nil && s.UserID != "" && *citizenID == s.UserID
}
