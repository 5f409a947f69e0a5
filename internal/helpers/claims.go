package helpers

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// SessionClaims is the payload of a session token. The account id travels in
// the registered "sub" claim.
type SessionClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to a request.
type Identity struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i *Identity) IsUser() bool {
	return i.Role == RoleUser
}

func (i *Identity) IsOwner(userID string) bool {
	return i.ID == userID
}
