package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the claim set carried by a member session token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// MemberID returns the member identifier the token was issued for.
func (c *Claims) MemberID() string {
	return c.RegisteredClaims.Subject
}
