// internal/utils/token.go
package utils

import (
	"github.com/golang-jwt/jwt/v4"
)

// DecodeTokenUsername pulls a display username out of the remote API's JWT
// without verifying it. The token is opaque as far as login state goes —
// presence in the session store is the only proof of login — so the claims
// are display metadata, nothing more.
func DecodeTokenUsername(tokenString string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return ""
	}

	if user, ok := claims["user"].(string); ok && user != "" {
		return user
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
