package config

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PlayerIDFromToken extracts the player id from the session token's subject
// claim. The token is not verified here; the server rejects bad signatures on
// every call, and the client only needs its own identity to apply the
// single-resumer rule.
func PlayerIDFromToken(token string) (uuid.UUID, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session token: %w", err)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("session token has no subject claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject claim is not a player id: %w", err)
	}
	return id, nil
}
