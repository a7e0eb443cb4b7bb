package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SessionToken is the server-side record of an issued refresh token, keyed
// by the token's jti claim. The refresh token itself is never stored; only
// its hash is, so a leaked table cannot be replayed.
//
// A record is deleted exactly once: on successful rotation, on expiry
// detection, on hash mismatch (revocation), or by the lazy sweep.
type SessionToken struct {
	ID               string    // jti of the refresh token
	UserID           string
	RefreshTokenHash string
	ExpiresAt        time.Time
	CreatedAt        time.Time
}

// HashRefreshToken computes the at-rest hash of a refresh token string.
func HashRefreshToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
