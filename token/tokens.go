// Package token mints and verifies the bearer tokens used by TaskFlow.
// Access tokens carry only the user id; refresh tokens additionally carry
// the jti that keys their server-side session record.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims are the verified contents of a TaskFlow token.
type Claims struct {
	UserID string // "sub"
	JTI    string // "jti", empty on access tokens
}

func NewAccessToken(signer Signer, userID string, now time.Time, ttl time.Duration) (string, error) {
	return signer.Sign(jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
}

func NewRefreshToken(signer Signer, userID, jti string, now time.Time, ttl time.Duration) (string, error) {
	return signer.Sign(jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
}

// Parse verifies a raw token against the signer's key and returns its
// claims. Expired or tampered tokens fail here; callers only need to map
// the error to Unauthorized.
func Parse(signer Signer, rawToken string) (Claims, error) {
	parsed, err := jwt.Parse(rawToken, signer.GetVerificationKey)
	if err != nil {
		return Claims{}, errors.Wrap(err, "[token.Parse]")
	}
	if !parsed.Valid {
		return Claims{}, errors.New("[token.Parse] invalid token")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("[token.Parse] error extracting claims")
	}

	sub, _ := mapClaims["sub"].(string)
	jti, _ := mapClaims["jti"].(string)

	return Claims{UserID: sub, JTI: jti}, nil
}
