package security

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints signed, time-bounded bearer tokens carrying the subject
// username and numeric user id. Tokens carry no jti and there is no
// revocation list: expiry is the only invalidation path.
type TokenIssuer struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		tokenAuth: jwtauth.New("HS256", secret, nil),
		ttl:       ttl,
	}
}

// Issue signs a token for the given user, expiring after the configured TTL.
func (i *TokenIssuer) Issue(username string, userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     username,
		"user_id": userID,
		"exp":     now.Add(i.ttl).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := i.tokenAuth.Encode(claims)
	return tokenString, err
}

// ExpiresInSeconds is the lifetime reported alongside issued tokens.
func (i *TokenIssuer) ExpiresInSeconds() int {
	return int(i.ttl.Seconds())
}

// Helper functions to extract claims, used by the local verifier.
func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	case json.Number:
		return id.Int64()
	default:
		return 0, errors.New("user_id claim is missing or not a number")
	}
}
