package security

import (
	"context"

	"authgate/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// LocalVerifier checks a token's signature and expiry in-process with the
// shared secret. It never touches the network and every failure mode is
// ErrUnauthorized.
type LocalVerifier struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewLocalVerifier(secret []byte) *LocalVerifier {
	return &LocalVerifier{tokenAuth: jwtauth.New("HS256", secret, nil)}
}

func (v *LocalVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwtauth.VerifyToken(v.tokenAuth, tokenString)
	if err != nil {
		return nil, common.Detail(common.ErrUnauthorized, "Could not validate credentials")
	}

	// A cryptographically valid token without both identity claims is
	// still an invalid credential.
	claims := jwt.MapClaims(token.PrivateClaims())
	claims["sub"] = token.Subject()

	username, err := GetSubjectFromClaims(claims)
	if err != nil {
		return nil, common.Detail(common.ErrUnauthorized, "Could not validate credentials")
	}
	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		return nil, common.Detail(common.ErrUnauthorized, "Could not validate credentials")
	}

	return &Claims{
		Username:  username,
		UserID:    userID,
		ExpiresAt: token.Expiration(),
	}, nil
}
