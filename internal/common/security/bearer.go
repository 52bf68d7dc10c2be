package security

import (
	"strings"

	"authgate/internal/common"
)

// BearerFromHeader extracts the token from an Authorization header value.
// The header must be exactly two whitespace-separated fields with a
// case-insensitive "bearer" scheme.
func BearerFromHeader(header string) (string, error) {
	if header == "" {
		return "", common.Detail(common.ErrUnauthorized, "Authorization header missing")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", common.Detail(common.ErrUnauthorized, "Invalid authorization header format")
	}
	return parts[1], nil
}
