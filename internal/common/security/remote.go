package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"authgate/internal/common"
)

// RemoteVerifier delegates validation to the identity service's verify
// endpoint. A non-200 answer means the credential is bad (ErrUnauthorized,
// do not retry); a transport failure means the verifier is unreachable
// (ErrServiceUnavailable, retry is the caller's policy). The two are never
// conflated. The call is bounded by the client timeout and never retried
// here.
type RemoteVerifier struct {
	baseURL string
	client  *http.Client
}

func NewRemoteVerifier(baseURL string, timeout time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, common.Detail(common.ErrServiceUnavailable, "Auth service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.Detail(common.ErrUnauthorized, "Invalid token")
	}

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		// A garbled reply from the verifier is an infrastructure fault,
		// not a bad credential.
		return nil, common.Detail(common.ErrServiceUnavailable, "Auth service unavailable")
	}

	return &Claims{
		Username: user.Username,
		UserID:   user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}
