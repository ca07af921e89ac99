package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AppCredential identifies an identity-service application credential.
type AppCredential struct {
	ID     string
	Secret string
}

// AppCredentialToken returns a CachingToken that authenticates against the
// identity endpoint with an application credential. The issued token arrives
// in the X-Subject-Token response header; its expiry in the response body.
func AppCredentialToken(authURL string, cred AppCredential, hc *http.Client) *CachingToken {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	tokenURL := strings.TrimRight(authURL, "/") + "/auth/tokens"

	return &CachingToken{
		Refresh: func(ctx context.Context) (string, time.Time, error) {
			return issueToken(ctx, hc, tokenURL, cred)
		},
	}
}

func issueToken(ctx context.Context, hc *http.Client, tokenURL string, cred AppCredential) (string, time.Time, error) {
	payload := map[string]any{
		"auth": map[string]any{
			"identity": map[string]any{
				"methods": []string{"application_credential"},
				"application_credential": map[string]string{
					"id":     cred.ID,
					"secret": cred.Secret,
				},
			},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(buf))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to reach identity service: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", time.Time{}, &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodPost,
			URL:        tokenURL,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	token := resp.Header.Get("X-Subject-Token")
	if token == "" {
		return "", time.Time{}, fmt.Errorf("identity service returned no subject token")
	}

	var body struct {
		Token struct {
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && err != io.EOF {
		return "", time.Time{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	expiresAt := body.Token.ExpiresAt
	if expiresAt.IsZero() {
		// Some deployments omit expiry; assume a short-lived token.
		expiresAt = time.Now().Add(15 * time.Minute)
	}
	return token, expiresAt, nil
}
