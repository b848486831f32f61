package opensubtitlescom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/config"
)

// login POSTs the credentials and caches the returned bearer token.
//
// Network-level failures surface as ErrServiceUnavailable, bad credentials
// as ErrAuthentication, and everything else unexpected as ErrProvider.
func (p *Provider) login(ctx context.Context) error {
	logger := config.GetLogger()

	payload, err := json.Marshal(loginRequest{Username: p.username, Password: p.password})
	if err != nil {
		return fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Login responses must be read as-is, never followed through redirects
	client := *p.httpClient
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.NewServiceUnavailableError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return apperrors.NewProviderError("invalid JSON returned by provider")
		}
		if body.Token == "" {
			return apperrors.NewProviderError("login response carries no token")
		}
		p.token = body.Token
		logger.Debug().Str("username", p.username).Msg("Logged in")
		return nil
	case http.StatusUnauthorized:
		return apperrors.NewAuthenticationError(resp.Status)
	default:
		return apperrors.NewProviderError(fmt.Sprintf("bad status code: %d", resp.StatusCode))
	}
}
