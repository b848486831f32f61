package opensubtitlescom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/video"
)

// searchTitles resolves the provider-internal title id for the video by text
// search. The first entry whose title matches case-insensitively and whose
// year matches exactly wins. An empty id with a nil error means no match,
// including when the response body cannot be parsed.
func (p *Provider) searchTitles(ctx context.Context, title string, v *video.Video) (string, error) {
	logger := config.GetLogger()

	endpoint := p.baseURL + "/search/movie"
	if v.IsEpisode() {
		endpoint = p.baseURL + "/search/tv"
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid search URL: %w", err)
	}
	query := u.Query()
	query.Set("query", title)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create title search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("title search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.NewBadStatusError("title search", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Debug().Err(err).Msg("Unable to parse returned JSON")
		return "", nil
	}

	for _, result := range body.Data {
		if strings.EqualFold(title, result.Attributes.Title) && v.Year == int(result.Attributes.Year) {
			return result.ID, nil
		}
	}

	logger.Debug().Str("title", title).Int("year", v.Year).Msg("No title match found")
	return "", nil
}
