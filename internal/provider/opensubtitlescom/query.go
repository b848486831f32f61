package opensubtitlescom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/language"
	"github.com/subfetch/subfetch/internal/metrics"
	"github.com/subfetch/subfetch/internal/models"
	"github.com/subfetch/subfetch/internal/video"
)

// ListSubtitles returns scored candidates for the video in the requested
// languages.
func (p *Provider) ListSubtitles(ctx context.Context, v *video.Video, languages []language.Language) ([]*models.Subtitle, error) {
	subtitles, err := p.Query(ctx, languages, v)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(Name, "error").Inc()
		return nil, err
	}
	metrics.SearchesTotal.WithLabelValues(Name, "success").Inc()
	return subtitles, nil
}

// Query resolves the video's title id, fetches the matching subtitle entries
// and returns one scored Subtitle per entry of type "subtitle". An empty
// slice is returned when no title id could be resolved.
func (p *Provider) Query(ctx context.Context, languages []language.Language, v *video.Video) ([]*models.Subtitle, error) {
	logger := config.GetLogger()

	if p.useHash {
		p.lastHash = v.Hashes[video.HashOpenSubtitles]
	}

	titleID, err := p.searchTitles(ctx, v.SearchTitle(), v)
	if err != nil {
		return nil, err
	}
	if titleID == "" {
		return []*models.Subtitle{}, nil
	}

	u, err := p.findURL(titleID, languages, v)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create subtitle query request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subtitle query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewBadStatusError("subtitle query", resp.StatusCode)
	}

	var body findResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewProviderError("invalid JSON returned by provider")
	}

	subtitles := make([]*models.Subtitle, 0, len(body.Data))
	for _, item := range body.Data {
		if item.Type != "subtitle" {
			continue
		}
		attrs := item.Attributes
		if len(attrs.Files) == 0 {
			logger.Warn().Str("release", attrs.Release).Msg("Subtitle entry without files, skipping")
			continue
		}
		lang, err := language.FromIETF(attrs.Language)
		if err != nil {
			logger.Warn().Err(err).Str("language", attrs.Language).Msg("Skipping subtitle with unknown language")
			continue
		}

		subtitle := &models.Subtitle{
			Language:        lang,
			HearingImpaired: attrs.HearingImpaired,
			PageLink:        attrs.URL,
			FileID:          attrs.Files[0].ID,
			Releases:        attrs.Release,
			Uploader:        attrs.Uploader.Name,
			Title:           attrs.FeatureDetails.MovieName,
			Year:            v.Year,
			Encoding:        models.Encoding,
		}
		if v.IsEpisode() {
			season := attrs.FeatureDetails.SeasonNumber
			episode := attrs.FeatureDetails.EpisodeNumber
			subtitle.Season = &season
			subtitle.Episode = &episode
		}
		subtitle.GetMatches(v)
		subtitles = append(subtitles, subtitle)
	}

	logger.Info().
		Str("title", v.SearchTitle()).
		Str("titleID", titleID).
		Int("subtitles", len(subtitles)).
		Msg("Queried subtitles")

	return subtitles, nil
}

// findURL builds the find endpoint URL for the video kind.
func (p *Provider) findURL(titleID string, languages []language.Language, v *video.Video) (string, error) {
	endpoint := p.baseURL + "/find/movie"
	if v.IsEpisode() {
		endpoint = p.baseURL + "/find/tv"
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid find URL: %w", err)
	}

	query := u.Query()
	query.Set("languages", language.Join(languages))
	if v.IsEpisode() {
		query.Set("parent_id", titleID)
		query.Set("season_number", strconv.Itoa(v.Season))
		query.Set("episode_number", strconv.Itoa(v.Episode))
	} else {
		query.Set("id", titleID)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
