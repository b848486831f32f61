package opensubtitlescom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/metrics"
	"github.com/subfetch/subfetch/internal/models"
)

// DownloadSubtitle obtains a one-time download link for the subtitle's file
// id and stores the fetched content, normalized to UTF-8 with unix line
// endings, on the record. An empty body is logged and leaves Content unset.
func (p *Provider) DownloadSubtitle(ctx context.Context, subtitle *models.Subtitle) error {
	if err := p.downloadSubtitle(ctx, subtitle); err != nil {
		metrics.DownloadsTotal.WithLabelValues(Name, "error").Inc()
		return err
	}
	metrics.DownloadsTotal.WithLabelValues(Name, "success").Inc()
	return nil
}

func (p *Provider) downloadSubtitle(ctx context.Context, subtitle *models.Subtitle) error {
	logger := config.GetLogger()
	logger.Info().
		Int64("fileID", subtitle.FileID).
		Str("release", subtitle.Releases).
		Msg("Downloading subtitle")

	payload, err := json.Marshal(downloadRequest{FileID: subtitle.FileID})
	if err != nil {
		return fmt.Errorf("encode download request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/download", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request download link: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotAcceptable:
		return apperrors.NewDownloadLimitExceededError()
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperrors.NewBadStatusError("download", resp.StatusCode)
	}

	var body downloadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperrors.NewProviderError("invalid JSON returned by provider")
	}
	subtitle.DownloadLink = body.Link

	fileReq, err := http.NewRequestWithContext(ctx, http.MethodGet, subtitle.DownloadLink, nil)
	if err != nil {
		return fmt.Errorf("create file request: %w", err)
	}

	fileResp, err := p.httpClient.Do(fileReq)
	if err != nil {
		return fmt.Errorf("fetch subtitle file: %w", err)
	}
	defer fileResp.Body.Close()

	if fileResp.StatusCode < 200 || fileResp.StatusCode > 299 {
		return apperrors.NewBadStatusError("subtitle file", fileResp.StatusCode)
	}

	content, err := io.ReadAll(fileResp.Body)
	if err != nil {
		return fmt.Errorf("read subtitle file: %w", err)
	}

	if len(content) == 0 {
		logger.Warn().Int64("fileID", subtitle.FileID).Msg("Unable to download subtitle, no data returned")
		return nil
	}

	subtitle.Content = models.FixLineEndings(decodeToUTF8(content, fileResp.Header.Get("Content-Type")))

	logger.Debug().
		Int64("fileID", subtitle.FileID).
		Int("bytes", len(subtitle.Content)).
		Msg("Stored subtitle content")

	return nil
}

// decodeToUTF8 converts the content to UTF-8, using the Content-Type charset
// when declared and BOM/heuristic detection otherwise. The raw bytes are
// returned unchanged when conversion is not possible.
func decodeToUTF8(content []byte, contentType string) []byte {
	reader, err := charset.NewReader(bytes.NewReader(content), contentType)
	if err != nil {
		return content
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return content
	}
	return decoded
}
