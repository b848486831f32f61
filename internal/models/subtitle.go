package models

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/subfetch/subfetch/internal/language"
	"github.com/subfetch/subfetch/internal/matcher"
	"github.com/subfetch/subfetch/internal/video"
)

// Encoding is the fixed text encoding of downloaded subtitle content.
const Encoding = "utf-8"

// Subtitle is one candidate subtitle search result. It is created per search
// result and populated in three stages: construction, scoring (Matches) and
// download (DownloadLink, Content).
type Subtitle struct {
	Language        language.Language
	HearingImpaired bool
	Hash            string
	PageLink        string
	FileID          int64
	Releases        string
	Uploader        string
	Title           string
	Year            int
	Season          *int // episodes only
	Episode         *int // episodes only

	// DownloadLink is the one-time URL obtained on download.
	DownloadLink string

	// Matches is the last computed match set.
	Matches matcher.MatchSet

	// Content is the downloaded subtitle text, normalized to Encoding with
	// unix line endings.
	Content []byte

	// Encoding is the text encoding of Content ("utf-8").
	Encoding string
}

// ID returns the provider-internal identifier of the subtitle file.
func (s *Subtitle) ID() string {
	return strconv.FormatInt(s.FileID, 10)
}

// GetMatches computes which attributes agree between this subtitle and the
// given video, stores the set on the record and returns it.
func (s *Subtitle) GetMatches(v *video.Video) matcher.MatchSet {
	matches := make(matcher.MatchSet)

	// handle movies and series separately
	if v.IsEpisode() {
		matches.Add("series")
		if v.Year == s.Year {
			matches.Add("year")
		}
		if s.Season != nil && *s.Season == v.Season {
			matches.Add("season")
		}
		if s.Episode != nil && *s.Episode == v.Episode {
			matches.Add("episode")
		}
	} else {
		matches.Add("title")
		if v.Year == s.Year {
			matches.Add("year")
		}
	}

	// rest is the same for both kinds
	if v.ReleaseGroup != "" && s.Releases != "" {
		sanitized := matcher.SanitizeReleaseGroup(s.Releases)
		for _, group := range matcher.EquivalentReleaseGroups(matcher.SanitizeReleaseGroup(v.ReleaseGroup)) {
			if strings.Contains(sanitized, group) {
				matches.Add("release_group")
				break
			}
		}
	}
	if v.Resolution != "" && s.Releases != "" && strings.Contains(strings.ToLower(s.Releases), strings.ToLower(v.Resolution)) {
		matches.Add("resolution")
	}
	if v.Source != "" && s.Releases != "" && strings.Contains(strings.ToLower(s.Releases), strings.ToLower(v.Source)) {
		matches.Add("source")
	}
	matches.Union(matcher.GuessMatches(v, s.Releases))

	s.Matches = matches

	return matches
}

// FixLineEndings normalizes CRLF and bare CR line endings to LF.
func FixLineEndings(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}
