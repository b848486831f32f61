package video

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opensubtitlescli/moviehash"
	ptn "github.com/razsteinmetz/go-ptn"

	"github.com/subfetch/subfetch/internal/config"
)

// HashOpenSubtitles is the key under which the opensubtitles file hash is
// stored in Video.Hashes.
const HashOpenSubtitles = "opensubtitlescom"

// Kind discriminates between the two video variants.
type Kind int

const (
	KindMovie Kind = iota
	KindEpisode
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindEpisode {
		return "episode"
	}
	return "movie"
}

// Video holds the metadata a caller knows about a movie or TV episode.
// It is immutable from the provider's perspective.
type Video struct {
	Kind Kind

	// Name is the video file name or path the metadata was derived from.
	Name string

	// Title is set for movies, Series for episodes.
	Title  string
	Series string

	Year    int
	Season  int // episodes only
	Episode int // episodes only

	ReleaseGroup string
	Resolution   string // e.g. "1080p"
	Source       string // e.g. "Web", "Blu-ray"
	VideoCodec   string
	AudioCodec   string
	Container    string

	// Hashes maps provider names to precomputed file hashes.
	Hashes map[string]string
}

// IsEpisode reports whether the video is a TV episode.
func (v *Video) IsEpisode() bool {
	return v.Kind == KindEpisode
}

// SearchTitle returns the text used for title search: the series name for
// episodes, the movie title otherwise.
func (v *Video) SearchTitle() string {
	if v.IsEpisode() {
		return v.Series
	}
	return v.Title
}

// FromPath builds a Video by parsing the file name for release metadata and,
// when the file exists and is large enough, computing the opensubtitles hash.
func FromPath(path string) (*Video, error) {
	name := filepath.Base(path)
	info, err := ptn.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse video name %q: %w", name, err)
	}

	v := &Video{
		Kind:         KindMovie,
		Name:         path,
		Title:        info.Title,
		Year:         info.Year,
		ReleaseGroup: info.Group,
		Resolution:   strings.ToLower(info.Resolution),
		Source:       info.Quality,
		VideoCodec:   info.Codec,
		AudioCodec:   info.Audio,
		Container:    info.Container,
		Hashes:       map[string]string{},
	}
	if info.Season != 0 || info.Episode != 0 {
		v.Kind = KindEpisode
		v.Series = info.Title
		v.Title = ""
		v.Season = info.Season
		v.Episode = info.Episode
	}

	if hash, err := hashFile(path); err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Str("path", path).Msg("Skipping file hash")
	} else {
		v.Hashes[HashOpenSubtitles] = hash
	}

	return v, nil
}

// hashFile computes the opensubtitles hash of the file at path.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash, err := moviehash.Sum(f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hash, nil
}
