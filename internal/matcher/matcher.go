package matcher

import (
	"regexp"
	"sort"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"

	"github.com/subfetch/subfetch/internal/video"
)

// MatchSet holds the tags denoting which video attributes a subtitle's
// metadata agrees with.
type MatchSet map[string]struct{}

// NewMatchSet creates a MatchSet containing the given tags.
func NewMatchSet(tags ...string) MatchSet {
	m := make(MatchSet, len(tags))
	for _, tag := range tags {
		m.Add(tag)
	}
	return m
}

// Add inserts a tag into the set.
func (m MatchSet) Add(tag string) {
	m[tag] = struct{}{}
}

// Has reports whether the tag is present.
func (m MatchSet) Has(tag string) bool {
	_, ok := m[tag]
	return ok
}

// Union merges the other set into this one.
func (m MatchSet) Union(other MatchSet) {
	for tag := range other {
		m[tag] = struct{}{}
	}
}

// Tags returns the tags in sorted order.
func (m MatchSet) Tags() []string {
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var (
	bracketedTag  = regexp.MustCompile(`\[\w+\]`)
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	punctuation   = regexp.MustCompile(`[^a-z0-9]+`)
)

// equivalentGroups lists release groups known to share rips.
var equivalentGroups = [][]string{
	{"lol", "dimension"},
	{"asap", "immerse", "fleet"},
	{"avs", "sva"},
}

// SanitizeReleaseGroup normalizes a release group name by dropping bracketed
// tags, surrounding whitespace and case.
func SanitizeReleaseGroup(name string) string {
	return strings.ToLower(strings.TrimSpace(bracketedTag.ReplaceAllString(name, "")))
}

// EquivalentReleaseGroups returns the sanitized group together with every
// group known to be equivalent to it.
func EquivalentReleaseGroups(group string) []string {
	for _, set := range equivalentGroups {
		for _, g := range set {
			if g == group {
				return set
			}
		}
	}
	return []string{group}
}

// SanitizeTitle normalizes a title for comparison: parenthesized content is
// dropped and everything but letters and digits collapses to single spaces.
func SanitizeTitle(title string) string {
	s := strings.ToLower(parenthesized.ReplaceAllString(title, ""))
	s = punctuation.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// titlesEqual compares two titles after sanitizing both sides.
func titlesEqual(a, b string) bool {
	return a != "" && b != "" && SanitizeTitle(a) == SanitizeTitle(b)
}

// alnumFold lowercases and strips separators so "WEB-DL" equals "WebDL" and
// "Blu-ray" equals "BluRay".
func alnumFold(s string) string {
	return punctuation.ReplaceAllString(strings.ToLower(s), "")
}

// GuessMatches infers additional matches by parsing structured fields out of
// the free-text release string and comparing them to the video's metadata.
func GuessMatches(v *video.Video, release string) MatchSet {
	matches := make(MatchSet)
	if release == "" {
		return matches
	}

	info, err := ptn.Parse(release)
	if err != nil {
		return matches
	}

	if v.IsEpisode() {
		if titlesEqual(info.Title, v.Series) {
			matches.Add("series")
		}
		if info.Season != 0 && info.Season == v.Season {
			matches.Add("season")
		}
		if info.Episode != 0 && info.Episode == v.Episode {
			matches.Add("episode")
		}
	} else {
		if titlesEqual(info.Title, v.Title) {
			matches.Add("title")
		}
	}

	if info.Year != 0 && info.Year == v.Year {
		matches.Add("year")
	}
	if info.Resolution != "" && strings.EqualFold(info.Resolution, v.Resolution) {
		matches.Add("resolution")
	}
	if info.Quality != "" && v.Source != "" && alnumFold(info.Quality) == alnumFold(v.Source) {
		matches.Add("source")
	}
	if info.Codec != "" && v.VideoCodec != "" && alnumFold(info.Codec) == alnumFold(v.VideoCodec) {
		matches.Add("video_codec")
	}
	if info.Audio != "" && v.AudioCodec != "" && alnumFold(info.Audio) == alnumFold(v.AudioCodec) {
		matches.Add("audio_codec")
	}
	if info.Container != "" && strings.EqualFold(info.Container, v.Container) {
		matches.Add("container")
	}
	if info.Group != "" && v.ReleaseGroup != "" &&
		SanitizeReleaseGroup(info.Group) == SanitizeReleaseGroup(v.ReleaseGroup) {
		matches.Add("release_group")
	}

	return matches
}
