package matcher

import (
	"reflect"
	"testing"

	"github.com/subfetch/subfetch/internal/video"
)

func TestMatchSet_Basics(t *testing.T) {
	m := NewMatchSet("year", "series")
	if !m.Has("year") || !m.Has("series") {
		t.Errorf("Expected year and series in %v", m.Tags())
	}
	if m.Has("title") {
		t.Error("Did not expect title")
	}

	m.Union(NewMatchSet("season", "year"))
	want := []string{"season", "series", "year"}
	if got := m.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected tags %v, got %v", want, got)
	}
}

func TestSanitizeReleaseGroup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "DIMENSION", "dimension"},
		{"bracketed tag", "[eztv]LOL", "lol"},
		{"whitespace", "  SPARKS ", "sparks"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeReleaseGroup(tt.input); got != tt.want {
				t.Errorf("SanitizeReleaseGroup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEquivalentReleaseGroups(t *testing.T) {
	groups := EquivalentReleaseGroups("lol")
	found := false
	for _, g := range groups {
		if g == "dimension" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected dimension among equivalents of lol, got %v", groups)
	}

	solo := EquivalentReleaseGroups("sparks")
	if len(solo) != 1 || solo[0] != "sparks" {
		t.Errorf("Expected unknown group to map to itself, got %v", solo)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Matrix (1999)", "the matrix"},
		{"Game.of.Thrones", "game of thrones"},
		{"Marvel's Agents of S.H.I.E.L.D.", "marvel s agents of s h i e l d"},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.input); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGuessMatches_Movie(t *testing.T) {
	v := &video.Video{
		Kind:         video.KindMovie,
		Title:        "The Matrix",
		Year:         1999,
		Resolution:   "1080p",
		ReleaseGroup: "SPARKS",
	}

	matches := GuessMatches(v, "The.Matrix.1999.1080p.BluRay.x264-SPARKS")

	for _, tag := range []string{"title", "year", "resolution", "release_group"} {
		if !matches.Has(tag) {
			t.Errorf("Expected %q in matches, got %v", tag, matches.Tags())
		}
	}
	if matches.Has("series") {
		t.Error("Did not expect series for a movie")
	}
}

func TestGuessMatches_Episode(t *testing.T) {
	v := &video.Video{
		Kind:       video.KindEpisode,
		Series:     "Game of Thrones",
		Season:     1,
		Episode:    1,
		Resolution: "720p",
	}

	matches := GuessMatches(v, "Game.of.Thrones.S01E01.720p.HDTV.x264-CTU")

	for _, tag := range []string{"series", "season", "episode", "resolution"} {
		if !matches.Has(tag) {
			t.Errorf("Expected %q in matches, got %v", tag, matches.Tags())
		}
	}
}

func TestGuessMatches_EmptyRelease(t *testing.T) {
	v := &video.Video{Kind: video.KindMovie, Title: "The Matrix"}
	if matches := GuessMatches(v, ""); len(matches) != 0 {
		t.Errorf("Expected no matches for empty release, got %v", matches.Tags())
	}
}

func TestGuessMatches_NoAgreement(t *testing.T) {
	v := &video.Video{
		Kind:       video.KindMovie,
		Title:      "The Matrix",
		Year:       1999,
		Resolution: "1080p",
	}

	matches := GuessMatches(v, "Inception.2010.720p.BluRay.x264-REFINED")

	for _, tag := range []string{"title", "year", "resolution"} {
		if matches.Has(tag) {
			t.Errorf("Did not expect %q in matches %v", tag, matches.Tags())
		}
	}
}
