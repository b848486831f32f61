package opensubtitlescom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/video"
)

func TestSearchTitles_FirstExactMatchWins(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","attributes":{"title":"Foo","year":2020}},
			{"id":"2","attributes":{"title":"Foo","year":2021}},
			{"id":"3","attributes":{"title":"Foo","year":2021}}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "Foo", Year: 2021}

	id, err := p.searchTitles(context.Background(), "Foo", v)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id != "2" {
		t.Errorf("Expected id 2 (first entry matching title and year), got %q", id)
	}
	if gotPath != "/search/movie" {
		t.Errorf("Expected /search/movie for a movie, got %q", gotPath)
	}
	if gotQuery != "Foo" {
		t.Errorf("Expected query=Foo, got %q", gotQuery)
	}
}

func TestSearchTitles_CaseInsensitiveTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"7","attributes":{"title":"FOO","year":2021}}]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "foo", Year: 2021}

	id, err := p.searchTitles(context.Background(), "foo", v)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id != "7" {
		t.Errorf("Expected id 7, got %q", id)
	}
}

func TestSearchTitles_YearAsString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"9","attributes":{"title":"Foo","year":"2021"}}]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "Foo", Year: 2021}

	id, err := p.searchTitles(context.Background(), "Foo", v)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id != "9" {
		t.Errorf("Expected id 9 with a string year, got %q", id)
	}
}

func TestSearchTitles_EpisodeUsesTVEndpoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindEpisode, Series: "Foo", Year: 2021}

	if _, err := p.searchTitles(context.Background(), "Foo", v); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotPath != "/search/tv" {
		t.Errorf("Expected /search/tv for an episode, got %q", gotPath)
	}
}

func TestSearchTitles_NoQualifyingEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","attributes":{"title":"Foo","year":2020}},
			{"id":"2","attributes":{"title":"Bar","year":2021}}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "Foo", Year: 2021}

	id, err := p.searchTitles(context.Background(), "Foo", v)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id != "" {
		t.Errorf("Expected no match, got %q", id)
	}
}

func TestSearchTitles_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "Foo", Year: 2021}

	id, err := p.searchTitles(context.Background(), "Foo", v)
	if err != nil {
		t.Fatalf("Expected parse failures to degrade to no match, got: %v", err)
	}
	if id != "" {
		t.Errorf("Expected no match, got %q", id)
	}
}

func TestSearchTitles_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	v := &video.Video{Kind: video.KindMovie, Title: "Foo", Year: 2021}

	_, err := p.searchTitles(context.Background(), "Foo", v)
	if !errors.Is(err, &apperrors.ErrBadStatus{}) {
		t.Errorf("Expected ErrBadStatus, got: %v", err)
	}
}
