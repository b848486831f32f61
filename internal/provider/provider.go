package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/language"
	"github.com/subfetch/subfetch/internal/models"
	"github.com/subfetch/subfetch/internal/video"
)

// Provider is a subtitle source: it searches for candidate subtitles
// matching a video and downloads the content of a chosen candidate.
//
// A provider moves through three states: uninitialized, authenticated
// (after a successful Initialize) and closed (after Terminate). Initialize
// is idempotent once authenticated. Providers are not safe for concurrent
// use; callers drive them sequentially.
type Provider interface {
	// Initialize authenticates with the remote service if needed.
	Initialize(ctx context.Context) error

	// Terminate releases the provider's resources.
	Terminate() error

	// ListSubtitles returns scored subtitle candidates for the video in the
	// requested languages. An empty slice means no candidates were found.
	ListSubtitles(ctx context.Context, v *video.Video, languages []language.Language) ([]*models.Subtitle, error)

	// DownloadSubtitle fetches the subtitle's text content and stores it on
	// the record.
	DownloadSubtitle(ctx context.Context, subtitle *models.Subtitle) error
}

// Factory is a constructor function that creates a Provider from config.
type Factory func(cfg *config.Config) (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register registers a provider factory under the given name.
// It panics if the name is already registered or the factory is nil.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic("provider: Register called with nil factory for " + name)
	}
	if _, exists := factories[name]; exists {
		panic("provider: Register called twice for " + name)
	}
	factories[name] = f
}

// New creates the named provider from config.
func New(name string, cfg *config.Config) (Provider, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown provider %q (registered: %v)", name, Names())
	}
	return f(cfg)
}

// Names returns the registered provider names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
