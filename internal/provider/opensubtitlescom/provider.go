package opensubtitlescom

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/subfetch/subfetch/internal/apperrors"
	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/provider"
	"github.com/subfetch/subfetch/internal/transport"
)

// Name is the provider's registry name and its key in video hash maps.
const Name = "opensubtitlescom"

// defaultTimeout is the fixed per-request ceiling for all API calls.
const defaultTimeout = 10 * time.Second

func init() {
	provider.Register(Name, func(cfg *config.Config) (provider.Provider, error) {
		return New(cfg)
	})
}

// Provider talks to the opensubtitles.com REST API. It owns one HTTP client
// and a bearer token cached after the first successful login. It is driven
// sequentially by a single caller.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	useHash    bool

	// token is non-empty only after a successful login. All authenticated
	// requests derive their Authorization header from it.
	token string

	// lastHash is the file hash extracted from the video on the most recent
	// query, when hash lookup is enabled.
	lastHash string
}

var _ provider.Provider = (*Provider)(nil)

// New creates a Provider from config. Username and password are required.
func New(cfg *config.Config) (*Provider, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, apperrors.NewConfigurationError("username and password must be specified")
	}

	timeout := defaultTimeout
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 10s")
		} else {
			timeout = parsedTimeout
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	baseURL := cfg.ServerURL
	if baseURL == "" {
		baseURL = config.DefaultServerURL
	}

	p := &Provider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		useHash:  cfg.UseHash,
	}

	// Clone DefaultTransport to preserve all its settings (timeouts,
	// connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	p.httpClient = &http.Client{
		Timeout:   timeout,
		Transport: transport.New(baseTransport, userAgent, func() string { return p.token }),
	}

	return p, nil
}

// Initialize logs in unless a token is already cached.
func (p *Provider) Initialize(ctx context.Context) error {
	if p.token != "" {
		return nil
	}
	return p.login(ctx)
}

// Terminate releases the provider's connections.
func (p *Provider) Terminate() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
