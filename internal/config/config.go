package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "subfetch/1.0"

// DefaultServerURL is the versioned REST root of the opensubtitles.com API.
const DefaultServerURL = "https://www.opensubtitles.com/api/v1"

type Config struct {
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	ServerURL     string `mapstructure:"server_url"`
	UserAgent     string `mapstructure:"user_agent"`
	ClientTimeout string `mapstructure:"client_timeout"` // Go duration string like "10s", "1m", etc.
	UseHash       bool   `mapstructure:"use_hash"`       // Include the computed file hash in queries
	LogLevel      string `mapstructure:"log_level"`
	Metrics       struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SUBFETCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Standalone environment variables honoured outside the prefix
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("user_agent", "SUBFETCH_USER_AGENT", "USER_AGENT")

	viper.SetDefault("server_url", DefaultServerURL)
	viper.SetDefault("client_timeout", "10s")
	viper.SetDefault("use_hash", true)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.ServerURL == "" {
		config.ServerURL = DefaultServerURL
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
