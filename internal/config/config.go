package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultRefreshSeconds = 15
	MinRefreshSeconds     = 5
)

type Config struct {
	Widget     Widget
	SleeperAPI SleeperAPI
	Server     Server
	LogLevel   LogLevel `envconfig:"LOG_LEVEL" default:"info"`
}

type Widget struct {
	LeagueID         string `envconfig:"LEAGUE_ID"`
	RosterID         int    `envconfig:"ROSTER_ID"`
	RefreshSeconds   int    `envconfig:"REFRESH_SECONDS" default:"15"`
	Theme            Theme  `envconfig:"THEME" default:"dark"`
	StaleAfterCycles int    `envconfig:"STALE_AFTER_CYCLES" default:"4"`
}

type SleeperAPI struct {
	BaseURL           string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Sport             string        `envconfig:"SLEEPER_SPORT" default:"nfl"`
	Timeout           time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"10s"`
	RequestsPerMinute int           `envconfig:"SLEEPER_REQUESTS_PER_MINUTE" default:"600"`
}

type Server struct {
	Addr        string   `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// ConfigurationError reports a missing or invalid startup setting. It is
// fatal: the refresh loop never starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Decode implements envconfig.Decoder. Anything other than "light" is dark.
func (t *Theme) Decode(value string) error {
	*t = ParseTheme(value)
	return nil
}

func ParseTheme(value string) Theme {
	if strings.EqualFold(strings.TrimSpace(value), string(ThemeLight)) {
		return ThemeLight
	}
	return ThemeDark
}

type LogLevel slog.Level

func (l *LogLevel) Decode(value string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return fmt.Errorf("parsing log level %q: %w", value, err)
	}
	*l = LogLevel(lvl)
	return nil
}

func (l LogLevel) Level() slog.Level {
	return slog.Level(l)
}

// New reads the environment. Call Validate once command-line overrides
// have been applied.
func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the required widget settings and applies the refresh
// floor.
func (c *Config) Validate() error {
	c.Widget.LeagueID = strings.TrimSpace(c.Widget.LeagueID)
	if c.Widget.LeagueID == "" {
		return &ConfigurationError{Field: "LEAGUE_ID", Reason: "is required"}
	}
	if c.Widget.RosterID <= 0 {
		return &ConfigurationError{Field: "ROSTER_ID", Reason: "must be a positive integer"}
	}
	c.Widget.RefreshSeconds = FloorRefresh(c.Widget.RefreshSeconds)
	if c.Widget.StaleAfterCycles < 1 {
		c.Widget.StaleAfterCycles = 1
	}
	return nil
}

// ValidateLeague is the weaker check used by commands that only need a
// league, such as the roster finder.
func (c *Config) ValidateLeague() error {
	c.Widget.LeagueID = strings.TrimSpace(c.Widget.LeagueID)
	if c.Widget.LeagueID == "" {
		return &ConfigurationError{Field: "LEAGUE_ID", Reason: "is required"}
	}
	return nil
}

func FloorRefresh(seconds int) int {
	return max(MinRefreshSeconds, seconds)
}

func (w Widget) RefreshInterval() time.Duration {
	return time.Duration(FloorRefresh(w.RefreshSeconds)) * time.Second
}
