package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("LEAGUE_ID", "1180256426349682688")
	t.Setenv("ROSTER_ID", "3")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "1180256426349682688", cfg.Widget.LeagueID)
	assert.Equal(t, 3, cfg.Widget.RosterID)
	assert.Equal(t, DefaultRefreshSeconds, cfg.Widget.RefreshSeconds)
	assert.Equal(t, ThemeDark, cfg.Widget.Theme)
	assert.Equal(t, 4, cfg.Widget.StaleAfterCycles)
	assert.Equal(t, "https://api.sleeper.app/v1", cfg.SleeperAPI.BaseURL)
	assert.Equal(t, "nfl", cfg.SleeperAPI.Sport)
	assert.Equal(t, 10*time.Second, cfg.SleeperAPI.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel.Level())
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("THEME", "LIGHT")
	t.Setenv("REFRESH_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://obs.local,https://stream.local")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, cfg.Widget.Theme)
	assert.Equal(t, 30, cfg.Widget.RefreshSeconds)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel.Level())
	assert.Equal(t, []string{"https://obs.local", "https://stream.local"}, cfg.Server.CORSOrigins)
}

func TestNew_BadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := New()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		widget    Widget
		wantField string
		wantSecs  int
	}{
		{
			name:     "valid",
			widget:   Widget{LeagueID: "123", RosterID: 3, RefreshSeconds: 15},
			wantSecs: 15,
		},
		{
			name:     "refresh floored",
			widget:   Widget{LeagueID: "123", RosterID: 3, RefreshSeconds: 2},
			wantSecs: MinRefreshSeconds,
		},
		{
			name:      "missing league",
			widget:    Widget{LeagueID: "   ", RosterID: 3},
			wantField: "LEAGUE_ID",
		},
		{
			name:      "missing roster",
			widget:    Widget{LeagueID: "123"},
			wantField: "ROSTER_ID",
		},
		{
			name:      "negative roster",
			widget:    Widget{LeagueID: "123", RosterID: -2},
			wantField: "ROSTER_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Widget: tt.widget}
			err := cfg.Validate()

			if tt.wantField != "" {
				var cfgErr *ConfigurationError
				require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
				assert.Equal(t, tt.wantField, cfgErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecs, cfg.Widget.RefreshSeconds)
			assert.GreaterOrEqual(t, cfg.Widget.StaleAfterCycles, 1)
		})
	}
}

func TestValidate_TrimsLeague(t *testing.T) {
	cfg := &Config{Widget: Widget{LeagueID: " 123 ", RosterID: 1}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "123", cfg.Widget.LeagueID)
}

func TestValidateLeague_IgnoresRoster(t *testing.T) {
	cfg := &Config{Widget: Widget{LeagueID: "123"}}
	assert.NoError(t, cfg.ValidateLeague())

	cfg = &Config{}
	assert.Error(t, cfg.ValidateLeague())
}

func TestRefreshInterval(t *testing.T) {
	assert.Equal(t, 5*time.Second, Widget{RefreshSeconds: 0}.RefreshInterval())
	assert.Equal(t, 5*time.Second, Widget{RefreshSeconds: 5}.RefreshInterval())
	assert.Equal(t, 60*time.Second, Widget{RefreshSeconds: 60}.RefreshInterval())
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme(" Light "))
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeDark, ParseTheme("solarized"))
	assert.Equal(t, ThemeDark, ParseTheme(""))
}
