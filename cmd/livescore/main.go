// Command livescore keeps one Sleeper roster's matchup score up to date.
//
// Usage:
//
//	livescore serve --league 1234567890 --roster 3
//	livescore watch --league 1234567890 --roster 3 --refresh 30
//	livescore once --league 1234567890 --roster 3
//	livescore rosters --league 1234567890 "coach dad"
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/livescore/internal/config"
)

func main() {
	if err := run(); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Missing settings: %v\nSet LEAGUE_ID and ROSTER_ID or pass --league and --roster.\n", cfgErr)
			os.Exit(1)
		}
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	return newRootCmd().Execute()
}
