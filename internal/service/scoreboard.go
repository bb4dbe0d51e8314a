package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/livescore/internal/models"
)

const (
	myPlaceholder       = "Me"
	opponentPlaceholder = "Opponent"
)

// LeagueAPI is satisfied by *fantasy.API.
type LeagueAPI interface {
	CurrentPeriod(ctx context.Context) (models.ScoringPeriod, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetUsers(ctx context.Context, leagueID string) ([]models.User, error)
}

type ScoreboardService struct {
	api      LeagueAPI
	leagueID string
	rosterID int
	clock    clockwork.Clock
	logger   *slog.Logger
}

func NewScoreboardService(api LeagueAPI, leagueID string, rosterID int, clock clockwork.Clock, logger *slog.Logger) *ScoreboardService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreboardService{api: api, leagueID: leagueID, rosterID: rosterID, clock: clock, logger: logger}
}

// Scoreboard runs one full cycle for the configured league and roster.
func (s *ScoreboardService) Scoreboard(ctx context.Context) (models.ViewModel, error) {
	period, err := s.api.CurrentPeriod(ctx)
	if err != nil {
		return models.ViewModel{}, err
	}
	s.logger.Debug("Resolved scoring period", "week", period.Week, "season", period.Season, "season_type", period.SeasonType)
	return s.Aggregate(ctx, s.leagueID, s.rosterID, period)
}

// Aggregate fetches matchups, rosters and users together and joins them. The
// first failed fetch fails the whole call; no partial view model is built.
func (s *ScoreboardService) Aggregate(ctx context.Context, leagueID string, myRosterID int, period models.ScoringPeriod) (models.ViewModel, error) {
	var (
		matchups []models.MatchupEntry
		rosters  []models.Roster
		users    []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matchups, err = s.api.GetMatchups(gctx, leagueID, period.Week)
		return err
	})
	g.Go(func() error {
		var err error
		rosters, err = s.api.GetRosters(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.GetUsers(gctx, leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ViewModel{}, err
	}

	return BuildViewModel(period, matchups, rosters, users, myRosterID, s.clock.Now()), nil
}

// BuildViewModel is the pure join behind Aggregate.
func BuildViewModel(period models.ScoringPeriod, matchups []models.MatchupEntry, rosters []models.Roster, users []models.User, myRosterID int, now time.Time) models.ViewModel {
	rosterByID := indexRosters(rosters)
	usersByID := indexUsers(users)

	myEntry, hasMine := findEntry(matchups, myRosterID)
	var oppEntry models.MatchupEntry
	hasOpp := false
	if hasMine {
		oppEntry, hasOpp = findOpponent(matchups, myEntry)
	}

	vm := models.ViewModel{
		Period:         period,
		PeriodLabel:    fmt.Sprintf("Week %d", period.Week),
		SecondaryLabel: fmt.Sprintf("%s %s • Week %d", strings.ToUpper(string(period.SeasonType)), period.Season, period.Week),
		MyName:         myPlaceholder,
		OpponentName:   opponentPlaceholder,
		MyScore:        FormatPoints(0),
		OpponentScore:  FormatPoints(0),
		UpdatedAt:      now,
	}

	if roster, ok := rosterByID[myRosterID]; ok {
		vm.MyName = TeamName(roster, usersByID)
	}
	if hasMine {
		vm.MyScore = FormatPoints(myEntry.Points)
	}
	if hasOpp {
		vm.OpponentScore = FormatPoints(oppEntry.Points)
		if roster, ok := rosterByID[oppEntry.RosterID]; ok {
			vm.OpponentName = TeamName(roster, usersByID)
		}
	}

	return vm
}

func findEntry(matchups []models.MatchupEntry, rosterID int) (models.MatchupEntry, bool) {
	for _, m := range matchups {
		if m.RosterID == rosterID {
			return m, true
		}
	}
	return models.MatchupEntry{}, false
}

// findOpponent returns the first other entry sharing mine's matchup id. An
// unscheduled roster (null matchup id) has no opponent.
func findOpponent(matchups []models.MatchupEntry, mine models.MatchupEntry) (models.MatchupEntry, bool) {
	if mine.MatchupID == nil {
		return models.MatchupEntry{}, false
	}
	for _, m := range matchups {
		if m.RosterID == mine.RosterID || m.MatchupID == nil {
			continue
		}
		if *m.MatchupID == *mine.MatchupID {
			return m, true
		}
	}
	return models.MatchupEntry{}, false
}

// TeamName picks the roster's team name, then the owner's display name, then
// "Roster {id}".
func TeamName(roster models.Roster, usersByID map[string]models.User) string {
	if name := strings.TrimSpace(roster.Metadata.TeamName); name != "" {
		return name
	}
	if owner, ok := usersByID[roster.OwnerID]; ok && owner.DisplayName != "" {
		return owner.DisplayName
	}
	return fmt.Sprintf("Roster %d", roster.RosterID)
}

// FormatPoints rounds half up to the nearest tenth and always prints one
// decimal digit.
func FormatPoints(points float64) string {
	rounded := math.Floor(points*10+0.5) / 10
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

func indexRosters(rosters []models.Roster) map[int]models.Roster {
	byID := make(map[int]models.Roster, len(rosters))
	for _, r := range rosters {
		byID[r.RosterID] = r
	}
	return byID
}

func indexUsers(users []models.User) map[string]models.User {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}
	return byID
}
