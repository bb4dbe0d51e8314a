package service

import (
	"context"
	"sync"

	"github.com/omarshaarawi/livescore/internal/models"
)

type fakeLeagueAPI struct {
	mu sync.Mutex

	period   models.ScoringPeriod
	matchups []models.MatchupEntry
	rosters  []models.Roster
	users    []models.User

	periodErr   error
	matchupsErr error
	rostersErr  error
	usersErr    error

	matchupWeeks []int
}

func (f *fakeLeagueAPI) CurrentPeriod(ctx context.Context) (models.ScoringPeriod, error) {
	return f.period, f.periodErr
}

func (f *fakeLeagueAPI) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	f.mu.Lock()
	f.matchupWeeks = append(f.matchupWeeks, week)
	f.mu.Unlock()
	return f.matchups, f.matchupsErr
}

func (f *fakeLeagueAPI) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return f.rosters, f.rostersErr
}

func (f *fakeLeagueAPI) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	return f.users, f.usersErr
}

func matchupID(id int) *int {
	return &id
}

func roster(id int, owner, teamName string) models.Roster {
	return models.Roster{RosterID: id, OwnerID: owner, Metadata: models.RosterMetadata{TeamName: teamName}}
}
