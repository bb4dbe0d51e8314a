package fantasy

import (
	"context"

	"github.com/omarshaarawi/livescore/internal/api/sleeper"
	"github.com/omarshaarawi/livescore/internal/models"
)

// API is the league-facing view of the Sleeper endpoints the scoreboard
// needs.
type API struct {
	sleeperAPI *sleeper.API
}

func NewAPI(sleeperAPI *sleeper.API) *API {
	return &API{sleeperAPI: sleeperAPI}
}

// CurrentPeriod asks upstream for the current week every time it is called.
// Week rollover has to show up on the next poll, so nothing is cached here.
func (a *API) CurrentPeriod(ctx context.Context) (models.ScoringPeriod, error) {
	state, err := a.sleeperAPI.GetState(ctx)
	if err != nil {
		return models.ScoringPeriod{}, err
	}
	return models.ScoringPeriod{
		Week:       state.Week,
		SeasonType: models.SeasonType(state.SeasonType),
		Season:     state.Season,
	}, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	return a.sleeperAPI.GetMatchups(ctx, leagueID, week)
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return a.sleeperAPI.GetRosters(ctx, leagueID)
}

func (a *API) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	return a.sleeperAPI.GetUsers(ctx, leagueID)
}
