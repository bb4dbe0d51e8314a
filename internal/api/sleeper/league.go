package sleeper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omarshaarawi/livescore/internal/models"
)

const (
	ResourceState    = "state"
	ResourceMatchups = "matchups"
	ResourceRosters  = "rosters"
	ResourceUsers    = "users"
)

type API struct {
	client *Client
	sport  string
}

func NewAPI(client *Client, sport string) *API {
	if sport == "" {
		sport = "nfl"
	}
	return &API{client: client, sport: sport}
}

func (a *API) GetState(ctx context.Context) (models.StateResponse, error) {
	var state models.StateResponse
	endpoint := fmt.Sprintf("/state/%s", url.PathEscape(a.sport))
	if err := a.client.Get(ctx, ResourceState, endpoint, &state); err != nil {
		return models.StateResponse{}, err
	}
	return state, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	var matchups []models.MatchupEntry
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", url.PathEscape(leagueID), week)
	if err := a.client.Get(ctx, ResourceMatchups, endpoint, &matchups); err != nil {
		return nil, err
	}
	return matchups, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	endpoint := fmt.Sprintf("/league/%s/rosters", url.PathEscape(leagueID))
	if err := a.client.Get(ctx, ResourceRosters, endpoint, &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

func (a *API) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	endpoint := fmt.Sprintf("/league/%s/users", url.PathEscape(leagueID))
	if err := a.client.Get(ctx, ResourceUsers, endpoint, &users); err != nil {
		return nil, err
	}
	return users, nil
}
