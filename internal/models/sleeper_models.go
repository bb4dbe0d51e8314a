package models

type StateResponse struct {
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
	SeasonType  string `json:"season_type"`
	Season      string `json:"season"`
	Leg         int    `json:"leg"`
}

type MatchupEntry struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Metadata RosterMetadata `json:"metadata"`
}

type RosterMetadata struct {
	TeamName string `json:"team_name"`
}

type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}
