package models

import "time"

type SeasonType string

const (
	SeasonTypePre     SeasonType = "pre"
	SeasonTypeRegular SeasonType = "regular"
	SeasonTypePost    SeasonType = "post"
)

type ScoringPeriod struct {
	Week       int        `json:"week"`
	SeasonType SeasonType `json:"seasonType"`
	Season     string     `json:"season"`
}

type ViewModel struct {
	Period         ScoringPeriod `json:"period"`
	PeriodLabel    string        `json:"periodLabel"`
	SecondaryLabel string        `json:"secondaryLabel"`
	MyName         string        `json:"myName"`
	OpponentName   string        `json:"opponentName"`
	MyScore        string        `json:"myScore"`
	OpponentScore  string        `json:"opponentScore"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Status is the widget's indicator dot.
type Status string

const (
	StatusLive    Status = "live"
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusStale   Status = "stale"
)

type Snapshot struct {
	ViewModel     *ViewModel `json:"viewModel,omitempty"`
	Status        Status     `json:"status"`
	Error         string     `json:"error,omitempty"`
	NextRefreshIn int        `json:"nextRefreshIn"`
	LastSuccess   time.Time  `json:"lastSuccess,omitempty"`
	Stale         bool       `json:"stale"`
}

type RosterSummary struct {
	RosterID  int    `json:"rosterId"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName,omitempty"`
}
