package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/livescore/internal/models"
)

func newRosterAPI() *fakeLeagueAPI {
	return &fakeLeagueAPI{
		rosters: []models.Roster{
			roster(3, "u3", ""),
			roster(1, "u1", "Gridiron Gang"),
			roster(2, "u2", "Touchdown Tyrants"),
		},
		users: []models.User{
			{UserID: "u1", DisplayName: "alice"},
			{UserID: "u2", DisplayName: "bob"},
			{UserID: "u3", DisplayName: "coachdad"},
		},
	}
}

func ids(summaries []models.RosterSummary) []int {
	out := make([]int, len(summaries))
	for i, s := range summaries {
		out[i] = s.RosterID
	}
	return out
}

func TestFindRosters_All(t *testing.T) {
	svc := NewScoreboardService(newRosterAPI(), "42", 0, nil, nil)

	got, err := svc.FindRosters(context.Background(), "42", "  ")
	require.NoError(t, err)

	assert.Equal(t, []models.RosterSummary{
		{RosterID: 1, Name: "Gridiron Gang", OwnerName: "alice"},
		{RosterID: 2, Name: "Touchdown Tyrants", OwnerName: "bob"},
		{RosterID: 3, Name: "coachdad", OwnerName: "coachdad"},
	}, got)
}

func TestFindRosters_Query(t *testing.T) {
	svc := NewScoreboardService(newRosterAPI(), "42", 0, nil, nil)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"exact team name", "Gridiron Gang", []int{1}},
		{"case-insensitive subsequence", "tyrants", []int{2}},
		{"owner name", "bob", []int{2}},
		{"typo within threshold", "coachdda", []int{3}},
		{"no match", "zzzzzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindRosters(context.Background(), "42", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFindRosters_SubsequenceRanksFirst(t *testing.T) {
	api := &fakeLeagueAPI{
		rosters: []models.Roster{
			roster(1, "", "Gange"),
			roster(2, "", "Gang"),
		},
	}
	svc := NewScoreboardService(api, "42", 0, nil, nil)

	got, err := svc.FindRosters(context.Background(), "42", "gang")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
}

func TestFindRosters_Error(t *testing.T) {
	api := newRosterAPI()
	api.usersErr = errors.New("boom")
	svc := NewScoreboardService(api, "42", 0, nil, nil)

	_, err := svc.FindRosters(context.Background(), "42", "")
	assert.EqualError(t, err, "boom")
}
