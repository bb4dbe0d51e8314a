package fantasy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/livescore/internal/api/sleeper"
	"github.com/omarshaarawi/livescore/internal/config"
	"github.com/omarshaarawi/livescore/internal/models"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := sleeper.NewClient(config.SleeperAPI{BaseURL: srv.URL, Timeout: time.Second}, nil, nil)
	return NewAPI(sleeper.NewAPI(client, "nfl"))
}

func TestCurrentPeriod(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"week": 3, "season_type": "post", "season": "2024"}`))
	})

	period, err := api.CurrentPeriod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ScoringPeriod{Week: 3, SeasonType: models.SeasonTypePost, Season: "2024"}, period)
}

func TestCurrentPeriod_NotCached(t *testing.T) {
	var calls atomic.Int32
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"week": 7, "season_type": "regular", "season": "2025"}`))
			return
		}
		w.Write([]byte(`{"week": 8, "season_type": "regular", "season": "2025"}`))
	})

	first, err := api.CurrentPeriod(context.Background())
	require.NoError(t, err)
	second, err := api.CurrentPeriod(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, first.Week)
	assert.Equal(t, 8, second.Week)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCurrentPeriod_UnknownSeasonTypePassesThrough(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"week": 1, "season_type": "off", "season": "2026"}`))
	})

	period, err := api.CurrentPeriod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SeasonType("off"), period.SeasonType)
}

func TestCurrentPeriod_Failure(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.CurrentPeriod(context.Background())
	var fetchErr *sleeper.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
}
