package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/livescore/internal/models"
)

func TestRepository_Lifecycle(t *testing.T) {
	repo := NewRepository()
	assert.Equal(t, models.StatusLive, repo.Snapshot().Status)
	assert.Nil(t, repo.Snapshot().ViewModel)

	updated := time.Date(2025, 10, 19, 17, 0, 0, 0, time.UTC)
	repo.Render(models.ViewModel{MyScore: "87.3", UpdatedAt: updated})
	repo.Countdown(15)

	snap := repo.Snapshot()
	require.NotNil(t, snap.ViewModel)
	assert.Equal(t, "87.3", snap.ViewModel.MyScore)
	assert.Equal(t, models.StatusOK, snap.Status)
	assert.Equal(t, updated, snap.LastSuccess)
	assert.Equal(t, 15, snap.NextRefreshIn)

	repo.SetStatus(models.StatusWarning)
	repo.RenderError(errors.New("HTTP 503"))

	snap = repo.Snapshot()
	require.NotNil(t, snap.ViewModel, "last good scores are kept")
	assert.Equal(t, "87.3", snap.ViewModel.MyScore)
	assert.Equal(t, models.StatusWarning, snap.Status)
	assert.Equal(t, "HTTP 503", snap.Error)
	assert.Zero(t, snap.NextRefreshIn)

	repo.Render(models.ViewModel{MyScore: "90.0", UpdatedAt: updated.Add(time.Minute)})
	assert.Empty(t, repo.Snapshot().Error)
}

func TestRepository_StaleIsSticky(t *testing.T) {
	repo := NewRepository()
	repo.MarkStale(true)

	repo.SetStatus(models.StatusLive)
	repo.SetStatus(models.StatusWarning)
	assert.Equal(t, models.StatusStale, repo.Snapshot().Status)

	repo.Render(models.ViewModel{UpdatedAt: time.Now()})
	snap := repo.Snapshot()
	assert.False(t, snap.Stale)
	assert.Equal(t, models.StatusOK, snap.Status)
}

func TestRepository_SnapshotIsACopy(t *testing.T) {
	repo := NewRepository()
	repo.Render(models.ViewModel{MyName: "Gang"})

	snap := repo.Snapshot()
	snap.ViewModel.MyName = "mutated"
	assert.Equal(t, "Gang", repo.Snapshot().ViewModel.MyName)
}
