package memory

import (
	"sync"

	"github.com/omarshaarawi/livescore/internal/models"
)

// Repository keeps the latest scoreboard state for HTTP readers. It is a
// scheduler.Presenter, so the refresh loop writes to it directly.
type Repository struct {
	snapshot models.Snapshot
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{snapshot: models.Snapshot{Status: models.StatusLive}}
}

func (r *Repository) Snapshot() models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := r.snapshot
	if snap.ViewModel != nil {
		vm := *snap.ViewModel
		snap.ViewModel = &vm
	}
	return snap
}

func (r *Repository) SetStatus(status models.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot.Stale && status != models.StatusOK {
		return
	}
	r.snapshot.Status = status
}

func (r *Repository) Render(vm models.ViewModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.ViewModel = &vm
	r.snapshot.Error = ""
	r.snapshot.LastSuccess = vm.UpdatedAt
	r.snapshot.Stale = false
	r.snapshot.Status = models.StatusOK
}

// RenderError keeps the last good view model so readers still have scores
// to show next to the warning.
func (r *Repository) RenderError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Error = err.Error()
	r.snapshot.NextRefreshIn = 0
}

func (r *Repository) Countdown(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.NextRefreshIn = remaining
}

func (r *Repository) MarkStale(stale bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Stale = stale
	if stale {
		r.snapshot.Status = models.StatusStale
	}
}
