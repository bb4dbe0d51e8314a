package widget

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/omarshaarawi/livescore/internal/models"
)

// Terminal prints the scoreboard for the watch and once commands.
type Terminal struct {
	out    io.Writer
	status models.Status
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, status: models.StatusLive}
}

func (t *Terminal) SetStatus(status models.Status) {
	t.status = status
}

func (t *Terminal) Render(vm models.ViewModel) {
	fmt.Fprintf(t.out, "\n%s %s  %s\n", t.dot(), vm.PeriodLabel, vm.SecondaryLabel)
	width := max(len(vm.MyName), len(vm.OpponentName))
	fmt.Fprintf(t.out, "  %-*s  %6s\n", width, vm.MyName, vm.MyScore)
	fmt.Fprintf(t.out, "  %-*s  %6s\n", width, vm.OpponentName, vm.OpponentScore)
	fmt.Fprintf(t.out, "  Updated %s\n", vm.UpdatedAt.Local().Format("15:04"))
}

func (t *Terminal) RenderError(err error) {
	fmt.Fprintf(t.out, "\n%s Error loading scores: %v\n", t.dot(), err)
}

func (t *Terminal) Countdown(remaining int) {
	fmt.Fprintf(t.out, "\r⟳ %ds ", remaining)
}

func (t *Terminal) dot() string {
	switch t.status {
	case models.StatusWarning:
		return color.New(color.FgYellow).Sprint("●")
	case models.StatusStale:
		return color.New(color.FgRed).Sprint("●")
	default:
		return color.New(color.FgGreen).Sprint("●")
	}
}
