package widget

import "github.com/omarshaarawi/livescore/internal/models"

type Presenter interface {
	SetStatus(status models.Status)
	Render(vm models.ViewModel)
	RenderError(err error)
	Countdown(remaining int)
}

// Multi forwards every call to each presenter in order.
type Multi []Presenter

func (m Multi) SetStatus(status models.Status) {
	for _, p := range m {
		p.SetStatus(status)
	}
}

func (m Multi) Render(vm models.ViewModel) {
	for _, p := range m {
		p.Render(vm)
	}
}

func (m Multi) RenderError(err error) {
	for _, p := range m {
		p.RenderError(err)
	}
}

func (m Multi) Countdown(remaining int) {
	for _, p := range m {
		p.Countdown(remaining)
	}
}
