package viewstate

import (
	"sync"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// UIState is the single presentation state active at a time.
type UIState int

const (
	Idle UIState = iota
	Loading
	ShowingResult
	ShowingError
)

func (s UIState) String() string {
	switch s {
	case Loading:
		return "loading"
	case ShowingResult:
		return "showing_result"
	case ShowingError:
		return "showing_error"
	default:
		return "idle"
	}
}

// MarshalText renders the state as its snake_case name.
func (s UIState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Panel names the area that should be scrolled into view.
type Panel string

const (
	PanelNone   Panel = ""
	PanelResult Panel = "result"
	PanelError  Panel = "error"
)

// Snapshot is an immutable copy of the view handed to renderers.
type Snapshot struct {
	State          UIState                    `json:"state"`
	Loading        bool                       `json:"loading"`
	InputsDisabled bool                       `json:"inputsDisabled"`
	Result         *forecast.ResultView       `json:"result,omitempty"`
	Prediction     *forecast.PredictionResult `json:"prediction,omitempty"`
	Error          string                     `json:"error,omitempty"`
	Health         forecast.ServiceHealth     `json:"health"`
	HealthLabel    string                     `json:"healthLabel"`
	HealthColor    string                     `json:"healthColor"`
	Focus          Panel                      `json:"focus,omitempty"`
	DefaultDate    string                     `json:"defaultDate,omitempty"`
	Revision       uint64                     `json:"revision"`
}

// ViewState holds the presentation state shared by the submission flow and the
// health monitor. Every operation is idempotent: repeating it with equivalent
// arguments leaves Revision unchanged and notifies nobody.
type ViewState struct {
	mu sync.Mutex

	loading       bool
	result        *forecast.PredictionResult
	resultVisible bool
	errMsg        string
	errVisible    bool
	health        forecast.ServiceHealth
	focus         Panel
	defaultDate   string
	revision      uint64

	subscribers map[int]chan Snapshot
	nextSubID   int
}

// New returns an idle view with Unknown health.
func New() *ViewState {
	return &ViewState{subscribers: make(map[int]chan Snapshot)}
}

// ShowLoading disables the inputs and shows the spinner.
func (v *ViewState) ShowLoading() {
	v.mutate(func() bool {
		if v.loading {
			return false
		}
		v.loading = true
		return true
	})
}

// ClearLoading re-enables the inputs and hides the spinner.
func (v *ViewState) ClearLoading() {
	v.mutate(func() bool {
		if !v.loading {
			return false
		}
		v.loading = false
		return true
	})
}

// ShowResult replaces the displayed result, hides the error panel and
// focuses the result panel.
func (v *ViewState) ShowResult(r forecast.PredictionResult) {
	v.mutate(func() bool {
		if v.resultVisible && v.result != nil && *v.result == r && !v.errVisible && v.focus == PanelResult {
			return false
		}
		copied := r
		v.result = &copied
		v.resultVisible = true
		v.errVisible = false
		v.errMsg = ""
		v.focus = PanelResult
		return true
	})
}

// ShowError displays message in the error panel, hides the result panel and
// focuses the error panel.
func (v *ViewState) ShowError(message string) {
	v.mutate(func() bool {
		if v.errVisible && v.errMsg == message && !v.resultVisible && v.focus == PanelError {
			return false
		}
		v.errMsg = message
		v.errVisible = true
		v.result = nil
		v.resultVisible = false
		v.focus = PanelError
		return true
	})
}

// ClearError hides the error panel.
func (v *ViewState) ClearError() {
	v.mutate(func() bool {
		if !v.errVisible {
			return false
		}
		v.errVisible = false
		v.errMsg = ""
		if v.focus == PanelError {
			v.focus = PanelNone
		}
		return true
	})
}

// SetHealth updates the status badge. Panels are never touched.
func (v *ViewState) SetHealth(h forecast.ServiceHealth) {
	v.mutate(func() bool {
		if v.health == h {
			return false
		}
		v.health = h
		return true
	})
}

// SetDefaults pre-fills the date field.
func (v *ViewState) SetDefaults(date string) {
	v.mutate(func() bool {
		if v.defaultDate == date {
			return false
		}
		v.defaultDate = date
		return true
	})
}

// Snapshot returns a copy of the current view.
func (v *ViewState) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest snapshot. Slow
// readers skip intermediate revisions. The current snapshot is delivered
// immediately. Call cancel to release the subscription.
func (v *ViewState) Subscribe() (<-chan Snapshot, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextSubID
	v.nextSubID++
	ch := make(chan Snapshot, 1)
	ch <- v.snapshotLocked()
	v.subscribers[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subscribers[id]; ok {
			delete(v.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (v *ViewState) mutate(apply func() bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !apply() {
		return
	}
	v.revision++
	snap := v.snapshotLocked()
	for _, ch := range v.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (v *ViewState) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:          v.stateLocked(),
		Loading:        v.loading,
		InputsDisabled: v.loading,
		Health:         v.health,
		HealthLabel:    v.health.Label(),
		HealthColor:    v.health.Color(),
		Focus:          v.focus,
		DefaultDate:    v.defaultDate,
		Revision:       v.revision,
	}
	if v.resultVisible && v.result != nil {
		raw := *v.result
		view := forecast.Present(raw)
		snap.Prediction = &raw
		snap.Result = &view
	}
	if v.errVisible {
		snap.Error = v.errMsg
	}
	return snap
}

func (v *ViewState) stateLocked() UIState {
	switch {
	case v.loading:
		return Loading
	case v.errVisible:
		return ShowingError
	case v.resultVisible:
		return ShowingResult
	default:
		return Idle
	}
}
