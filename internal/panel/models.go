package panel

import (
	"html/template"
	"time"
)

// Outcome is the result of one panel invocation. Fragment is always set:
// either the rendered view or the error fragment.
type Outcome struct {
	Panel    string
	RunID    string
	Fragment template.HTML
	Err      error
	Started  time.Time
	Elapsed  time.Duration
}

// OK reports whether the panel rendered its view.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Status is the probe record of one panel at a point in time.
type Status struct {
	Panel     string        `json:"panel"`
	OK        bool          `json:"ok"`
	Reason    Reason        `json:"reason,omitempty"`
	Latency   time.Duration `json:"latencyNs"`
	Timestamp time.Time     `json:"timestamp"` // always UTC
}

// StatusFrom converts an outcome into a probe record.
func StatusFrom(o Outcome) Status {
	st := Status{
		Panel:     o.Panel,
		OK:        o.OK(),
		Latency:   o.Elapsed,
		Timestamp: o.Started.UTC(),
	}
	if !st.OK {
		st.Reason = ReasonOf(o.Err)
	}
	return st
}

// StatusStore is the contract the in-memory status store satisfies.
type StatusStore interface {
	Save(st Status)
	Latest() []Status
	History(panel string) ([]Status, error)
}
