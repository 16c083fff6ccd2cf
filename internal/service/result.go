package service

import "strconv"

// State enumerates the outcome kinds a lifecycle operation can report.
type State int

const (
	StateNotRunning State = iota
	StateRunning
	StateBroken
	StateStarting
	StateStopping
	StateReloaded
)

func (s State) String() string {
	switch s {
	case StateNotRunning:
		return "not running"
	case StateRunning:
		return "running"
	case StateBroken:
		return "broken"
	case StateStarting:
		return "starting"
	case StateStopping:
		return "stopping"
	case StateReloaded:
		return "reloaded"
	default:
		return "unknown"
	}
}

// Result is the value every lifecycle operation returns to the host.
// PID is set only for StateRunning. Msg carries optional diagnostic text
// such as captured launcher stderr.
type Result struct {
	State State  `json:"state"`
	PID   int    `json:"pid,omitempty"`
	Msg   string `json:"msg,omitempty"`
}

func (r Result) String() string {
	s := r.State.String()
	if r.State == StateRunning && r.PID > 0 {
		s += " (pid " + strconv.Itoa(r.PID) + ")"
	}
	if r.Msg != "" {
		s += ": " + r.Msg
	}
	return s
}
