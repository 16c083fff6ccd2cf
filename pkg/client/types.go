package client

// Result mirrors the control server's lifecycle result payload.
type Result struct {
	State string `json:"state"`
	PID   int    `json:"pid,omitempty"`
	Msg   string `json:"msg,omitempty"`
}

// WaitStatus mirrors the advisory polling parameters.
type WaitStatus struct {
	Step   int64 `json:"step"` // nanoseconds
	Trials int   `json:"trials"`
}

// TimeoutsResponse is the /timeouts payload.
type TimeoutsResponse struct {
	Start WaitStatus `json:"start"`
	Stop  WaitStatus `json:"stop"`
}

// CommandsResponse is the /commands payload.
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// ErrorResponse is the error payload returned for non-200 responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
