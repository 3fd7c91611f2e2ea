package geofence

// TransitionKind is the boundary crossing kind reported by the monitor.
type TransitionKind string

const (
	TransitionEnter TransitionKind = "ENTER"
	TransitionDwell TransitionKind = "DWELL"
	TransitionExit  TransitionKind = "EXIT"
)

// Transition is one triggered region within an event.
type Transition struct {
	RequestID string         `json:"request_id"`
	Kind      TransitionKind `json:"kind"`
}

// Event is the transition delivery from the monitor daemon. A non-empty
// ErrorCode means the whole event is an error report and carries no usable
// transitions.
type Event struct {
	Transitions []Transition `json:"transitions"`
	ErrorCode   string       `json:"error,omitempty"`
}
