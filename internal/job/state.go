package job

// State is a stage of the job lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidated
	StateEncoded
	StateEmitted
	StateDone
	StateRejected
)

var stateNames = [...]string{"idle", "validated", "encoded", "emitted", "done", "rejected"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateRejected
}

// Transition is one recorded state change.
type Transition struct {
	From State `json:"from"`
	To   State `json:"to"`

	// Reason is set for transitions into StateRejected.
	Reason string `json:"reason,omitempty"`
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
