package preview

import "math"

// State is the animation state of the player. It is derived from physics
// every tick and cannot be set directly.
type State int

const (
	StateIdle State = iota
	StateRun
	StateJump
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRun:
		return "run"
	case StateJump:
		return "jump"
	default:
		return "unknown"
	}
}

// deriveState: airborne is jump; otherwise run above the speed threshold.
func deriveState(grounded bool, vx, runThreshold float64) State {
	if !grounded {
		return StateJump
	}
	if math.Abs(vx) > runThreshold {
		return StateRun
	}
	return StateIdle
}
