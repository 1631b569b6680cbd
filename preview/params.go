package preview

import "github.com/jakecoffman/cp"

// Params holds the simulation constants. Coordinates are screen pixels
// with y growing downward; a cp.BB here uses B as its top edge and T as
// its bottom edge.
type Params struct {
	Impulse       float64
	Friction      float64
	Gravity       float64
	JumpVelocity  float64
	RunThreshold  float64
	TicksPerFrame int

	WorldWidth float64
	FloorY     float64
	Platform   cp.BB

	PlayerW float64
	PlayerH float64
	Spawn   cp.Vector
}

func DefaultParams() Params {
	return Params{
		Impulse:       1,
		Friction:      0.8,
		Gravity:       0.8,
		JumpVelocity:  -15,
		RunThreshold:  0.5,
		TicksPerFrame: 8,
		WorldWidth:    800,
		FloorY:        400,
		Platform:      cp.BB{L: 300, B: 280, R: 500, T: 300},
		PlayerW:       32,
		PlayerH:       48,
		Spawn:         cp.Vector{X: 100, Y: 100},
	}
}
