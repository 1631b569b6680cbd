// Package preview runs the playable preview of a bound character: a
// fixed-step platformer simulation with a derived animation state.
package preview

import (
	"image"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/raster"
)

// Input is the controller state sampled once per tick.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Player is the simulated entity.
type Player struct {
	Pos        cp.Vector
	Vel        cp.Vector
	W, H       float64
	State      State
	FacingLeft bool
	Grounded   bool
	Frame      int
	FrameTimer int
}

// Bounds is the player's AABB.
func (p *Player) Bounds() cp.BB {
	return cp.BB{L: p.Pos.X, B: p.Pos.Y, R: p.Pos.X + p.W, T: p.Pos.Y + p.H}
}

// Simulation owns the world and the player and is advanced by Step.
type Simulation struct {
	params Params
	frames map[State]int
	player Player
	ticks  int
}

// NewSimulation creates a simulation. frames gives the frame count of each
// state's strip; missing or non-positive counts are treated as one frame.
func NewSimulation(params Params, frames map[State]int) *Simulation {
	s := &Simulation{
		params: params,
		frames: make(map[State]int, len(frames)),
	}
	for st, n := range frames {
		s.frames[st] = n
	}
	s.Reset()
	return s
}

// Reset puts the player back at the spawn point.
func (s *Simulation) Reset() {
	s.player = Player{
		Pos:   s.params.Spawn,
		W:     s.params.PlayerW,
		H:     s.params.PlayerH,
		State: StateJump,
	}
	s.ticks = 0
}

func (s *Simulation) Params() Params { return s.params }

// Ticks is the number of steps run since the last reset.
func (s *Simulation) Ticks() int { return s.ticks }

func (s *Simulation) frameCount(st State) int {
	if n := s.frames[st]; n > 0 {
		return n
	}
	return 1
}

// Step advances the world by one tick using the sampled input.
func (s *Simulation) Step(in Input) {
	p := &s.player
	prm := s.params

	if in.Left {
		p.Vel.X -= prm.Impulse
		p.FacingLeft = true
	}
	if in.Right {
		p.Vel.X += prm.Impulse
		p.FacingLeft = false
	}
	if in.Jump && p.Grounded {
		p.Vel.Y = prm.JumpVelocity
	}

	p.Vel.X *= prm.Friction
	p.Vel.Y += prm.Gravity
	p.Pos = p.Pos.Add(p.Vel)

	if prm.WorldWidth > 0 {
		p.Pos.X = common.Clamp(p.Pos.X, 0, max(prm.WorldWidth-p.W, 0))
	}

	s.collide()

	next := deriveState(p.Grounded, p.Vel.X, prm.RunThreshold)
	if next != p.State {
		p.State = next
		p.Frame = 0
		p.FrameTimer = 0
	}
	s.animate()
	s.ticks++
}

func (s *Simulation) collide() {
	p := &s.player
	prm := s.params
	p.Grounded = false

	if p.Vel.Y > 0 && overlaps(p.Bounds(), prm.Platform) {
		p.Pos.Y = prm.Platform.B - p.H
		p.Vel.Y = 0
		p.Grounded = true
	}
	if p.Pos.Y+p.H >= prm.FloorY {
		p.Pos.Y = prm.FloorY - p.H
		p.Vel.Y = 0
		p.Grounded = true
	}
}

func (s *Simulation) animate() {
	p := &s.player
	n := s.frameCount(p.State)
	p.FrameTimer++
	if p.FrameTimer >= max(s.params.TicksPerFrame, 1) {
		p.FrameTimer = 0
		p.Frame++
	}
	p.Frame = common.Wrap(p.Frame, n)
}

// overlaps is a strict AABB test; touching edges do not overlap.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

// View is a read-only projection of the simulation for rendering.
type View struct {
	X, Y, W, H float64
	State      State
	FacingLeft bool
	Grounded   bool
	Frame      int
	Platform   cp.BB
	FloorY     float64
}

// SourceRect returns the strip rectangle of the current frame.
func (v View) SourceRect(frameWidth, height int) image.Rectangle {
	return raster.FrameRect(v.Frame, frameWidth, height)
}

func (s *Simulation) View() View {
	p := s.player
	return View{
		X:          p.Pos.X,
		Y:          p.Pos.Y,
		W:          p.W,
		H:          p.H,
		State:      p.State,
		FacingLeft: p.FacingLeft,
		Grounded:   p.Grounded,
		Frame:      p.Frame,
		Platform:   s.params.Platform,
		FloorY:     s.params.FloorY,
	}
}

// Player returns a copy of the player state.
func (s *Simulation) Player() Player { return s.player }
