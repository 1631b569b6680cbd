package preview

import "time"

// InputSource samples the controller. It is called once per tick.
type InputSource func() Input

// Runner adapts a Simulation to loop.Tickable. Each tick takes one input
// snapshot and runs one fixed step regardless of dt.
type Runner struct {
	sim     *Simulation
	input   InputSource
	running bool
}

func NewRunner(sim *Simulation, input InputSource) *Runner {
	return &Runner{sim: sim, input: input}
}

func (r *Runner) Start() { r.running = true }

func (r *Runner) Stop() { r.running = false }

func (r *Runner) Running() bool { return r.running }

func (r *Runner) Tick(time.Duration) {
	if !r.running {
		return
	}
	var in Input
	if r.input != nil {
		in = r.input()
	}
	r.sim.Step(in)
}

func (r *Runner) Simulation() *Simulation { return r.sim }
