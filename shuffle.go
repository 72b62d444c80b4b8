package carpenter

import "math/rand/v2"

// Shuffler periodically reconfigures a cupboard with random bay, shelf and
// door amounts that fit its current size. It is driven by Scene.Tick and
// never interrupts a drag.
type Shuffler struct {
	cupboard *Cupboard
	interval float64
	elapsed  float64
	rng      *rand.Rand

	// Shuffles counts applied reconfigurations.
	Shuffles int
}

// maxShuffleAmount caps every randomly picked amount.
const maxShuffleAmount = 6

// NewShuffler creates a shuffler firing every interval seconds. The same
// seed always yields the same sequence.
func NewShuffler(c *Cupboard, interval float64, seed uint64) *Shuffler {
	return &Shuffler{
		cupboard: c,
		interval: interval,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Step implements Stepper.
func (sh *Shuffler) Step(dt float64) {
	if sh.interval <= 0 {
		return
	}
	sh.elapsed += dt
	if sh.elapsed < sh.interval {
		return
	}
	sh.elapsed -= sh.interval
	if sh.cupboard.Dragging() {
		return
	}
	sh.Shuffle()
}

// Shuffle applies one random reconfiguration now. Shuffles only counts
// rounds where at least one rebuild succeeded.
func (sh *Shuffler) Shuffle() {
	c := sh.cupboard
	bays, doors := c.bays, c.doors

	applied := false
	if n := sh.pick(bays.Size()[bays.direction], bays.thickness+bays.minSize, 1); n > 0 {
		applied = sh.apply(n, c.SetBayAmount) || applied
	}
	if n := sh.pick(bays.Size()[AxisY], bays.thickness+bays.minSize, 0); n >= 0 {
		applied = sh.apply(n, c.SetShelfAmount) || applied
	}
	if n := sh.pick(doors.Size()[doors.direction], doors.thickness+doors.minSize, 1); n > 0 {
		applied = sh.apply(n, c.SetDoorAmount) || applied
	}
	if applied {
		sh.Shuffles++
	}
}

// apply runs one rebuild and logs a failure when the attached scene is in
// debug mode.
func (sh *Shuffler) apply(n int, set func(int) error) bool {
	if err := set(n); err != nil {
		if s := sh.cupboard.scene; s != nil && s.debug {
			s.debugf("shuffle: %v", err)
		}
		return false
	}
	return true
}

// pick returns a random amount in [least, fit] where fit is how many
// sections of floor fit into extent, or -1 when not even least fits.
func (sh *Shuffler) pick(extent, floor float64, least int) int {
	fit := maxShuffleAmount
	if floor > 0 {
		fit = min(fit, int(extent/floor))
	}
	if fit < least {
		return -1
	}
	return least + sh.rng.IntN(fit-least+1)
}
