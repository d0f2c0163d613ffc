package animation

// Playback visits a list of coordinates in order. Each target is issued
// only after the previous one was reached and its dwell time passed.
type Playback struct {
	coords []Coord
	next   int // index of the next coordinate to issue
	dwell  float64

	arrived   bool
	held      float64
	exhausted bool
}

// Len returns the number of coordinates.
func (p *Playback) Len() int { return len(p.coords) }

// Current returns the index of the coordinate last issued, or -1.
func (p *Playback) Current() int { return p.next - 1 }

// Done reports whether the last coordinate was reached and held for the
// dwell time, or a skip ran past the end.
func (p *Playback) Done() bool {
	if p.exhausted || len(p.coords) == 0 {
		return true
	}
	return p.next >= len(p.coords) && p.arrived && p.held >= p.dwell
}

// Exhausted reports whether a skip was requested with nothing left to show.
func (p *Playback) Exhausted() bool { return p.exhausted }

func (p *Playback) issue(c *Controller) {
	if p.next >= len(p.coords) {
		return
	}
	c.FocusOn(p.coords[p.next])
	p.next++
	p.arrived = false
	p.held = 0
}

func (p *Playback) step(c *Controller, dt float64) {
	if p.exhausted || p.next == 0 || c.Flying() {
		return
	}
	// The arrival tick counts towards the dwell.
	p.arrived = true
	p.held += dt
	if p.held < p.dwell {
		return
	}
	p.issue(c)
}

// skip issues the next coordinate immediately, even while the current one
// is still in flight.
func (p *Playback) skip(c *Controller) {
	if p.next >= len(p.coords) {
		p.exhausted = true
		return
	}
	p.issue(c)
}
