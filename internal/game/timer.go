package game

// countdown is a cooperative tick timer. It is armed with a duration in
// ticks, decremented by the single update loop, and fires at most once.
// A cancelled countdown never fires, so nothing can run after teardown.
type countdown struct {
	remaining int
	armed     bool
}

// arm schedules the countdown to fire after the given number of ticks.
// Re-arming an active countdown restarts it.
func (c *countdown) arm(ticks int) {
	c.remaining = ticks
	c.armed = true
}

// cancel disarms the countdown. Safe to call repeatedly or when idle.
func (c *countdown) cancel() {
	c.armed = false
	c.remaining = 0
}

// tick advances one tick and reports whether the countdown fired on this
// tick. A fired countdown disarms itself.
func (c *countdown) tick() bool {
	if !c.armed {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.armed = false
	return true
}

// active reports whether the countdown is armed and pending.
func (c *countdown) active() bool { return c.armed }
