package workout

import "github.com/julianstephens/fivemin/internal/constants"

// Countdown is the get-ready timer shown before a session starts.
type Countdown struct {
	remaining int
	active    bool
	epoch     uint64
}

// Start arms the countdown with n seconds. Non-positive values use the default.
func (c *Countdown) Start(n int) {
	if n <= 0 {
		n = constants.DefaultCountdownSec
	}
	c.remaining = n
	c.active = true
	c.epoch++
}

// Tick removes one second and reports whether the countdown just finished.
func (c *Countdown) Tick() bool {
	if !c.active {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.active = false
		return true
	}
	return false
}

// Cancel stops the countdown without finishing it.
func (c *Countdown) Cancel() {
	c.active = false
	c.remaining = 0
	c.epoch++
}

func (c *Countdown) Remaining() int { return c.remaining }
func (c *Countdown) Active() bool   { return c.active }
func (c *Countdown) Epoch() uint64  { return c.epoch }

// Urgent reports whether few enough seconds remain to warn the user.
func Urgent(remaining int) bool {
	return remaining <= constants.UrgentThresholdSec
}
