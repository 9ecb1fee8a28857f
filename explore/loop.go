package explore

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/vi-mandel/input"
	"github.com/lixenwraith/vi-mandel/render"
)

// Display is the surface the loop presents to and takes input from
type Display interface {
	Intents() <-chan input.Intent
	Present(buf *render.Buffer, status string) error
}

// Run is the cooperative interaction loop
// Each iteration handles at most one intent, runs at most one render pass, then presents if anything changed
// While a pass is owed the wait for input is bounded by the poll interval, otherwise it blocks
// Returns nil on quit, closed intents or cancelled context; a presentation failure is returned as an error
func (c *Controller) Run(ctx context.Context, d Display) error {
	intents := d.Intents()
	poll := time.NewTimer(c.settings.PollInterval)
	defer poll.Stop()

	dirty := true
	for {
		if dirty {
			if err := d.Present(c.renderer.Buffer(), c.StatusLine()); err != nil {
				return fmt.Errorf("present: %w", err)
			}
			dirty = false
		}

		var timeout <-chan time.Time
		if c.renderer.Pending() {
			poll.Reset(c.settings.PollInterval)
			timeout = poll.C
		}

		select {
		case <-ctx.Done():
			return nil
		case in, ok := <-intents:
			if !ok {
				return nil
			}
			if c.Handle(in) {
				dirty = true
			}
			if c.quit {
				return nil
			}
		case <-timeout:
		}

		if c.Step() {
			dirty = true
		}
	}
}
