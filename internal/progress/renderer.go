package progress

import (
	"context"
	"fmt"
	"io"
	"time"
)

// RefreshInterval is how often the renderer redraws its bars.
const RefreshInterval = 100 * time.Millisecond

// Renderer redraws a set of bars in place on a terminal.
type Renderer struct {
	bars   []*Bar
	output io.Writer
	drawn  int
}

// NewRenderer creates a renderer writing to output.
func NewRenderer(output io.Writer, bars ...*Bar) *Renderer {
	return &Renderer{
		bars:   bars,
		output: output,
	}
}

// Run redraws the bars until the context is cancelled, then draws them once
// more so the final state stays on screen.
func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	for {
		r.draw()

		select {
		case <-ctx.Done():
			r.draw()
			return
		case <-ticker.C:
		}
	}
}

func (r *Renderer) draw() {
	// Move the cursor up over the previous frame and clear each line
	for range r.drawn {
		_, _ = fmt.Fprint(r.output, "\033[1A\033[K")
	}

	for _, bar := range r.bars {
		_, _ = fmt.Fprintln(r.output, bar.String())
	}

	r.drawn = len(r.bars)
}
