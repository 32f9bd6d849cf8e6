package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Bar tracks completion of a fixed number of steps and renders a one-line
// indicator with percentage, current step and an ETA.
type Bar struct {
	mu      sync.Mutex
	total   int64
	current int64
	width   int
	message string
	step    string
	start   time.Time
	now     func() time.Time
}

// NewBar creates a bar of the given character width tracking total steps.
func NewBar(total int64, width int, message string) *Bar {
	return &Bar{
		total:   total,
		width:   width,
		message: message,
		start:   time.Now(),
		now:     time.Now,
	}
}

// Increment advances the bar by n steps, capped at the total.
func (b *Bar) Increment(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = min(b.current+n, b.total)
}

// SetStepMessage sets the description shown after the bar.
func (b *Bar) SetStepMessage(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.step = message
}

// Done reports whether every step has completed.
func (b *Bar) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current >= b.total
}

// String renders the bar.
func (b *Bar) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	percent := 1.0
	if b.total > 0 {
		percent = float64(b.current) / float64(b.total)
	}

	filled := int(percent * float64(b.width))
	bar := strings.Repeat("=", filled) + strings.Repeat("-", b.width-filled)
	elapsed := b.now().Sub(b.start)

	return fmt.Sprintf("%s [%s] %d/%d %.1f%% | %s | %s (ETA: %s)",
		b.message, bar, b.current, b.total, percent*100, b.step,
		elapsed.Round(time.Second), b.eta(elapsed))
}

// eta extrapolates the remaining time from the average step duration so far.
func (b *Bar) eta(elapsed time.Duration) string {
	if b.current == 0 {
		return "?"
	}

	perStep := elapsed / time.Duration(b.current)
	remaining := perStep * time.Duration(b.total-b.current)

	return remaining.Round(time.Second).String()
}
