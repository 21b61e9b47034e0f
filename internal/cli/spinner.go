package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a stderr activity indicator for long computations. The displayed
// phase can be swapped while the spinner runs, so multi-stage operations show
// where they are ("optimizing family 3: 41 chains") instead of a static
// message. All methods are safe for concurrent use.
type Spinner struct {
	mu       sync.Mutex
	phase    string
	maxWidth int // widest phase rendered, for clean line clearing

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	stop   sync.Once
}

// newSpinnerWithContext creates a spinner showing phase that stops when the
// given context is cancelled.
func newSpinnerWithContext(ctx context.Context, phase string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		phase:    phase,
		maxWidth: len(phase),
		parent:   ctx,
		ctx:      sctx,
		cancel:   cancel,
	}
}

// Start begins the animation on its own goroutine.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.render(spinnerFrames[frame%len(spinnerFrames)])
				frame++
			}
		}
	}()
}

// SetPhase replaces the displayed phase on the next frame.
func (s *Spinner) SetPhase(format string, args ...any) {
	phase := fmt.Sprintf(format, args...)
	s.mu.Lock()
	s.phase = phase
	if len(phase) > s.maxWidth {
		s.maxWidth = len(phase)
	}
	s.mu.Unlock()
}

// Stop halts the animation, clears the line, and waits for the animation
// goroutine to exit. Safe to call more than once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the surrounding operation was cancelled, as
// opposed to the spinner being stopped after normal completion.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.phase))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.maxWidth+4))
}
