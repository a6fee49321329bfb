package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while the pipeline runs. The message can be
// replaced while it spins, so one spinner follows a run through its stages.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.Mutex
	message string
	width   int // longest message drawn, for clearing
}

// newSpinner creates a spinner on stderr that stops when ctx is cancelled.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{w: w, ctx: ctx, cancel: cancel, message: message, width: len(message)}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			s.draw(frame)
		}
	}
}

func (s *Spinner) draw(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	icon := styleSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
	fmt.Fprintf(s.w, "\r%s %s", icon, styleDim.Render(s.message))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.width = max(s.width, len(message))
}

// Stop ends the animation and clears the line. It waits for the drawing
// goroutine and may be called any number of times.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// Cancelled reports whether the spinner has stopped, either through Stop or
// because its parent context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Track reports pipeline stages on the spinner until the returned function
// is called. Hooks registered before Track keep receiving events.
func (s *Spinner) Track() (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(&stageHooks{PipelineHooks: prev, spin: s})
	return func() { observability.SetPipelineHooks(prev) }
}

// stageHooks forwards pipeline events and mirrors them on a spinner.
type stageHooks struct {
	observability.PipelineHooks
	spin *Spinner
}

func (h *stageHooks) OnMeasureStart(ctx context.Context, imageCount int) {
	h.spin.Update(fmt.Sprintf("Measuring %d image(s)...", imageCount))
	h.PipelineHooks.OnMeasureStart(ctx, imageCount)
}

func (h *stageHooks) OnLayoutStart(ctx context.Context, variant string) {
	h.spin.Update(fmt.Sprintf("Laying out %s...", variant))
	h.PipelineHooks.OnLayoutStart(ctx, variant)
}

func (h *stageHooks) OnRenderStart(ctx context.Context, variant string, formats []string) {
	h.spin.Update(fmt.Sprintf("Rendering %s as %s...", variant, strings.Join(formats, ", ")))
	h.PipelineHooks.OnRenderStart(ctx, variant, formats)
}
