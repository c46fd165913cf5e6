package watch

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-timeline-export/internal/converter"
	"github.com/penwyp/go-timeline-export/internal/util"
)

// defaultDebounce batches change bursts before re-running a conversion.
const defaultDebounce = 2 * time.Second

// Session ties a converter to a file watcher, re-running the conversion
// whenever the input tree settles after a burst of changes.
type Session struct {
	converter *converter.Converter
	inputDir  string
	debounce  time.Duration
	out       io.Writer
}

func NewSession(conv *converter.Converter, inputDir string) *Session {
	return &Session{
		converter: conv,
		inputDir:  inputDir,
		debounce:  defaultDebounce,
		out:       os.Stdout,
	}
}

// Run performs one conversion, then keeps the output synchronized with the
// input tree until q, Esc, Ctrl+C or a termination signal arrives. Unlike a
// one-shot conversion, a failed rebuild keeps the session alive.
func (s *Session) Run() error {
	s.convert()

	fw, err := NewFileWatcher(s.inputDir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.inputDir, err)
	}
	defer fw.Close()

	var keyEvents <-chan KeyEvent
	kb, err := NewKeyboardReader()
	if err != nil {
		util.LogWarnf("Keyboard input unavailable: %v", err)
	} else {
		keyEvents = kb.Events()
		defer kb.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Fprintf(s.out, "Watching %s (press q to quit)\n", s.inputDir)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := 0

	for {
		select {
		case event := <-fw.Events():
			util.LogDebugf("Change detected: %s (%s)", event.Path, event.Operation)
			pending++
			timer.Reset(s.debounce)

		case <-timer.C:
			if pending > 0 {
				fmt.Fprintf(s.out, "%d change(s) detected, rebuilding...\n", pending)
				pending = 0
				s.convert()
			}

		case key := <-keyEvents:
			if key.Key == 'q' || key.Key == 'Q' || key.Key == 3 || key.Type == KeyEscape {
				fmt.Fprintln(s.out, "Stopping watch")
				return nil
			}

		case <-sigCh:
			fmt.Fprintln(s.out, "Stopping watch")
			return nil
		}
	}
}

func (s *Session) convert() {
	start := time.Now()
	if err := s.converter.Run(); err != nil {
		util.LogErrorf("Conversion failed: %v", err)
		fmt.Fprintf(s.out, "Conversion failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Output rebuilt in %v\n", time.Since(start).Round(time.Millisecond))
}
