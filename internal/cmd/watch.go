package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
)

// Watch prints controller activity until interrupted.
type Watch struct {
	Duration time.Duration `help:"Stop after this long; 0 runs until interrupted" default:"0s" env:"GEFPAD_WATCH_DURATION"`
	Axes     bool          `help:"Also log stick and trigger changes" env:"GEFPAD_WATCH_AXES"`
}

// poller is the part of a registry the polling loops need.
type poller interface {
	UpdateAll() []error
	States() []input.ControllerState
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger, in *InputOptions, drv *Drivers) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if w.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Duration)
		defer cancel()
	}

	reg, closeFn, err := drv.openRegistry(in, logger, rawLogger)
	if err != nil {
		return err
	}
	defer closeFn()

	var live io.Writer
	if term.IsTerminal(int(os.Stdout.Fd())) {
		live = os.Stdout
	}
	watcher := &watcher{logger: logger, axes: w.Axes, live: live}
	watcher.loop(ctx, reg, pollInterval(in))
	if live != nil {
		fmt.Fprintln(live)
	}
	return nil
}

type watcher struct {
	logger *slog.Logger
	axes   bool
	// live receives a redrawn status line per poll when attached to a
	// terminal.
	live io.Writer

	lastErr  []string
	lastAxes []string
}

func (w *watcher) loop(ctx context.Context, p poller, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.step(p)
		}
	}
}

func (w *watcher) step(p poller) {
	errs := p.UpdateAll()
	states := p.States()
	if len(w.lastErr) != len(errs) {
		w.lastErr = make([]string, len(errs))
		w.lastAxes = make([]string, len(errs))
	}

	for slot, err := range errs {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		if msg != w.lastErr[slot] {
			if err != nil {
				w.logger.Warn("Controller poll failed", "slot", slot, "error", err)
			} else {
				w.logger.Info("Controller poll recovered", "slot", slot)
			}
			w.lastErr[slot] = msg
		}
	}

	for slot, st := range states {
		if slot < len(errs) && errs[slot] != nil {
			continue
		}
		if pressed, released := st.Pressed(), st.Released(); pressed != 0 || released != 0 {
			w.logger.Info("Buttons", "slot", slot, "pressed", pressed, "released", released, "down", st.Down)
		}
		if w.axes {
			if a := formatAxes(st); a != w.lastAxes[slot] {
				w.logger.Info("Axes", "slot", slot, "values", a)
				w.lastAxes[slot] = a
			}
		}
	}

	if w.live != nil && len(states) > 0 {
		parts := make([]string, len(states))
		for slot, st := range states {
			parts[slot] = fmt.Sprintf("[%d] %s", slot, formatAxes(st))
		}
		fmt.Fprintf(w.live, "\r%s\033[K", strings.Join(parts, "  "))
	}
}

func formatAxes(st input.ControllerState) string {
	return fmt.Sprintf("L(%+.2f,%+.2f) R(%+.2f,%+.2f) L2 %.2f R2 %.2f",
		st.LeftX, st.LeftY, st.RightX, st.RightY, st.LeftTrigger, st.RightTrigger)
}
