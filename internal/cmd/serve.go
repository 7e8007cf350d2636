package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gefkit/platform/internal/log"
	"github.com/gefkit/platform/internal/stream"
)

// Serve streams controller state to websocket clients.
type Serve struct {
	Addr         string        `help:"Stream server listen address" default:":8765" env:"GEFPAD_SERVE_ADDR"`
	SyncInterval time.Duration `help:"Interval between full state resyncs" default:"5s" env:"GEFPAD_SERVE_SYNC_INTERVAL"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger, in *InputOptions, drv *Drivers) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, closeFn, err := drv.openRegistry(in, logger, rawLogger)
	if err != nil {
		return err
	}
	defer closeFn()

	hub := stream.NewHub(logger)
	broadcaster := stream.NewBroadcaster(hub, logger)
	srv := stream.NewServer(hub, broadcaster, reg, logger)

	go hub.Run(ctx)
	return serveAndPoll(ctx, reg, broadcaster, pollInterval(in), s.SyncInterval, logger,
		func(ctx context.Context) error { return srv.ListenAndServe(ctx, s.Addr) })
}

// serveAndPoll runs listen in the background and polls on the calling
// goroutine, which owns the controller drivers. A listen failure stops
// polling and is returned.
func serveAndPoll(ctx context.Context, p poller, b *stream.Broadcaster, interval, sync time.Duration,
	logger *slog.Logger, listen func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		err := listen(ctx)
		cancel()
		listenErr <- err
	}()

	publishLoop(ctx, p, b, interval, sync, logger)
	cancel()
	return <-listenErr
}

// publishLoop polls p and hands every snapshot to b, forcing a full resync
// every sync interval.
func publishLoop(ctx context.Context, p poller, b *stream.Broadcaster, interval, sync time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var syncC <-chan time.Time
	if sync > 0 {
		syncTicker := time.NewTicker(sync)
		defer syncTicker.Stop()
		syncC = syncTicker.C
	}

	failing := map[int]bool{}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for slot, err := range p.UpdateAll() {
				if (err != nil) != failing[slot] {
					failing[slot] = err != nil
					if err != nil {
						logger.Warn("Controller poll failed", "slot", slot, "error", err)
					}
				}
			}
			b.Publish(p.States())
		case <-syncC:
			b.Sync()
		}
	}
}
