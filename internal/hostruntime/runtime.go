// Package hostruntime wires together the Host Profile, logger, action
// runner, dispatcher, and transport into a running process, mirroring
// cmd/server/server.go's startServer sequencing: build each collaborator,
// register routes/handlers, start background tickers, then serve until
// told to stop.
package hostruntime

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hostctl/internal/actionrunner"
	"hostctl/internal/dispatcher"
	"hostctl/internal/hostprofile"
	"hostctl/internal/logger"
	"hostctl/internal/probe"
	"hostctl/internal/transport"
)

// Options carries the serve command's flags.
type Options struct {
	RepoRoot       string
	HostConfigPath string
	IPCEndpoint    string
	LogLevel       string
	LogDir         string
}

// tickInterval mirrors ServerService.StartLogReporting's cadence; the
// host's own background tick only ever refreshes a metric gauge, so
// it can run far less often than a request-serving loop.
const tickInterval = 30 * time.Second

var tickGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "hostctl_last_tick_unix",
	Help: "Unix timestamp of the host's last background maintenance tick.",
})

// Run loads the Host Profile, brings up the dispatcher and transport, and
// blocks until ctx is cancelled or the transport exits on its own. It
// returns a non-nil error on any configuration or transport failure.
func Run(ctx context.Context, opts Options) error {
	profile, err := hostprofile.Load(opts.HostConfigPath)
	if err != nil {
		return fmt.Errorf("load host profile: %w", err)
	}
	if opts.IPCEndpoint != "" {
		profile.IPC.Endpoint = opts.IPCEndpoint
	}

	logger.Init(logger.Config{
		Dir:     opts.LogDir,
		Level:   opts.LogLevel,
		Console: true,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(tickGauge)

	prober := probe.OSProbe{}
	runner := actionrunner.NewRunner(opts.RepoRoot, profile.PathTemplates.ActionCatalog, profile.PathTemplates.ActionJob, prober)
	metrics := dispatcher.NewMetrics(registry)
	d := dispatcher.New(profile, opts.RepoRoot, runner, prober, metrics)

	tr, err := transport.New(profile.IPC.Backend, registry)
	if err != nil {
		return fmt.Errorf("select transport: %w", err)
	}
	tr.SetHandler(d.Dispatch)
	if err := tr.Bind(profile.IPC.Endpoint); err != nil {
		return fmt.Errorf("bind %s transport at %q: %w", profile.IPC.Backend, profile.IPC.Endpoint, err)
	}

	tickCtx, stopTick := context.WithCancel(ctx)
	defer stopTick()
	go runTick(tickCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	runErr := make(chan error, 1)
	go func() { runErr <- tr.Run() }()

	select {
	case <-sigCh:
		logger.Info("hostctl: received shutdown signal")
	case <-ctx.Done():
		logger.Info("hostctl: context cancelled")
	case err := <-runErr:
		return err
	}

	if err := tr.Stop(); err != nil {
		return fmt.Errorf("stop transport: %w", err)
	}
	return <-runErr
}

func runTick(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tickGauge.Set(float64(now.Unix()))
		}
	}
}
