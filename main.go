package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"netdash/config"
	"netdash/stats"
	"netdash/telemetry"
	"netdash/ui"
)

const Version = "1.0.0"

func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func loadDashConfig(path string) (*config.Config, string, error) {
	if path == "" {
		if _, err := os.Stat("netdash.yaml"); err == nil {
			path = "netdash.yaml"
		} else {
			return config.Default(), "defaults", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	dataURL := flag.String("data", "", "telemetry endpoint URL (overrides config)")
	showConfig := flag.Bool("show-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, configSource, err := loadDashConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *dataURL != "" {
		cfg.Endpoint.URL = *dataURL
	}
	if *showConfig {
		cfg.Print()
		return
	}

	fanout, logErr := setupLogging(cfg.Logging, os.Stdout)
	log.SetOutput(fanout)
	defer fanout.Close()
	if logErr != nil {
		log.Printf("Warning: file logging unavailable: %v", logErr)
	}
	log.Printf("Loaded configuration from %s", configSource)

	tracker := stats.NewTracker()
	metrics := ui.NewMetrics()
	fetcher := telemetry.NewFetcher(cfg.Endpoint.URL, time.Duration(cfg.Endpoint.TimeoutSeconds)*time.Second)
	period := time.Duration(cfg.Poll.PeriodSeconds) * time.Second

	renderAllowed := isStdoutTTY()
	var dash *ui.Dashboard
	var manager *ui.Manager
	if cfg.UI.Enabled && renderAllowed {
		dash = ui.NewDashboard(cfg.UI.TargetFPS, cfg.UI.EnableMouse, metrics)
		factory := func() ui.Surface {
			return ui.NewChartView(dash.Redraw, func(line string) { log.Print(line) })
		}
		manager = ui.NewManager(dash, factory)
		dash.SetResizeHandler(manager.Reflow)
		dash.SetKeyHandler(manager.HandleKey)
	} else {
		if cfg.UI.Enabled {
			log.Printf("UI disabled (requires an interactive console)")
		}
		host := newConsoleHost(os.Stdout)
		manager = ui.NewManager(host, host.SurfaceFactory())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := newPoller(fetcher, manager, tracker, metrics, period)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if dash != nil {
		dash.SetQuitHandler(func() {
			select {
			case sigChan <- os.Interrupt:
			default:
			}
		})
		runErr := make(chan error, 1)
		go func() { runErr <- dash.Run() }()

		readyCtx, readyCancel := context.WithTimeout(ctx, 3*time.Second)
		waitErr := dash.WaitReady(readyCtx)
		readyCancel()
		if waitErr != nil {
			log.Fatalf("Error: dashboard never drew a frame: %v", waitErr)
		}

		// Dashboard timestamps its own log pane rows; drop the default prefixes.
		log.SetFlags(0)
		fanout.SetConsoleSink(dash.LogWriter(), false)

		log.Printf("netdash v%s polling %s every %ds", Version, fetcher.URL(), cfg.Poll.PeriodSeconds)
		poller.Start(ctx)
		go statusLoop(ctx, dash, poller, tracker, metrics)

		select {
		case sig := <-sigChan:
			log.Printf("Received signal: %v", sig)
		case err := <-runErr:
			if err != nil {
				log.Printf("Dashboard exited: %v", err)
			}
		}
		cancel()
		fanout.SetConsoleSink(os.Stdout, true)
		dash.Stop()
	} else {
		poller.Start(ctx)
		log.Printf("netdash v%s polling %s every %ds. Press Ctrl+C to stop.", Version, fetcher.URL(), cfg.Poll.PeriodSeconds)
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}

	manager.Dispose()
	logFinalStats(tracker, metrics)
	log.Println("Shutdown complete")
}

// statusLoop refreshes the dashboard status line once per second.
func statusLoop(ctx context.Context, dash *ui.Dashboard, p *poller, tracker *stats.Tracker, metrics *ui.Metrics) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dash.SetStatus(statusLine(p.State(), tracker, metrics))
		}
	}
}

func statusLine(state pollState, tracker *stats.Tracker, metrics *ui.Metrics) string {
	fetch := metrics.FetchSnapshot()
	return fmt.Sprintf("%s | polls %s | rendered %s | unchanged %s | failed %s | rx %s | fetch p50 %s p99 %s | up %s",
		state,
		humanize.Comma(tracker.Polls()),
		humanize.Comma(tracker.Rendered()),
		humanize.Comma(tracker.Unchanged()),
		humanize.Comma(tracker.Failed()),
		humanize.IBytes(uint64(tracker.Bytes())),
		fetch.P50.Round(time.Millisecond),
		fetch.P99.Round(time.Millisecond),
		formatUptime(tracker.Uptime()))
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func logFinalStats(tracker *stats.Tracker, metrics *ui.Metrics) {
	fetch := metrics.FetchSnapshot()
	log.Printf("Final: %s polls, %s rendered, %s empty, %s unchanged, %s failed, %s received, fetch p99 %s",
		humanize.Comma(tracker.Polls()),
		humanize.Comma(tracker.Rendered()),
		humanize.Comma(tracker.Empty()),
		humanize.Comma(tracker.Unchanged()),
		humanize.Comma(tracker.Failed()),
		humanize.IBytes(uint64(tracker.Bytes())),
		fetch.P99.Round(time.Millisecond))
}
