package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/config"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/server"
)

const metricsShutdownTimeout = 10 * time.Second

// ServeCmd serves the read-only dashboard over SSH and Prometheus metrics over HTTP
type ServeCmd struct {
	AuthorizedKeys string `help:"authorized_keys file (default: ~/.ssh/authorized_keys)"`
	Host           string `help:"SSH listen host (default: settings or localhost)"`
	MetricsAddr    string `help:"Metrics listen address (default: settings or 127.0.0.1:9464); 'off' disables it"`
	Port           int    `help:"SSH listen port (default: settings or 23234)"`
}

// serveConfig is the resolved listener configuration
type serveConfig struct {
	AuthorizedKeys string
	Host           string
	MetricsAddr    string
	Port           int
}

// resolve applies flag > settings.json > default for each listener option
func (s *ServeCmd) resolve(settings *config.Settings) serveConfig {
	if settings == nil {
		settings = &config.Settings{}
	}

	cfg := serveConfig{
		AuthorizedKeys: s.AuthorizedKeys,
		Host:           s.Host,
		MetricsAddr:    s.MetricsAddr,
		Port:           s.Port,
	}
	if cfg.Host == "" {
		cfg.Host = settings.SSHHost
	}
	if cfg.Host == "" {
		cfg.Host = config.DefaultSSHHost
	}
	if cfg.Port == 0 && settings.SSHPort != nil {
		cfg.Port = *settings.SSHPort
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultSSHPort
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = settings.MetricsAddr
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = config.DefaultMetricsAddr
	}
	if cfg.AuthorizedKeys == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.AuthorizedKeys = filepath.Join(home, ".ssh", "authorized_keys")
		}
	}
	cfg.AuthorizedKeys = config.ExpandPath(cfg.AuthorizedKeys)
	return cfg
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	cfg := s.resolve(cli.settings)

	srv, err := server.NewServer(server.Config{
		AuthorizedKeysPath: cfg.AuthorizedKeys,
		Host:               cfg.Host,
		HostKeyDir:         config.GetSSHDir(),
		Port:               cfg.Port,
	}, cli.Container.DashboardFactory())
	if err != nil {
		return err
	}

	observability.RecordProfile(cli.Container.State.User())
	if err := prometheus.Register(observability.NewStoreCollector(cli.Container.HistorySnapshot)); err != nil {
		return fmt.Errorf("failed to register history metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	fmt.Fprintf(cli.out(), "Dashboard: ssh -p %d %s\n", cfg.Port, cfg.Host)

	if cfg.MetricsAddr != "off" {
		metricsSrv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logging.Logger.Info("Metrics listening", "address", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		})
		fmt.Fprintf(cli.out(), "Metrics:   http://%s/metrics\n", cfg.MetricsAddr)
	}

	return g.Wait()
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	return mux
}
