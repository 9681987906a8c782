package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	adapterclock "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/clock"
	adaptergenerator "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/generator"
	adapterstorage "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/storage"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/config"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/server"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ui"
)

// ContainerOptions selects the adapters behind the services
type ContainerOptions struct {
	Backend          string
	CardioMinutes    int
	DataDir          string
	DBPath           string
	GeneratorTimeout time.Duration
	GeneratorURL     string
	PlannedMinutes   int
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	Catalog  *services.PlanCatalog
	Feed     *services.CommunityFeed
	Gateway  *services.PersistenceGateway
	History  *services.RunHistory
	Progress *services.ProgressService
	State    *services.AppState

	// Adapters
	Clock     ports.Clock
	Generator ports.WorkoutGenerator
	Tickers   ports.TickerFactory

	// Internal - for cleanup and per-connection snapshots
	opts  ContainerOptions
	store ports.KeyValueStore
}

// NewStore opens the key-value store for backend
func NewStore(opts ContainerOptions) (ports.KeyValueStore, error) {
	switch opts.Backend {
	case "", config.StorageFile:
		return adapterstorage.NewFileStore(opts.DataDir)
	case config.StorageSQLite:
		return adapterstorage.NewSQLiteStore(opts.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// newGenerator returns the HTTP generator, or a disabled one when no URL is configured
func newGenerator(opts ContainerOptions) ports.WorkoutGenerator {
	if opts.GeneratorURL == "" {
		return adaptergenerator.Disabled{}
	}
	return adaptergenerator.NewHTTPClient(opts.GeneratorURL, opts.GeneratorTimeout)
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(opts ContainerOptions) (*Container, error) {
	store, err := NewStore(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", opts.Backend, err)
	}

	logging.Logger.Debug("Opened store", "backend", opts.Backend)
	return wireContainer(opts, store, adapterclock.System{}, adapterclock.TickerFactory{}, newGenerator(opts)), nil
}

// wireContainer builds the service graph over already created adapters
func wireContainer(
	opts ContainerOptions,
	store ports.KeyValueStore,
	clock ports.Clock,
	tickers ports.TickerFactory,
	generator ports.WorkoutGenerator,
) *Container {
	gateway := services.NewPersistenceGateway(store)
	state := services.LoadAppState(context.Background(), gateway)
	history := services.NewRunHistory(state, clock)

	return &Container{
		Catalog:   services.NewPlanCatalog(state),
		Clock:     clock,
		Feed:      services.NewCommunityFeed(state, clock),
		Gateway:   gateway,
		Generator: generator,
		History:   history,
		Progress:  services.NewProgressService(state, history),
		State:     state,
		Tickers:   tickers,
		opts:      opts,
		store:     store,
	}
}

// NewRunner creates a session runner, resuming any persisted session
func (c *Container) NewRunner() *services.SessionRunner {
	return services.NewSessionRunner(c.State, c.History, c.Clock, c.Tickers)
}

// NewPlanBuilder starts an empty draft with the configured default durations
func (c *Container) NewPlanBuilder() *services.PlanBuilder {
	return services.NewPlanBuilder(c.Generator, c.Clock, c.opts.PlannedMinutes, c.opts.CardioMinutes)
}

// NewDashboard builds a dashboard over the container's state
func (c *Container) NewDashboard() *ui.DashboardModel {
	return ui.NewDashboardModel(ui.DashboardConfig{
		Clock:    c.Clock,
		Feed:     c.Feed,
		History:  c.History,
		Progress: c.Progress,
		State:    c.State,
	})
}

// DashboardFactory opens a separate store per SSH connection so each remote
// dashboard reads its own snapshot and the connection owns its handle
func (c *Container) DashboardFactory() server.DashboardFactory {
	return func() (tea.Model, io.Closer, error) {
		store, err := NewStore(c.opts)
		if err != nil {
			return nil, nil, err
		}
		snapshot := wireContainer(c.opts, store, c.Clock, c.Tickers, c.Generator)
		return snapshot.NewDashboard(), snapshot, nil
	}
}

// HistorySnapshot reads the profile and runs through a freshly opened store,
// so it sees writes made by other processes since this container loaded.
func (c *Container) HistorySnapshot(ctx context.Context) (domain.UserProfile, []domain.SessionRun, error) {
	store, err := NewStore(c.opts)
	if err != nil {
		return domain.UserProfile{}, nil, err
	}
	defer store.Close()

	gateway := services.NewPersistenceGateway(store)
	return gateway.LoadUser(ctx), gateway.LoadRuns(ctx), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
