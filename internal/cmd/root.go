package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/config"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
)

// EnvStorage selects the storage backend when --storage is not given
const EnvStorage = "METROGYM_STORAGE"

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Storage     string           `help:"Storage backend: file or sqlite (overrides $METROGYM_STORAGE and settings.json)"`

	Dashboard DashboardCmd `cmd:"" help:"Show the progress dashboard (default)" default:"1"`
	Feed      FeedCmd      `cmd:"feed" help:"Browse and share to the community feed"`
	Plans     PlansCmd     `cmd:"plans" help:"Manage session plans (add, list, show, import, export)"`
	Profile   ProfileCmd   `cmd:"profile" help:"Show the user profile"`
	Resume    ResumeCmd    `cmd:"resume" help:"Reopen the running session"`
	Runs      RunsCmd      `cmd:"runs" help:"List and review completed runs"`
	Serve     ServeCmd     `cmd:"serve" help:"Serve the dashboard over SSH and metrics over HTTP"`
	Session   SessionCmd   `cmd:"session" help:"Inspect or end the running session without the TUI"`
	Settings  SettingsCmd  `cmd:"settings" help:"Show settings"`
	Start     StartCmd     `cmd:"start" help:"Start a session from a plan"`
	Stats     StatsCmd     `cmd:"stats" help:"Show training statistics"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	Out       io.Writer        `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// A setting only applies while the flag is at its default and no env var is set.
	if c.settings != nil {
		if c.MaxLogFiles == logging.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv(logging.EnvMaxLogFiles, strconv.Itoa(c.MaxLogFiles))
	}

	// The container is created after logging so the storage layer logs through it
	container, err := NewContainer(c.containerOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// containerOptions resolves storage and generator options with the usual precedence
func (c *CLI) containerOptions() ContainerOptions {
	settings := c.settings
	if settings == nil {
		settings = &config.Settings{}
	}

	opts := ContainerOptions{
		Backend:          c.Storage,
		CardioMinutes:    config.DefaultCardioMinutes,
		DataDir:          config.GetDataDir(),
		DBPath:           config.GetDBPath(),
		GeneratorTimeout: config.DefaultGeneratorTimeoutSeconds * time.Second,
		GeneratorURL:     settings.GeneratorURL,
		PlannedMinutes:   config.DefaultPlannedMinutes,
	}

	if opts.Backend == "" {
		opts.Backend = os.Getenv(EnvStorage)
	}
	if opts.Backend == "" {
		opts.Backend = settings.StorageBackend
	}
	if opts.Backend == "" {
		opts.Backend = config.DefaultStorageBackend
	}

	if settings.DefaultCardioMinutes != nil {
		opts.CardioMinutes = *settings.DefaultCardioMinutes
	}
	if settings.DefaultPlannedMinutes != nil {
		opts.PlannedMinutes = *settings.DefaultPlannedMinutes
	}
	if settings.GeneratorTimeoutSeconds != nil {
		opts.GeneratorTimeout = time.Duration(*settings.GeneratorTimeoutSeconds) * time.Second
	}

	return opts
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// out is where commands print; tests swap it for a buffer
func (c *CLI) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}
