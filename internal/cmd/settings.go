package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/config"
)

// SettingsCmd shows settings
type SettingsCmd struct {
	Example SettingsExampleCmd `cmd:"example" help:"Show settings file location and available options"`
	Show    SettingsShowCmd    `cmd:"show" help:"Show the effective settings" default:"1"`
}

// SettingsShowCmd displays the settings after flags, env and settings.json are applied
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// effectiveSettings is what the commands actually run with
type effectiveSettings struct {
	DBPath           string `json:"db_path"`
	DataDir          string `json:"data_dir"`
	Debug            bool   `json:"debug"`
	DefaultCardio    int    `json:"default_cardio_minutes"`
	DefaultPlanned   int    `json:"default_planned_minutes"`
	GeneratorTimeout string `json:"generator_timeout"`
	GeneratorURL     string `json:"generator_url"`
	MaxLogFiles      int    `json:"max_log_files"`
	MetricsAddr      string `json:"metrics_addr"`
	SSHHost          string `json:"ssh_host"`
	SSHPort          int    `json:"ssh_port"`
	SettingsFile     string `json:"settings_file"`
	StorageBackend   string `json:"storage_backend"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	opts := cli.containerOptions()
	serve := (&ServeCmd{}).resolve(cli.settings)

	effective := effectiveSettings{
		DBPath:           opts.DBPath,
		DataDir:          opts.DataDir,
		Debug:            cli.Debug,
		DefaultCardio:    opts.CardioMinutes,
		DefaultPlanned:   opts.PlannedMinutes,
		GeneratorTimeout: opts.GeneratorTimeout.String(),
		GeneratorURL:     opts.GeneratorURL,
		MaxLogFiles:      cli.MaxLogFiles,
		MetricsAddr:      serve.MetricsAddr,
		SSHHost:          serve.Host,
		SSHPort:          serve.Port,
		SettingsFile:     config.GetSettingsPath(),
		StorageBackend:   opts.Backend,
	}
	if s.Format == "json" {
		return printJSON(cli.out(), effective)
	}

	generatorURL := effective.GeneratorURL
	if generatorURL == "" {
		generatorURL = "<disabled>"
	}

	w := newTable(cli.out())
	fmt.Fprintf(w, "settings_file\t%s\n", effective.SettingsFile)
	fmt.Fprintf(w, "storage_backend\t%s\n", effective.StorageBackend)
	if effective.StorageBackend == config.StorageSQLite {
		fmt.Fprintf(w, "db_path\t%s\n", effective.DBPath)
	} else {
		fmt.Fprintf(w, "data_dir\t%s\n", effective.DataDir)
	}
	fmt.Fprintf(w, "generator_url\t%s\n", generatorURL)
	fmt.Fprintf(w, "generator_timeout\t%s\n", effective.GeneratorTimeout)
	fmt.Fprintf(w, "default_planned_minutes\t%d\n", effective.DefaultPlanned)
	fmt.Fprintf(w, "default_cardio_minutes\t%d\n", effective.DefaultCardio)
	fmt.Fprintf(w, "debug\t%t\n", effective.Debug)
	fmt.Fprintf(w, "max_log_files\t%d\n", effective.MaxLogFiles)
	fmt.Fprintf(w, "ssh_host\t%s\n", effective.SSHHost)
	fmt.Fprintf(w, "ssh_port\t%d\n", effective.SSHPort)
	fmt.Fprintf(w, "metrics_addr\t%s\n", effective.MetricsAddr)
	return w.Flush()
}

// SettingsExampleCmd displays settings metadata
type SettingsExampleCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the example command
func (s *SettingsExampleCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(cli.out(), map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	out := cli.out()
	fmt.Fprintf(out, "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(out, "Example settings.json:")
	fmt.Fprintln(out)

	w := newTable(out)
	for _, key := range slices.Sorted(maps.Keys(example)) {
		var valueStr string
		switch v := example[key].(type) {
		case string:
			valueStr = v
		default:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Create or edit this file to configure metrogym.")
	fmt.Fprintln(out, "All settings are optional and have sensible defaults.")
	return nil
}
