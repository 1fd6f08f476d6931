// Package cli wires the cobra command tree: the dashboard itself as the
// root command, plus init and version.
package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/dashboard"
	"github.com/veroxsity/sysmon/internal/docker"
	"github.com/veroxsity/sysmon/internal/errors"
	"github.com/veroxsity/sysmon/internal/logger"
	"github.com/veroxsity/sysmon/internal/metrics"
)

// Root command flags
var (
	configFlag   string
	intervalFlag string
	sortFlag     string
)

// rootCmd runs the dashboard; sysmon has no separate "monitor" subcommand.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Terminal system monitoring dashboard",
	Long: `A live terminal dashboard for host telemetry: CPU, memory, disk,
network, GPU, battery, processes and docker containers, with rolling
sparkline history and threshold alerts.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  1 / 2 / 3   Main / containers / alerts view
  s           Cycle process sort (cpu/memory/pid/name)
  c m d n     Toggle cpu/memory/disk/network panels
  g b         Toggle gpu/battery panels
  + / -       Slower / faster refresh
  ?           Show help

Examples:
  sysmon
  sysmon --interval 2s
  sysmon --sort memory_percent`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	rootCmd.Flags().StringVar(&sortFlag, "sort", "", "process sort key (cpu_percent, memory_percent, pid, name)")
}

// monitorCommand loads config, applies flag overrides and runs the TUI.
func monitorCommand() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"Not a terminal",
			"sysmon draws an interactive dashboard and needs a TTY")
	}

	cfg := config.LoadOrDefault(configFlag)
	if err := applyFlagOverrides(cfg); err != nil {
		return err
	}

	log := logger.Default()
	collector := metrics.NewCollector(log)
	inspector := docker.NewInspector(cfg.Docker.Socket, log)

	model := dashboard.NewModel(cfg, collector, inspector, log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// applyFlagOverrides lets --interval and --sort trump the config file.
func applyFlagOverrides(cfg *config.Config) error {
	if intervalFlag != "" {
		parsed, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", intervalFlag),
				"Use a valid duration like 1s, 500ms, or 2s")
		}
		if parsed < 100*time.Millisecond {
			return errors.New(errors.ErrConfig,
				"Interval too short",
				"Minimum interval is 100ms")
		}
		cfg.UpdateInterval = parsed.Seconds()
	}

	if sortFlag != "" {
		key := config.SortKey(sortFlag)
		if !key.Valid() {
			return errors.New(errors.ErrConfig,
				"Unknown sort key: "+sortFlag,
				"Supported keys: cpu_percent, memory_percent, pid, name")
		}
		cfg.ProcessSortKey = key
	}

	return nil
}
