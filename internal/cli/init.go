package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veroxsity/sysmon/internal/config"
	"github.com/veroxsity/sysmon/internal/errors"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Global         bool // Write to ~/.config/sysmon/config.yaml instead of ./.sysmon.yaml
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

var (
	initGlobal         bool
	initForce          bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sysmon config file",
	Long: `Initialize a sysmon configuration file with guided prompts.

By default the config is written to .sysmon.yaml in the current directory;
use --global to write the user-wide config instead.

Examples:
  sysmon init
  sysmon init --global
  sysmon init --force --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Global:         initGlobal,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write the user-wide config")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initNonInteractive, "yes", "y", false, "skip prompts and write defaults")
}

// Init creates a configuration file.
func Init(opts InitOptions) error {
	configPath, err := initConfigPath(opts.Global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	return WriteConfig(cfg, configPath)
}

// promptConfig collects the tunable settings interactively.
func promptConfig(cfg *config.Config) error {
	interval := strconv.FormatFloat(cfg.UpdateInterval, 'f', -1, 64)
	sortKey := string(cfg.ProcessSortKey)
	dockerSocket := cfg.Docker.Socket

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Description("How often metrics are collected").
				Value(&interval).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Process sort key").
				Options(
					huh.NewOption("CPU usage", string(config.SortByCPU)),
					huh.NewOption("Memory usage", string(config.SortByMemory)),
					huh.NewOption("PID", string(config.SortByPID)),
					huh.NewOption("Name", string(config.SortByName)),
				).
				Value(&sortKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Docker socket").
				Description("Engine socket for the containers view").
				Value(&dockerSocket),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --yes for defaults")
	}

	cfg.UpdateInterval, _ = strconv.ParseFloat(interval, 64)
	cfg.ProcessSortKey = config.SortKey(sortKey)
	cfg.Docker.Socket = dockerSocket
	return nil
}

// WriteConfig marshals the config and writes it with a header comment.
func WriteConfig(cfg *config.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# sysmon configuration
# Run 'sysmon' to start the dashboard
`
	if err := os.WriteFile(path, []byte(header+string(data)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

// initConfigPath resolves where init writes, creating the global config
// directory if needed.
func initConfigPath(global bool) (string, error) {
	if !global {
		return config.ConfigFileName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot resolve home directory",
			"Set $HOME or use a local config instead")
	}
	dir := filepath.Join(home, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory: "+dir,
			"Check directory permissions")
	}
	return filepath.Join(dir, config.GlobalConfigFile), nil
}
