package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/veroxsity/sysmon/internal/errors"
	"github.com/veroxsity/sysmon/internal/logger"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".sysmon.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/sysmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sysmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sysmon.yaml in the current directory
// 3. ~/.config/sysmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err == nil {
		localConfig := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(localConfig); err == nil {
			return localConfig, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if
// not found. A malformed config file also falls back to defaults: startup
// is never blocked by bad persisted configuration.
func LoadOrDefault(explicit string) *Config {
	path, err := Find(explicit)
	if err != nil || path == "" {
		return DefaultConfig()
	}

	cfg, err := Load(path)
	if err != nil {
		logger.Default().Warn("ignoring invalid config %s: %v", path, err)
		return DefaultConfig()
	}
	return cfg
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax")
	}

	// Out-of-range values fall back rather than error.
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = DefaultConfig().UpdateInterval
	}
	if !cfg.ProcessSortKey.Valid() {
		cfg.ProcessSortKey = DefaultConfig().ProcessSortKey
	}
	for _, th := range []*Threshold{
		&cfg.Thresholds.CPU, &cfg.Thresholds.Memory,
		&cfg.Thresholds.Disk, &cfg.Thresholds.Temperature,
	} {
		if th.Warning > th.Critical {
			th.Warning, th.Critical = th.Critical, th.Warning
		}
	}

	return cfg, nil
}

// setDefaults seeds viper so partial config files merge over full defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("update_interval", def.UpdateInterval)
	v.SetDefault("process_sort_key", string(def.ProcessSortKey))

	v.SetDefault("panels.system", def.Panels.System)
	v.SetDefault("panels.cpu", def.Panels.CPU)
	v.SetDefault("panels.memory", def.Panels.Memory)
	v.SetDefault("panels.disk", def.Panels.Disk)
	v.SetDefault("panels.network", def.Panels.Network)
	v.SetDefault("panels.gpu", def.Panels.GPU)
	v.SetDefault("panels.battery", def.Panels.Battery)

	v.SetDefault("thresholds.cpu.warning", def.Thresholds.CPU.Warning)
	v.SetDefault("thresholds.cpu.critical", def.Thresholds.CPU.Critical)
	v.SetDefault("thresholds.memory.warning", def.Thresholds.Memory.Warning)
	v.SetDefault("thresholds.memory.critical", def.Thresholds.Memory.Critical)
	v.SetDefault("thresholds.disk.warning", def.Thresholds.Disk.Warning)
	v.SetDefault("thresholds.disk.critical", def.Thresholds.Disk.Critical)
	v.SetDefault("thresholds.temperature.warning", def.Thresholds.Temperature.Warning)
	v.SetDefault("thresholds.temperature.critical", def.Thresholds.Temperature.Critical)

	v.SetDefault("docker.socket", def.Docker.Socket)
}

// Interval returns the refresh interval as a duration, never below 100ms.
func (c *Config) Interval() time.Duration {
	d := time.Duration(c.UpdateInterval * float64(time.Second))
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}
	return d
}
