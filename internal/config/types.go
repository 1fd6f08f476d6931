package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// SortKey selects the column the process table is ordered by.
type SortKey string

const (
	SortByCPU    SortKey = "cpu_percent"
	SortByMemory SortKey = "memory_percent"
	SortByPID    SortKey = "pid"
	SortByName   SortKey = "name"
)

// Valid reports whether the sort key is one of the supported values.
func (k SortKey) Valid() bool {
	switch k {
	case SortByCPU, SortByMemory, SortByPID, SortByName:
		return true
	}
	return false
}

// Config represents the complete sysmon configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// UpdateInterval is the refresh cadence in seconds.
	UpdateInterval float64 `yaml:"update_interval" mapstructure:"update_interval"`

	// ProcessSortKey orders the process table.
	ProcessSortKey SortKey `yaml:"process_sort_key" mapstructure:"process_sort_key"`

	// Panels toggles individual dashboard panels.
	Panels PanelConfig `yaml:"panels" mapstructure:"panels"`

	// Thresholds holds warning/critical bounds per metric.
	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`

	// Docker configures the optional container inspector.
	Docker DockerConfig `yaml:"docker" mapstructure:"docker"`
}

// PanelConfig holds per-panel visibility flags.
// A false flag suppresses a panel; it never forces a panel whose
// backing data is absent. The process table has no flag and is
// always shown.
type PanelConfig struct {
	System  bool `yaml:"system" mapstructure:"system"`
	CPU     bool `yaml:"cpu" mapstructure:"cpu"`
	Memory  bool `yaml:"memory" mapstructure:"memory"`
	Disk    bool `yaml:"disk" mapstructure:"disk"`
	Network bool `yaml:"network" mapstructure:"network"`
	GPU     bool `yaml:"gpu" mapstructure:"gpu"`
	Battery bool `yaml:"battery" mapstructure:"battery"`
}

// Threshold is a warning/critical bound pair. Units are percent for
// cpu/memory/disk and degrees Celsius for temperature.
type Threshold struct {
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// ThresholdConfig maps monitored metrics to their bounds.
type ThresholdConfig struct {
	CPU         Threshold `yaml:"cpu" mapstructure:"cpu"`
	Memory      Threshold `yaml:"memory" mapstructure:"memory"`
	Disk        Threshold `yaml:"disk" mapstructure:"disk"`
	Temperature Threshold `yaml:"temperature" mapstructure:"temperature"`
}

// DockerConfig controls the container/service inspector.
type DockerConfig struct {
	// Socket is the Docker engine unix socket path.
	Socket string `yaml:"socket" mapstructure:"socket"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		UpdateInterval: 1.0,
		ProcessSortKey: SortByCPU,
		Panels: PanelConfig{
			System:  true,
			CPU:     true,
			Memory:  true,
			Disk:    true,
			Network: true,
			GPU:     true,
			Battery: true,
		},
		Thresholds: ThresholdConfig{
			CPU:         Threshold{Warning: 80, Critical: 95},
			Memory:      Threshold{Warning: 80, Critical: 95},
			Disk:        Threshold{Warning: 85, Critical: 95},
			Temperature: Threshold{Warning: 75, Critical: 85},
		},
		Docker: DockerConfig{
			Socket: "/var/run/docker.sock",
		},
	}
}
