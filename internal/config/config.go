// internal/config/config.go
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
	Progress ProgressConfig `yaml:"progress"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Mirror   MirrorConfig   `yaml:"mirror"`
}

// ---- SERVER ----

// ServerConfig is the debug server running on the switch.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// 0 disables the idle timeout: a silent server stalls the reader.
	IdleTimeoutMs int `yaml:"idle_timeout_ms"`
}

// ---- OUTPUT MODE ----

// OutputConfig holds the orthogonal output flags.
// Table mode is implied when CSVDemux is false.
type OutputConfig struct {
	CSVDemux bool   `yaml:"csv_demux"`
	Echo     bool   `yaml:"echo"`
	Header   bool   `yaml:"header"`
	Prefix   string `yaml:"prefix"`

	// Binary is accepted only to be rejected by Validate.
	Binary bool `yaml:"binary"`
}

// ConsoleOnly reports whether the console is the primary destination.
func (o OutputConfig) ConsoleOnly() bool {
	return !o.HasFile()
}

// Table reports whether the primary rendering is the table format.
func (o OutputConfig) Table() bool {
	return !o.CSVDemux
}

// HasFile reports whether any file destination was configured.
func (o OutputConfig) HasFile() bool {
	return o.Prefix != ""
}

// ---- PROGRESS ----

type ProgressConfig struct {
	Quiet bool `yaml:"quiet"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty => disabled
}

// ---- MODBUS MIRROR ----

// MirrorConfig enables the optional holding-register mirror of stream state.
type MirrorConfig struct {
	Endpoint    string `yaml:"endpoint"` // empty => disabled
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	IntervalMs  int    `yaml:"interval_ms"`

	// IdleTimeoutMs closes an unused connection; 0 keeps the client default.
	// The next flush redials.
	IdleTimeoutMs int `yaml:"idle_timeout_ms"`
}

// Enabled reports whether a mirror endpoint was configured.
func (m MirrorConfig) Enabled() bool {
	return m.Endpoint != ""
}

// Load reads a YAML configuration file.
// The result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return &c, nil
}
