// internal/config/validate.go
package config

import (
	"github.com/pkg/errors"
)

// ErrBinaryUnsupported is returned when raw binary output is requested.
var ErrBinaryUnsupported = errors.New("binary output mode is not implemented")

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// SERVER
	// ------------------------------------------------------------

	if cfg.Server.Host == "" {
		return errors.New("server host is required")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.Errorf("server port %d out of range (1-65535)", cfg.Server.Port)
	}
	if cfg.Server.IdleTimeoutMs < 0 {
		return errors.Errorf("idle_timeout_ms must be >= 0, got %d", cfg.Server.IdleTimeoutMs)
	}

	// ------------------------------------------------------------
	// OUTPUT MODE
	// ------------------------------------------------------------

	// The remaining output flags compose freely; Normalize settles them.
	if cfg.Output.Binary {
		return ErrBinaryUnsupported
	}

	// ------------------------------------------------------------
	// MODBUS MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if !cfg.Mirror.Enabled() {
		return nil
	}
	if cfg.Mirror.TimeoutMs < 0 {
		return errors.Errorf("mirror %s: timeout_ms must be >= 0", cfg.Mirror.Endpoint)
	}
	if cfg.Mirror.IdleTimeoutMs < 0 {
		return errors.Errorf("mirror %s: idle_timeout_ms must be >= 0", cfg.Mirror.Endpoint)
	}
	if cfg.Mirror.IntervalMs < 0 {
		return errors.Errorf("mirror %s: interval_ms must be >= 0", cfg.Mirror.Endpoint)
	}
	if uint32(cfg.Mirror.BaseAddress)+uint32(blockRegisters) > 0x10000 {
		return errors.Errorf(
			"mirror %s: base_address %d leaves no room for a %d register block",
			cfg.Mirror.Endpoint,
			cfg.Mirror.BaseAddress,
			blockRegisters,
		)
	}

	return nil
}

// blockRegisters mirrors status.SlotsTotal without importing it.
const blockRegisters = 20
