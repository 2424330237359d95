// internal/config/normalize.go
package config

const (
	defaultMirrorTimeoutMs  = 2000
	defaultMirrorIntervalMs = 1000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// No file destination: the console is the primary output, so an
	// echo would print every sample twice.
	if !cfg.Output.HasFile() {
		cfg.Output.Echo = false
	}

	// The legend only exists for CSV output.
	if !cfg.Output.CSVDemux {
		cfg.Output.Header = false
	}

	if !cfg.Mirror.Enabled() {
		return
	}
	if cfg.Mirror.TimeoutMs == 0 {
		cfg.Mirror.TimeoutMs = defaultMirrorTimeoutMs
	}
	if cfg.Mirror.IntervalMs == 0 {
		cfg.Mirror.IntervalMs = defaultMirrorIntervalMs
	}
}
