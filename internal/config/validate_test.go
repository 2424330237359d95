// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

// helper to build a valid config quickly
func base() *Config {
	return &Config{
		Server: ServerConfig{Host: "wr-switch", Port: 12345},
	}
}

// ---- tests ----

func TestValidate_TableConsoleOnly(t *testing.T) {
	if err := Validate(base()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingHost(t *testing.T) {
	cfg := base()
	cfg.Server.Host = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected host error, got nil")
	}
}

func TestValidate_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		cfg := base()
		cfg.Server.Port = port
		if err := Validate(cfg); err == nil {
			t.Fatalf("port %d: expected error, got nil", port)
		}
	}
}

func TestValidate_BinaryRejected(t *testing.T) {
	cfg := base()
	cfg.Output.Binary = true

	err := Validate(cfg)
	if !errors.Is(err, ErrBinaryUnsupported) {
		t.Fatalf("expected ErrBinaryUnsupported, got %v", err)
	}
}

func TestValidate_OutputFlagsCompose(t *testing.T) {
	cases := []OutputConfig{
		{CSVDemux: true},                           // console CSV
		{CSVDemux: true, Prefix: "run1"},           // channel files
		{Header: true},                             // header without CSV: no-op
		{Header: true, Prefix: "run1"},             // table file, header ignored
		{CSVDemux: true, Header: true, Echo: true}, // console CSV + legend
		{Echo: true, Prefix: "table.txt"},          // table file + echo
	}

	for i, o := range cases {
		cfg := base()
		cfg.Output = o
		if err := Validate(cfg); err != nil {
			t.Fatalf("case %d %+v: unexpected error: %v", i, o, err)
		}
	}
}

func TestNormalize_HeaderWithoutCSVIsDropped(t *testing.T) {
	cfg := base()
	cfg.Output.Header = true
	cfg.Output.Prefix = "table.txt"
	Normalize(cfg)

	if cfg.Output.Header {
		t.Fatalf("header must be cleared outside csv demux")
	}

	cfg = base()
	cfg.Output.CSVDemux = true
	cfg.Output.Header = true
	Normalize(cfg)

	if !cfg.Output.Header {
		t.Fatalf("header must survive in csv demux")
	}
}

func TestValidate_MirrorIdleTimeout(t *testing.T) {
	cfg := base()
	cfg.Mirror.Endpoint = "plc:502"
	cfg.Mirror.IdleTimeoutMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected idle timeout error, got nil")
	}
}

func TestValidate_MirrorBaseAddressOverflow(t *testing.T) {
	cfg := base()
	cfg.Mirror.Endpoint = "plc:502"
	cfg.Mirror.BaseAddress = 65530

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected base address error, got nil")
	}

	cfg.Mirror.BaseAddress = 65516
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := base()
	before := *cfg

	_ = Validate(cfg)

	if *cfg != before {
		t.Fatalf("Validate mutated config")
	}
}

func TestNormalize_ConsoleIsPrimaryWithoutFile(t *testing.T) {
	cfg := base()
	cfg.Output.Echo = true
	Normalize(cfg)

	if !cfg.Output.ConsoleOnly() {
		t.Fatalf("expected console-only output without a file destination")
	}
	if cfg.Output.Echo {
		t.Fatalf("echo must be folded into the console primary")
	}

	cfg = base()
	cfg.Output.Prefix = "run1"
	cfg.Output.Echo = true
	Normalize(cfg)

	if !cfg.Output.Echo {
		t.Fatalf("echo must stay on when a file is given")
	}
}

func TestNormalize_MirrorDefaults(t *testing.T) {
	cfg := base()
	cfg.Mirror.Endpoint = "plc:502"
	Normalize(cfg)

	if cfg.Mirror.TimeoutMs != defaultMirrorTimeoutMs {
		t.Fatalf("timeout: got=%d want=%d", cfg.Mirror.TimeoutMs, defaultMirrorTimeoutMs)
	}
	if cfg.Mirror.IntervalMs != defaultMirrorIntervalMs {
		t.Fatalf("interval: got=%d want=%d", cfg.Mirror.IntervalMs, defaultMirrorIntervalMs)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spll.yaml")

	data := []byte(`
server:
  host: 192.168.1.10
  port: 12345
  idle_timeout_ms: 5000
output:
  csv_demux: true
  header: true
  prefix: /tmp/run1
mirror:
  endpoint: plc:502
  unit_id: 3
  base_address: 100
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Server.Host != "192.168.1.10" || cfg.Server.Port != 12345 {
		t.Fatalf("server: got=%+v", cfg.Server)
	}
	if !cfg.Output.CSVDemux || !cfg.Output.Header || cfg.Output.Prefix != "/tmp/run1" {
		t.Fatalf("output: got=%+v", cfg.Output)
	}
	if cfg.Mirror.UnitID != 3 || cfg.Mirror.BaseAddress != 100 {
		t.Fatalf("mirror: got=%+v", cfg.Mirror)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
