// cmd/spll-reader/args.go
package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/tamzrod/spll-reader/internal/config"
)

// options is everything main needs, resolved once at startup.
type options struct {
	cfg  config.Config
	logV int
}

const usageHead = `Usage: %s -a host -p port [options]

Connects to the SoftPLL debug server on a switch and prints the decoded
sample stream, or writes one CSV file per sample kind.

`

// parseArgs builds the configuration from an optional YAML file and the
// command line. Flags given explicitly override the file.
// flag.ErrHelp is returned for -h.
func parseArgs(name string, args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usageHead, name)
		fs.PrintDefaults()
	}

	var (
		host        = fs.String("a", "", "debug server `host` (name or address)")
		port        = fs.Int("p", 0, "debug server `port`")
		csvDemux    = fs.Bool("m", false, "CSV output, one file per kind with -f (stdout otherwise)")
		header      = fs.Bool("e", false, "write the legend at the top of CSV output")
		echo        = fs.Bool("v", false, "also print every sample to stdout (implied without -f)")
		prefix      = fs.String("f", "", "output file, or file `prefix` with -m")
		binary      = fs.Bool("b", false, "raw binary output (not implemented)")
		quiet       = fs.Bool("q", false, "no progress marks on stderr")
		configPath  = fs.String("config", "", "YAML configuration `file`")
		idleTimeout = fs.Duration("idle-timeout", 0, "give up when the server is silent this long (0 = never)")
		metricsAddr = fs.String("metrics", "", "serve Prometheus metrics on `addr`")
		modbusEP    = fs.String("modbus", "", "mirror stream status to the Modbus TCP `endpoint`")
		modbusUnit  = fs.Uint("modbus-unit", 1, "Modbus unit id of the mirror")
		modbusBase  = fs.Uint("modbus-base", 0, "first holding register of the mirror block")
		logV        = fs.Int("log-v", 0, "log verbosity")
	)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return options{}, errors.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return options{}, err
		}
		cfg = *loaded
	} else {
		cfg.Mirror.UnitID = uint8(*modbusUnit)
	}

	// ------------------------------------------------------------
	// EXPLICIT FLAGS OVERRIDE THE FILE
	// ------------------------------------------------------------

	var rangeErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Server.Host = *host
		case "p":
			cfg.Server.Port = *port
		case "m":
			cfg.Output.CSVDemux = *csvDemux
		case "e":
			cfg.Output.Header = *header
		case "v":
			cfg.Output.Echo = *echo
		case "f":
			cfg.Output.Prefix = *prefix
		case "b":
			cfg.Output.Binary = *binary
		case "q":
			cfg.Progress.Quiet = *quiet
		case "idle-timeout":
			cfg.Server.IdleTimeoutMs = int(*idleTimeout / time.Millisecond)
		case "metrics":
			cfg.Metrics.Listen = *metricsAddr
		case "modbus":
			cfg.Mirror.Endpoint = *modbusEP
		case "modbus-unit":
			if *modbusUnit > 255 {
				rangeErr = errors.Errorf("modbus unit id %d out of range (0-255)", *modbusUnit)
			}
			cfg.Mirror.UnitID = uint8(*modbusUnit)
		case "modbus-base":
			if *modbusBase > 65535 {
				rangeErr = errors.Errorf("modbus base address %d out of range", *modbusBase)
			}
			cfg.Mirror.BaseAddress = uint16(*modbusBase)
		}
	})
	if rangeErr != nil {
		return options{}, rangeErr
	}

	if err := config.Validate(&cfg); err != nil {
		fs.Usage()
		return options{}, err
	}
	config.Normalize(&cfg)

	return options{cfg: cfg, logV: *logV}, nil
}
