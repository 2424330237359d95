// cmd/spll-reader/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tamzrod/spll-reader/internal/config"
	"github.com/tamzrod/spll-reader/internal/metrics"
	"github.com/tamzrod/spll-reader/internal/stream"
	"github.com/tamzrod/spll-reader/internal/writer"
)

const dialTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	name := filepath.Base(os.Args[0])

	opts, err := parseArgs(name, args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 2
	}

	setupLogging(opts.logV)
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session(ctx, opts.cfg); err != nil {
		glog.Errorf("%v", err)
		return 1
	}
	return 0
}

// setupLogging sends glog to stderr. glog owns flag.CommandLine;
// the tool's own flags live in a separate set.
func setupLogging(v int) {
	_ = flag.Set("logtostderr", "true")
	_ = flag.Set("v", strconv.Itoa(v))
	_ = flag.CommandLine.Parse(nil)
}

// session runs one connection from sink setup to teardown.
func session(ctx context.Context, cfg config.Config) error {
	// Background helpers stop on cancel; wait for them last.
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// --------------------
	// Outputs (fatal before connecting)
	// --------------------

	plan, err := writer.BuildSinks(cfg.Output, os.Stdout)
	if err != nil {
		return errors.Wrap(err, "open outputs")
	}
	router := writer.New(plan)

	// --------------------
	// Connect
	// --------------------

	target := stream.Target{Host: cfg.Server.Host, Port: cfg.Server.Port}
	conn, err := stream.Dial(ctx, target, dialTimeout)
	if err != nil {
		_ = router.Close()
		return err
	}

	loopOpts := []stream.Option{
		stream.WithIdleTimeout(time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond),
	}
	if !cfg.Progress.Quiet {
		loopOpts = append(loopOpts, stream.WithProgress(os.Stderr))
	}

	// --------------------
	// Optional: metrics
	// --------------------

	if cfg.Metrics.Listen != "" {
		m, err := metrics.New()
		if err != nil {
			_ = router.Close()
			_ = conn.Close()
			return err
		}
		loopOpts = append(loopOpts, stream.WithObserver(m))

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Serve(ctx, cfg.Metrics.Listen); err != nil {
				glog.Warningf("%v", err)
			}
		}()
	}

	// --------------------
	// Optional: Modbus mirror
	// --------------------

	mirror, err := writer.BuildMirror(cfg.Mirror)
	if err != nil {
		_ = router.Close()
		_ = conn.Close()
		return err
	}
	if mirror != nil {
		loopOpts = append(loopOpts, stream.WithMirror(mirror))
	}

	// --------------------
	// Stream until the end
	// --------------------

	loop, err := stream.New(conn, router, loopOpts...)
	if err != nil {
		_ = router.Close()
		_ = conn.Close()
		return err
	}

	err = loop.Run(ctx)
	cancel()

	switch {
	case err == nil:
		glog.Infof("interrupted, outputs closed")
		return nil
	case errors.Is(err, stream.ErrStreamClosed):
		return errors.Wrapf(err, "connection to %s lost", target.Address())
	default:
		return err
	}
}
