// cmd/spll-stats/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/tamzrod/spll-reader/internal/analysis"
)

func main() {
	_ = flag.Set("logtostderr", "true")

	var plotPath string
	flag.StringVar(&plotPath, "plot", "", "also plot the series to `file` (.pdf, .png, .svg)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-plot out.pdf] CHANNEL_FILE\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	in := flag.Arg(0)

	f, err := os.Open(in)
	if err != nil {
		glog.Exitf("open %s: %v", in, err)
	}
	series, err := analysis.ReadChannel(f)
	_ = f.Close()
	if err != nil {
		glog.Exitf("%s: %v", in, err)
	}

	sum, err := analysis.Summarize(series)
	if err != nil {
		glog.Exitf("%s: %v", in, err)
	}
	if err := sum.Print(os.Stdout); err != nil {
		glog.Exitf("print: %v", err)
	}

	if plotPath == "" {
		return
	}
	if err := analysis.Plot(series, filepath.Base(in), plotPath); err != nil {
		glog.Exitf("%v", err)
	}
	glog.Infof("plot written to %s", plotPath)
}
