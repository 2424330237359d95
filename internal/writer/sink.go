// internal/writer/sink.go
package writer

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ---- FILE ----

// fileSink writes each line with a single write call. No buffering:
// the file is always complete up to the last written line.
type fileSink struct {
	f *os.File
}

func openFileSink(path string) (*fileSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open output %s", path)
	}
	return &fileSink{f: f}, nil
}

func (s *fileSink) WriteLine(line string) error {
	if _, err := io.WriteString(s.f, line); err != nil {
		return errors.Wrapf(err, "write %s", s.f.Name())
	}
	return nil
}

func (s *fileSink) Close() error {
	return s.f.Close()
}

func (s *fileSink) Name() string {
	return s.f.Name()
}

// ---- CONSOLE ----

// consoleSink writes to the process console. Close does not close it.
type consoleSink struct {
	w io.Writer
}

func (s *consoleSink) WriteLine(line string) error {
	if _, err := io.WriteString(s.w, line); err != nil {
		return errors.Wrap(err, "write console")
	}
	return nil
}

func (s *consoleSink) Close() error { return nil }

func (s *consoleSink) Name() string { return "console" }
