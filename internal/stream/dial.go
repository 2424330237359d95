// internal/stream/dial.go
package stream

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Target is the debug server endpoint on the switch.
type Target struct {
	Host string
	Port int
}

// Address returns host:port.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Dial resolves and connects to the debug server.
// ONE attempt: no retries, no reconnection. Every resolved address is
// tried in turn within that attempt.
func Dial(ctx context.Context, t Target, timeout time.Duration) (*net.TCPConn, error) {
	if t.Host == "" {
		return nil, errors.New("dial: host required")
	}

	d := net.Dialer{Timeout: timeout}

	conn, err := d.DialContext(ctx, "tcp", t.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", t.Address())
	}

	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return nil, errors.Errorf("connect %s: unexpected connection type %T", t.Address(), conn)
	}

	glog.Infof("connected to %s (%s)", t.Address(), conn.RemoteAddr())
	return tcp, nil
}
