// internal/writer/modbus/client_test.go
package modbus

import (
	"testing"
	"time"
)

func TestNewEndpointClient_Timeouts(t *testing.T) {
	c, err := NewEndpointClient(Config{
		Endpoint:    "127.0.0.1:502",
		Timeout:     2 * time.Second,
		IdleTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.handler.Timeout != 2*time.Second {
		t.Fatalf("timeout: got %v", c.handler.Timeout)
	}
	if c.handler.IdleTimeout != 30*time.Second {
		t.Fatalf("idle timeout: got %v", c.handler.IdleTimeout)
	}
}

func TestNewEndpointClient_DefaultIdleTimeoutKept(t *testing.T) {
	c, err := NewEndpointClient(Config{Endpoint: "127.0.0.1:502"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.handler.IdleTimeout <= 0 {
		t.Fatalf("library default idle timeout must be kept, got %v", c.handler.IdleTimeout)
	}
}

func TestNewEndpointClient_EndpointRequired(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestPackRegisters_BigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x0102, 0xFFFE})
	want := []byte{0x01, 0x02, 0xFF, 0xFE}

	if string(got) != string(want) {
		t.Fatalf("got % X want % X", got, want)
	}
}
