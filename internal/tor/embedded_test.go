package tor

import (
	"errors"
	"testing"
	"time"
)

// TestNewEmbeddedTor tests EmbeddedTor construction.
func TestNewEmbeddedTor(t *testing.T) {
	t.Parallel()

	t.Run("creates with default timeout", func(t *testing.T) {
		t.Parallel()

		embedded := NewEmbeddedTor()
		if embedded.startupTimeout != 3*time.Minute {
			t.Errorf("expected default timeout 3m, got %v", embedded.startupTimeout)
		}
		if embedded.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithStartupTimeout", func(t *testing.T) {
		t.Parallel()

		embedded := NewEmbeddedTor(WithStartupTimeout(5 * time.Minute))
		if embedded.startupTimeout != 5*time.Minute {
			t.Errorf("expected timeout 5m, got %v", embedded.startupTimeout)
		}
	})

	t.Run("ignores non-positive timeout", func(t *testing.T) {
		t.Parallel()

		embedded := NewEmbeddedTor(WithStartupTimeout(0))
		if embedded.startupTimeout != 3*time.Minute {
			t.Errorf("expected default timeout, got %v", embedded.startupTimeout)
		}
	})
}

// TestEmbeddedTorBeforeStart tests EmbeddedTor methods without starting Tor.
func TestEmbeddedTorBeforeStart(t *testing.T) {
	t.Parallel()

	embedded := NewEmbeddedTor()

	if embedded.IsRunning() {
		t.Error("expected IsRunning to be false before start")
	}
	if embedded.SocksAddr() != "" {
		t.Error("expected empty SocksAddr before start")
	}
	if _, err := embedded.ProxyURL(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
	if err := embedded.Stop(); err != nil {
		t.Errorf("expected no error stopping unstarted instance, got %v", err)
	}
	if err := embedded.Stop(); err != nil {
		t.Errorf("expected second Stop to be a no-op, got %v", err)
	}
}

// TestProxyURL tests the socks5 URL built from a known address.
func TestProxyURL(t *testing.T) {
	t.Parallel()

	embedded := NewEmbeddedTor()
	embedded.socksAddr = "127.0.0.1:42715"

	got, err := embedded.ProxyURL()
	if err != nil {
		t.Fatalf("ProxyURL() error = %v", err)
	}
	if got != "socks5://127.0.0.1:42715" {
		t.Errorf("unexpected proxy URL %q", got)
	}
}
