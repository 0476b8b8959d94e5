package linktest

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// serveUntilClosed runs Serve in the background and returns a channel
// carrying its result once the mock's script channel is closed.
func serveUntilClosed(ctx context.Context, s *Server) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	return done
}

func TestServerTransformsAndEchoes(t *testing.T) {
	p, m := newTestPort(t, DefaultConfig("/dev/ttyUSB0"))

	m.readCh <- []byte("TX_run_0\n")
	m.readCh <- []byte("hello_TX_TX\n")
	m.readCh <- []byte("TXTX\n")
	m.readCh <- []byte("no markers here\n")
	m.Close()

	done := serveUntilClosed(context.Background(), NewServer(p, zerolog.Nop()))
	if err := <-done; !errors.Is(err, errMockClosed) {
		t.Fatalf("Expected server to surface the driver error, got %v", err)
	}

	want := []string{"RX_run_0\n", "hello_RX_RX\n", "RXRX\n", "no markers here\n"}
	writes := m.writtenLines()
	if len(writes) != len(want) {
		t.Fatalf("Expected %d responses, got %d: %q", len(want), len(writes), writes)
	}
	for i, w := range want {
		if string(writes[i]) != w {
			t.Fatalf("Response %d: expected %q, got %q", i, w, writes[i])
		}
	}
}

func TestServerSkipsUndecodablePayload(t *testing.T) {
	p, m := newTestPort(t, DefaultConfig("/dev/ttyUSB0"))

	m.readCh <- []byte{0xff, 0xfe, 'T', 'X', '\n'}
	m.readCh <- []byte("TX_run_1\n")
	m.Close()

	done := serveUntilClosed(context.Background(), NewServer(p, zerolog.Nop()))
	<-done

	// The invalid payload produces no response, and serving continues.
	writes := m.writtenLines()
	if len(writes) != 1 {
		t.Fatalf("Expected exactly one response, got %d: %q", len(writes), writes)
	}
	if !bytes.Equal(writes[0], []byte("RX_run_1\n")) {
		t.Fatalf("Expected %q, got %q", "RX_run_1\n", writes[0])
	}
	if got := p.Metrics().DecodeFailures.Load(); got != 1 {
		t.Fatalf("Expected 1 decode failure recorded, got %d", got)
	}
}

func TestServerEchoesPartialRead(t *testing.T) {
	p, m := newTestPort(t, DefaultConfig("/dev/ttyUSB0"))

	m.readCh <- []byte("TX_half")
	m.readCh <- []byte{} // timeout, payload processed as-is
	m.Close()

	done := serveUntilClosed(context.Background(), NewServer(p, zerolog.Nop()))
	<-done

	writes := m.writtenLines()
	if len(writes) != 1 {
		t.Fatalf("Expected one response, got %d: %q", len(writes), writes)
	}
	if !bytes.Equal(writes[0], []byte("RX_half")) {
		t.Fatalf("Expected transformed partial %q, got %q", "RX_half", writes[0])
	}
}

func TestServerStopsOnCancellation(t *testing.T) {
	p, m := newTestPort(t, DefaultConfig("/dev/ttyUSB0"))

	ctx, cancel := context.WithCancel(context.Background())
	done := serveUntilClosed(ctx, NewServer(p, zerolog.Nop()))

	cancel()
	// Unblock the read the server may be sitting in; the cancellation is
	// honored at the top of the next iteration.
	m.readCh <- []byte{}

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Server did not stop after cancellation")
	}

	if writes := m.writtenLines(); len(writes) != 0 {
		t.Fatalf("Expected no responses, got %q", writes)
	}
}
