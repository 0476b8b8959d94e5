package linktest

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const lineDelimiter = byte('\n')

// maxLineSize bounds line assembly; a line that grows past it is handed
// to the caller as-is, without a delimiter.
const maxLineSize = 4096

// Port owns an open serial channel and provides the line-oriented
// read/write primitives both echo roles run on. It hides whether the
// underlying medium is a point-to-point line or a half-duplex RS485 bus.
//
// A Port expects a single caller: the running role issues exactly one
// read or write at a time, so operations never overlap.
type Port struct {
	handle SerialPort
	cfg    Config
	log    zerolog.Logger

	metrics Metrics

	// pending holds bytes received past the last delimiter, carried
	// over into the next ReadLine call.
	pending []byte

	isOpen  atomic.Bool
	closeMu sync.Mutex
}

// Open opens and configures the serial channel described by cfg and
// drains any stale buffered input, so the first exchange cannot observe
// bytes from before this process started.
func Open(cfg Config, log zerolog.Logger) (*Port, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid serial port configuration: %w", err)
	}

	mode, err := cfg.mode()
	if err != nil {
		return nil, err
	}

	ok, err := isPortAvailable(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDevice, cfg.Device)
	}

	handle, err := openPort(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", cfg.Device, err)
	}

	p := &Port{handle: handle, cfg: cfg, log: log}

	if err := handle.SetReadTimeout(cfg.ReadTimeout); err != nil {
		return nil, p.failOpen(err)
	}

	if cfg.RS485.Enabled {
		// The transmitter idles disabled on a half-duplex bus.
		if err := handle.SetRTS(false); err != nil {
			return nil, p.failOpen(err)
		}
	}

	if err := p.DrainInput(); err != nil {
		return nil, p.failOpen(err)
	}

	p.isOpen.Store(true)
	log.Debug().
		Str("device", cfg.Device).
		Int("baud", cfg.BaudRate).
		Dur("read_timeout", cfg.ReadTimeout).
		Bool("rs485", cfg.RS485.Enabled).
		Msg("serial port opened")

	return p, nil
}

// failOpen closes the half-configured handle and joins any error from
// closing with the original error.
func (p *Port) failOpen(err error) error {
	if e := p.handle.Close(); e != nil {
		err = errors.Join(err, e)
	}
	p.handle = nil
	return err
}

// DrainInput discards any unread bytes already buffered by the driver.
func (p *Port) DrainInput() error {
	return p.handle.ResetInputBuffer()
}

// Metrics exposes the exchange counters of this port.
func (p *Port) Metrics() *Metrics {
	return &p.metrics
}

// ReadLine blocks until a full line (up to and including '\n') has been
// received or the configured timeout elapses. On timeout it returns
// whatever bytes arrived, possibly none, with a nil error; callers treat
// an incomplete line as a failed exchange. Bytes received past the
// delimiter are kept for the next call.
func (p *Port) ReadLine() ([]byte, error) {
	if !p.isOpen.Load() {
		return nil, ErrPortNotOpen
	}

	var line []byte

	// Carried-over bytes may already hold a complete line.
	if idx := bytes.IndexByte(p.pending, lineDelimiter); idx != -1 {
		line = append(line, p.pending[:idx+1]...)
		p.pending = p.pending[idx+1:]
		p.recordRead(line, true)
		return line, nil
	}
	line = append(line, p.pending...)
	p.pending = p.pending[:0]

	buf := getReadBuf()
	defer putReadBuf(buf)

	for {
		n, err := p.handle.Read(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Driver read timeout: hand back what we have.
			p.metrics.ReadTimeouts.Inc()
			p.recordRead(line, false)
			return line, nil
		}

		chunk := buf[:n]
		if idx := bytes.IndexByte(chunk, lineDelimiter); idx != -1 {
			line = append(line, chunk[:idx+1]...)
			p.pending = append(p.pending, chunk[idx+1:]...)
			p.recordRead(line, true)
			return line, nil
		}

		line = append(line, chunk...)
		if len(line) > maxLineSize {
			// Overly long line, hand it back undelimited.
			p.recordRead(line, false)
			return line, nil
		}
	}
}

func (p *Port) recordRead(line []byte, complete bool) {
	if complete {
		p.metrics.LinesRead.Inc()
	}
	p.metrics.BytesRead.Add(int64(len(line)))
}

// Write blocks until every byte of b has been handed to the driver.
// In RS485 mode the transmitter is enabled only for the duration of the
// write, honoring the configured pre/post transmit delays. Writing zero
// bytes is a no-op.
func (p *Port) Write(b []byte) error {
	if !p.isOpen.Load() {
		return ErrPortNotOpen
	}
	if len(b) == 0 {
		return nil
	}

	if p.cfg.RS485.Enabled {
		if err := p.handle.SetRTS(true); err != nil {
			return fmt.Errorf("enabling transmitter: %w", err)
		}
		if d := p.cfg.RS485.DelayRTSBeforeSend; d > 0 {
			time.Sleep(d)
		}
		defer func() {
			if d := p.cfg.RS485.DelayRTSAfterSend; d > 0 {
				time.Sleep(d)
			}
			if err := p.handle.SetRTS(false); err != nil {
				p.log.Warn().Err(err).Msg("disabling transmitter")
			}
		}()
	}

	written := 0
	for written < len(b) {
		n, err := p.handle.Write(b[written:])
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("partial write: %d of %d bytes written", written, len(b))
		}
		written += n
	}

	p.metrics.LinesWritten.Inc()
	p.metrics.BytesWritten.Add(int64(len(b)))
	return nil
}

// WriteLine writes b, appending the line delimiter if missing, so the
// peer's line-oriented read can delimit the payload.
func (p *Port) WriteLine(b []byte) error {
	if len(b) == 0 || b[len(b)-1] != lineDelimiter {
		b = append(append([]byte(nil), b...), lineDelimiter)
	}
	return p.Write(b)
}

// Close releases the underlying handle. It is safe to call multiple times.
func (p *Port) Close() error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()

	if !p.isOpen.Swap(false) {
		return nil
	}

	h := p.handle
	p.handle = nil
	if h == nil {
		return nil
	}
	return h.Close()
}
