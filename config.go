package linktest

import "time"

const (
	DefaultBaudRate    = 115200
	DefaultDataBits    = 8
	DefaultReadTimeout = 3 * time.Second
)

// RS485Config holds half-duplex bus arbitration settings. When enabled,
// the transmitter (RTS) is raised only while sending, with optional
// settle delays around each transmission.
type RS485Config struct {
	Enabled            bool
	DelayRTSBeforeSend time.Duration
	DelayRTSAfterSend  time.Duration
}

// Config holds configuration for opening a serial port.
type Config struct {
	// Device is the path to the serial device, e.g. /dev/ttyUSB0.
	Device string

	BaudRate int
	DataBits int
	Parity   string // "N", "E" or "O"
	StopBits int    // 1 or 2

	// ReadTimeout bounds a single blocking read. A line read that does
	// not complete within it yields the bytes received so far.
	ReadTimeout time.Duration

	RS485 RS485Config
}

// DefaultConfig returns the configuration the diagnostic uses unless told
// otherwise: 115200 8N1, 3s response timeout, point-to-point.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		BaudRate:    DefaultBaudRate,
		DataBits:    DefaultDataBits,
		Parity:      ParityNone,
		StopBits:    1,
		ReadTimeout: DefaultReadTimeout,
	}
}
