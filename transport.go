package linktest

import (
	"time"

	gobug "go.bug.st/serial"
)

// allow tests to override external dependencies
var (
	openPort     = func(device string, mode *gobug.Mode) (SerialPort, error) { return gobug.Open(device, mode) }
	getPortsList = gobug.GetPortsList
)

// SerialPort abstracts the subset of go.bug.st/serial.Port used by this package.
type SerialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(d time.Duration) error
	SetRTS(level bool) error
	ResetInputBuffer() error
}
