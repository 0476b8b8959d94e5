package linktest

import (
	"fmt"

	gobug "go.bug.st/serial"
)

const (
	ParityNone = "N"
	ParityEven = "E"
	ParityOdd  = "O"
)

// supportedBaudRates lists the rates accepted by ValidateConfig.
var supportedBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

// mode translates the Config into the underlying driver mode.
func (c Config) mode() (*gobug.Mode, error) {
	parity, err := parseParity(c.Parity)
	if err != nil {
		return nil, err
	}
	stopBits, err := parseStopBits(c.StopBits)
	if err != nil {
		return nil, err
	}
	return &gobug.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		Parity:   parity,
		StopBits: stopBits,
	}, nil
}

func parseParity(s string) (gobug.Parity, error) {
	switch s {
	case "", ParityNone:
		return gobug.NoParity, nil
	case ParityEven:
		return gobug.EvenParity, nil
	case ParityOdd:
		return gobug.OddParity, nil
	}
	return gobug.NoParity, fmt.Errorf("unsupported parity %q (use N, E or O)", s)
}

func parseStopBits(n int) (gobug.StopBits, error) {
	switch n {
	case 0, 1:
		return gobug.OneStopBit, nil
	case 2:
		return gobug.TwoStopBits, nil
	}
	return gobug.OneStopBit, fmt.Errorf("unsupported stop bits %d (use 1 or 2)", n)
}
