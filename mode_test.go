package linktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobug "go.bug.st/serial"
)

func TestConfigMode(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	cfg.Parity = ParityEven
	cfg.StopBits = 2

	mode, err := cfg.mode()
	require.NoError(t, err)

	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, gobug.EvenParity, mode.Parity)
	assert.Equal(t, gobug.TwoStopBits, mode.StopBits)
}

func TestParseParity(t *testing.T) {
	for in, want := range map[string]gobug.Parity{
		"":         gobug.NoParity,
		ParityNone: gobug.NoParity,
		ParityEven: gobug.EvenParity,
		ParityOdd:  gobug.OddParity,
	} {
		got, err := parseParity(in)
		require.NoError(t, err, "parity %q", in)
		assert.Equal(t, want, got, "parity %q", in)
	}

	_, err := parseParity("M")
	assert.Error(t, err)
}

func TestParseStopBits(t *testing.T) {
	for in, want := range map[int]gobug.StopBits{
		0: gobug.OneStopBit,
		1: gobug.OneStopBit,
		2: gobug.TwoStopBits,
	} {
		got, err := parseStopBits(in)
		require.NoError(t, err, "stop bits %d", in)
		assert.Equal(t, want, got, "stop bits %d", in)
	}

	_, err := parseStopBits(3)
	assert.Error(t, err)
}
