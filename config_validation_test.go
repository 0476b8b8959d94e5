package linktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigDefaults(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig("/dev/ttyUSB0")))
	require.NoError(t, ValidateConfig(DefaultConfig("COM3")))
	require.NoError(t, ValidateConfig(DefaultConfig("/dev/cu.usbserial-1420")))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty device",
			mutate:  func(c *Config) { c.Device = "" },
			wantErr: "device cannot be empty",
		},
		{
			name:    "path traversal",
			mutate:  func(c *Config) { c.Device = "/dev/tty/../../etc/passwd" },
			wantErr: "does not look like a serial port",
		},
		{
			name:    "not a serial device",
			mutate:  func(c *Config) { c.Device = "/tmp/fakeport" },
			wantErr: "does not look like a serial port",
		},
		{
			name:    "unsupported baud rate",
			mutate:  func(c *Config) { c.BaudRate = 12345 },
			wantErr: "invalid baud rate",
		},
		{
			name:    "data bits out of range",
			mutate:  func(c *Config) { c.DataBits = 3 },
			wantErr: "data bits must be 5-8",
		},
		{
			name:    "unknown parity",
			mutate:  func(c *Config) { c.Parity = "X" },
			wantErr: "unsupported parity",
		},
		{
			name:    "unsupported stop bits",
			mutate:  func(c *Config) { c.StopBits = 3 },
			wantErr: "unsupported stop bits",
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.ReadTimeout = -time.Second },
			wantErr: "read timeout cannot be negative",
		},
		{
			name:    "negative RTS delay",
			mutate:  func(c *Config) { c.RS485.DelayRTSBeforeSend = -time.Millisecond },
			wantErr: "RTS delays cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/dev/ttyUSB0")
			tt.mutate(&cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfigAllowsDriverDefaults(t *testing.T) {
	// Zero data/stop bits mean "use the driver default".
	cfg := Config{Device: "/dev/ttyUSB0", BaudRate: 9600}
	assert.NoError(t, ValidateConfig(cfg))
}
