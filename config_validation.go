package linktest

import "fmt"

// ValidateConfig validates serial port configuration parameters.
func ValidateConfig(cfg Config) error {
	if cfg.Device == "" {
		return fmt.Errorf("device cannot be empty")
	}
	if !isValidPortPattern(cfg.Device) {
		return fmt.Errorf("device %q does not look like a serial port", cfg.Device)
	}

	if !isSupportedBaudRate(cfg.BaudRate) {
		return fmt.Errorf("invalid baud rate %d, must be one of: %v", cfg.BaudRate, supportedBaudRates)
	}

	// Zero means the driver default (8).
	if cfg.DataBits != 0 && (cfg.DataBits < 5 || cfg.DataBits > 8) {
		return fmt.Errorf("data bits must be 5-8, got: %d", cfg.DataBits)
	}

	if _, err := parseParity(cfg.Parity); err != nil {
		return err
	}
	if _, err := parseStopBits(cfg.StopBits); err != nil {
		return err
	}

	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("read timeout cannot be negative: %v", cfg.ReadTimeout)
	}

	if cfg.RS485.DelayRTSBeforeSend < 0 || cfg.RS485.DelayRTSAfterSend < 0 {
		return fmt.Errorf("RS485 RTS delays cannot be negative")
	}

	return nil
}

func isSupportedBaudRate(rate int) bool {
	for _, v := range supportedBaudRates {
		if rate == v {
			return true
		}
	}
	return false
}
