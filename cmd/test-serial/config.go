package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	linktest "github.com/nbuchwitz/test-serial"
)

// fileConfig is the TOML layout of the optional --config file:
//
//	[serial]
//	device = "/dev/ttyUSB0"
//	baud = 115200
//	response_timeout_seconds = 3
//	data_bits = 8
//	parity = "N"
//	stop_bits = 1
//	rs485 = false
//	rts_delay_before_send_ms = 0
//	rts_delay_after_send_ms = 0
//
//	[log]
//	level = "info"
//	file = ""
type fileConfig struct {
	Serial serialSection `toml:"serial"`
	Log    logSection    `toml:"log"`
}

type serialSection struct {
	Device                 string `toml:"device"`
	Baud                   int    `toml:"baud"`
	ResponseTimeoutSeconds int    `toml:"response_timeout_seconds"`
	DataBits               int    `toml:"data_bits"`
	Parity                 string `toml:"parity"`
	StopBits               int    `toml:"stop_bits"`
	RS485                  bool   `toml:"rs485"`
	RTSDelayBeforeSendMs   int    `toml:"rts_delay_before_send_ms"`
	RTSDelayAfterSendMs    int    `toml:"rts_delay_after_send_ms"`
}

type logSection struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &fileConfig{}
	if _, err := toml.Decode(string(raw), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// apply copies the file values over the defaults. Zero values in the file
// leave the defaults untouched.
func (fc *fileConfig) apply(cfg *linktest.Config, logCfg *linktest.LogConfig) {
	s := fc.Serial
	if s.Device != "" {
		cfg.Device = s.Device
	}
	if s.Baud != 0 {
		cfg.BaudRate = s.Baud
	}
	if s.ResponseTimeoutSeconds != 0 {
		cfg.ReadTimeout = time.Duration(s.ResponseTimeoutSeconds) * time.Second
	}
	if s.DataBits != 0 {
		cfg.DataBits = s.DataBits
	}
	if s.Parity != "" {
		cfg.Parity = s.Parity
	}
	if s.StopBits != 0 {
		cfg.StopBits = s.StopBits
	}

	cfg.RS485.Enabled = cfg.RS485.Enabled || s.RS485
	if s.RTSDelayBeforeSendMs > 0 {
		cfg.RS485.DelayRTSBeforeSend = time.Duration(s.RTSDelayBeforeSendMs) * time.Millisecond
	}
	if s.RTSDelayAfterSendMs > 0 {
		cfg.RS485.DelayRTSAfterSend = time.Duration(s.RTSDelayAfterSendMs) * time.Millisecond
	}

	if fc.Log.Level != "" {
		logCfg.Level = fc.Log.Level
	}
	if fc.Log.File != "" {
		logCfg.File = fc.Log.File
	}
}
