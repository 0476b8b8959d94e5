package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	linktest "github.com/nbuchwitz/test-serial"
)

func main() {
	Execute()
}

// Execute runs the CLI and maps any failure to a non-zero exit.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	device          string
	baud            int
	responseTimeout int
	rs485           bool
	configFile      string
	logLevel        string
	logFile         string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "test-serial",
		Short:         "Diagnose a serial or RS485 link with line-oriented echo exchanges",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.device, "device", "d", "", "serial device to use, e.g. /dev/ttyUSB0")
	pf.IntVarP(&opts.baud, "baud", "b", linktest.DefaultBaudRate, "baudrate for the interface")
	pf.IntVar(&opts.responseTimeout, "response-timeout", 3, "response timeout in seconds")
	pf.BoolVar(&opts.rs485, "rs485", false, "use the interface in RS485 (half-duplex bus) mode")
	pf.StringVar(&opts.configFile, "config", "", "optional TOML config file")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "optional JSON log file (rotated)")

	cmd.AddCommand(newServerCmd(opts))
	cmd.AddCommand(newClientCmd(opts))

	return cmd
}

// setup merges the config file (if any) with the CLI flags, builds the
// logger and opens the port. Flags set explicitly win over file values.
func setup(cmd *cobra.Command, opts *rootOptions) (*linktest.Port, zerolog.Logger, error) {
	cfg := linktest.DefaultConfig(opts.device)
	logCfg := linktest.LogConfig{Level: opts.logLevel, File: opts.logFile}

	if opts.configFile != "" {
		fileCfg, err := loadConfigFile(opts.configFile)
		if err != nil {
			return nil, zerolog.Nop(), err
		}
		fileCfg.apply(&cfg, &logCfg)
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Device = opts.device
	}
	if flags.Changed("baud") {
		cfg.BaudRate = opts.baud
	}
	if flags.Changed("response-timeout") {
		cfg.ReadTimeout = time.Duration(opts.responseTimeout) * time.Second
	}
	if flags.Changed("rs485") {
		cfg.RS485.Enabled = opts.rs485
	}
	if flags.Changed("log-level") {
		logCfg.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		logCfg.File = opts.logFile
	}

	if cfg.Device == "" {
		return nil, zerolog.Nop(), errors.New("no serial device given (use --device or a config file)")
	}

	log, err := linktest.NewLogger(logCfg)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	port, err := linktest.Open(cfg, log)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return port, log, nil
}
