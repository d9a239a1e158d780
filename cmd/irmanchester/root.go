package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/danmuck/irmanchester/internal/capture"
	"github.com/danmuck/irmanchester/internal/config"
	"github.com/danmuck/irmanchester/internal/ir"
	"github.com/danmuck/irmanchester/internal/logging"
	logruslog "github.com/danmuck/irmanchester/internal/logging/logrus"
	zaplog "github.com/danmuck/irmanchester/internal/logging/zap"
	"github.com/danmuck/irmanchester/internal/observability"
)

type app struct {
	configPath  string
	metricsPath string
	cfg         config.Config
	logger      logging.Logger
	registry    *ir.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), registry: ir.DefaultRegistry()}

	root := &cobra.Command{
		Use:           "irmanchester",
		Short:         "Encode and decode IR Manchester pulse trains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config path")
	root.PersistentFlags().StringVar(&a.metricsPath, "metrics", "", "write codec metrics in Prometheus text format to this path after a successful run")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newConvertCmd(a),
		newProtocolsCmd(a),
		newConfigCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	lc := a.cfg.LoggingConfig()
	lc.Out = cmd.ErrOrStderr()
	logging.ApplyEnv(&lc)
	a.logger = newLogger(lc)
	return nil
}

// newLogger installs the global zerolog logger and returns the Logger for
// lc.Backend.
func newLogger(lc logging.Config) logging.Logger {
	zl := logging.Apply(lc)
	switch lc.Backend {
	case logging.BackendZap:
		return zaplog.New(lc)
	case logging.BackendLogrus:
		return logruslog.New(lc)
	default:
		return logging.Zerolog{L: zl}
	}
}

func (a *app) writeMetrics() error {
	if a.metricsPath == "" {
		return nil
	}
	f, err := os.Create(a.metricsPath)
	if err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	if err := observability.WriteText(f, prometheus.DefaultGatherer); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) codec(format string) (capture.Codec, error) {
	if format == "" {
		format = a.cfg.Capture.Format
	}
	inner, err := capture.ByName(format)
	if err != nil {
		return nil, err
	}
	return capture.Limit{Inner: inner, MaxDecode: a.cfg.Capture.MaxBytes}, nil
}

func (a *app) log() logging.Logger {
	if a.logger == nil {
		return logging.Nop{}
	}
	return a.logger
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return nil, fmt.Errorf("input path required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func writeOutput(cmd *cobra.Command, path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
