package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/config"
	"github.com/wippyai/arraybridge/convert"
	"github.com/wippyai/arraybridge/device"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/internal/scenario"
	"github.com/wippyai/arraybridge/metrics"
)

type app struct {
	log        *zap.Logger
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Defaults()}
	root := &cobra.Command{
		Use:           "arraybridge",
		Short:         "Convert source-runtime arrays into host arrays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (.yaml, .toml or .json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newRunCmd(a), newInspectCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log
	convert.SetLogger(log.Named("convert"))
	device.SetLogger(log.Named("device"))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	if lvl > zapcore.DebugLevel {
		zc = zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// specs returns the configured arrays, or the demo set when none are given.
func (a *app) specs() []config.ArraySpec {
	if len(a.cfg.Arrays) > 0 {
		return a.cfg.Arrays
	}
	return scenario.Demo()
}

// session is one opened device with a converter reporting into reg.
type session struct {
	dev     arraybridge.Device
	builder *scenario.Builder
	conv    *convert.Converter
	reg     *prometheus.Registry
	unified bool
}

func (a *app) open(ctx context.Context, log *zap.Logger) (*session, error) {
	alloc, err := host.NewAllocator(a.cfg.Allocator)
	if err != nil {
		return nil, err
	}
	dev, err := device.Open(ctx, a.cfg.Device, a.cfg.WasmPages)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	s := &session{
		dev:     dev,
		builder: scenario.NewBuilder(dev),
		reg:     reg,
		unified: a.cfg.Unified(dev),
	}
	s.conv = convert.New(convert.Options{
		Unified:   s.unified,
		Allocator: alloc,
		Logger:    log,
		Metrics:   metrics.New(reg),
	})
	return s, nil
}

func (s *session) Close(ctx context.Context) error {
	return s.dev.Close(ctx)
}
