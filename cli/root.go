package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noxshift/config"
	customerrors "noxshift/errors"
	"noxshift/logging"
)

// RootOptions holds global flags and the state built from them before a
// command runs.
type RootOptions struct {
	Verbose     bool
	Format      string // "text" | "json" | "csv"
	ConfigPath  string
	MetricsAddr string
	PushURL     string
	Wait        bool

	Config *config.Config
	Logger *zap.Logger

	metrics *metricsServer
	ready   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "csv"}

// NewRootCommand creates the root command for the noxshift CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "noxshift",
		Short: "NoxShift - shift pay differentials and roster conflicts",
		Long: `Computes shift pay with night, weekend, holiday, overtime, hazard and
on-call differentials, and checks rosters for double-booking, overtime
and understaffing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|csv)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "address to expose Prometheus metrics (e.g. :9090)")
	cmd.PersistentFlags().StringVar(&opts.PushURL, "push-url", "", "Pushgateway URL to push metrics to (e.g. http://localhost:9091)")
	cmd.PersistentFlags().BoolVar(&opts.Wait, "wait", false, "keep serving metrics after the command until interrupted")

	// Add subcommands
	cmd.AddCommand(NewPayCommand(opts))
	cmd.AddCommand(NewWarnCommand(opts))
	cmd.AddCommand(NewConflictsCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	// cobra skips PersistentPostRunE when RunE fails, so teardown is bound
	// to each subcommand's run instead.
	for _, sub := range cmd.Commands() {
		sub.RunE = opts.withTeardown(sub.RunE)
	}

	return cmd
}

// setup validates global flags, loads config and builds the logger.
// Flags win over config values.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return WrapExitError(ExitCommandError, "invalid --format",
			fmt.Errorf("%w %q: must be one of %v", customerrors.ErrInvalidFormat, o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.Config = cfg
	if o.MetricsAddr == "" {
		o.MetricsAddr = cfg.MetricsAddr
	}
	if o.PushURL == "" {
		o.PushURL = cfg.PushURL
	}

	logger, err := logging.New(o.Verbose, cfg.LogLevel)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build logger", err)
	}
	o.Logger = logger.With(zap.String("command", cmd.Name()))
	o.ready = true

	if o.MetricsAddr != "" {
		o.metrics = startMetricsServer(o.MetricsAddr, o.Logger)
	}
	return nil
}

// withTeardown wraps a command run so teardown follows it on every exit path.
func (o *RootOptions) withTeardown(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer o.teardown(cmd)
		return run(cmd, args)
	}
}

// teardown pushes metrics, stops the metrics server and flushes the logger.
// It does nothing unless setup completed.
func (o *RootOptions) teardown(cmd *cobra.Command) {
	if !o.ready {
		return
	}
	o.ready = false
	logger := o.logger()
	defer logger.Sync() //nolint:errcheck

	if o.PushURL != "" {
		if err := pushMetrics(o.PushURL); err != nil {
			logger.Warn("Pushing metrics failed", zap.String("url", o.PushURL), zap.Error(err))
		} else {
			logger.Info("Metrics pushed", zap.String("url", o.PushURL))
		}
	}

	if o.metrics != nil {
		if o.Wait {
			logger.Info("Serving metrics until interrupted", zap.String("addr", o.MetricsAddr))
			waitForInterrupt(cmd.Context())
		}
		o.metrics.stop(logger)
		o.metrics = nil
	}
}

// logger returns the configured logger, or a no-op one when a command runs
// without the root pre-run (as in tests).
func (o *RootOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// settings returns the loaded config, or defaults.
func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		return config.DefaultConfig()
	}
	return o.Config
}

// render writes the output in the selected format.
func (o *RootOptions) render(w io.Writer, text, json, csv func() string) error {
	var err error
	switch o.Format {
	case "json":
		_, err = fmt.Fprintln(w, json())
	case "csv":
		_, err = fmt.Fprint(w, csv())
	default:
		_, err = fmt.Fprint(w, text())
	}
	return err
}
