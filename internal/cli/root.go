// Package cli wires configuration, storage, journal and metrics around the
// form restyle pipeline and exposes it as the update-forms command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"formrestyle/internal/blob"
	"formrestyle/internal/config"
	"formrestyle/internal/formstyle"
	"formrestyle/internal/journal"
	"formrestyle/internal/logger"
	"formrestyle/internal/metrics"
	"formrestyle/internal/patch"
)

// usageError marks bad flags or arguments; they exit 2 like config errors.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// Run executes update-forms with the provided args and IO and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(args, stdout, stderr, os.Getenv)
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cmd := newRootCmd(stdout, stderr, getenv)
	if len(args) > 0 {
		args = args[1:]
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "update-forms: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, config.ErrInvalidConfig) {
		return 2
	}
	return 1
}

type flags struct {
	configPath      string
	root            string
	debug           bool
	journalDSN      string
	metricsTextfile string
}

func newRootCmd(stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "update-forms",
		Short:         "Restyle the careers application forms in place",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments %v", args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath, getenv)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			return execute(cmd.Context(), cfg, f.debug, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	cmd.Flags().StringVar(&f.configPath, "config", "", "optional YAML config file")
	cmd.Flags().StringVar(&f.root, "root", "", "directory holding the forms (fs driver; default working directory)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "log every step decision with source locations")
	cmd.Flags().StringVar(&f.journalDSN, "journal-dsn", "", "record outcomes to this journal database")
	cmd.Flags().StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	return cmd
}

func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	if cmd.Flags().Changed("root") {
		cfg.Blob.FSRoot = f.root
	}
	if cmd.Flags().Changed("journal-dsn") {
		cfg.Journal.DSN = f.journalDSN
	}
	if cmd.Flags().Changed("metrics-textfile") {
		cfg.Metrics.Textfile = f.metricsTextfile
	}
}

func execute(ctx context.Context, cfg config.Config, debug bool, stdout, stderr io.Writer) (retErr error) {
	log, err := logger.New(stderr, logger.Config{Level: cfg.Log.Level, Debug: debug})
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	store, err := blob.Open(ctx, blob.Config{
		Driver: blob.Driver(cfg.Blob.Driver),
		FSRoot: cfg.Blob.FSRoot,
		S3: blob.S3Config{
			Bucket:    cfg.Blob.S3.Bucket,
			Prefix:    cfg.Blob.S3.Prefix,
			Region:    cfg.Blob.S3.Region,
			Endpoint:  cfg.Blob.S3.Endpoint,
			PathStyle: cfg.Blob.S3.PathStyle,
		},
	})
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	m := metrics.New()
	opts := []patch.Option{
		patch.WithOutput(stdout),
		patch.WithLogger(log),
		patch.WithRecorder(m),
	}
	if cfg.Journal.DSN != "" {
		j, err := journal.Open(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer func() {
			if cerr := j.Close(); cerr != nil && retErr == nil {
				retErr = cerr
			}
		}()
		opts = append(opts, patch.WithJournal(j))
	}

	_, runErr := patch.New(store, formstyle.Steps(), opts...).Run(ctx, formstyle.Targets)
	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Error("metrics.write_failed", "path", cfg.Metrics.Textfile, "error", err)
			if runErr == nil {
				return err
			}
		}
	}
	return runErr
}
