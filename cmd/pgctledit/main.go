// Command pgctledit edits the control file of a database cluster: it reads
// global/pg_control from a source data directory, applies requested field
// overrides, and writes the result, with a freshly computed CRC, into a
// destination data directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/INLOpen/pgctledit/config"
	"github.com/INLOpen/pgctledit/controlfile"
	"github.com/INLOpen/pgctledit/override"
	"github.com/INLOpen/pgctledit/walfile"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(os.Stderr, "pgctledit: error: %v\n", err)
			fmt.Fprintln(os.Stderr, `Try "pgctledit --help" for more information.`)
		}
		os.Exit(1)
	}
}

// cliOptions collects the raw flag values. Value options stay strings until
// buildOverrides validates them, so "not given" and "given as zero" remain
// distinguishable.
type cliOptions struct {
	pgDataIn  string
	pgDataOut string

	nextOid     string
	nextXid     string
	xidEpoch    string
	multiIDs    string
	multiOffset string
	commitTsIDs string
	oldestXid   string
	nextWALFile string
	walSegSize  string

	configPath string
	logLevel   string
	logOutput  string
	logFile    string
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "pgctledit",
		Short:         "Edit the control file of a database cluster",
		Long:          "pgctledit reads the control file from an input data directory,\napplies the requested value overrides, and writes the updated control\nfile into an output data directory (created if necessary).",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("too many command-line arguments (first is %q)", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pgctledit: error: %v\n", err)
				return err
			}
			applyConfigDefaults(opts, cfg)

			if opts.pgDataIn == "" || opts.pgDataOut == "" {
				return usagef("both input and output data directories must be specified")
			}

			ov, walName, err := buildOverrides(opts)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pgctledit: error: %v\n", err)
				return err
			}
			defer closeLog()

			if err := run(opts, ov, walName, logger); err != nil {
				logger.Error("control file edit failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&opts.pgDataIn, "pgdata-in", "D", "", "input data directory")
	f.StringVarP(&opts.pgDataOut, "pgdata-out", "d", "", "output data directory")
	f.StringVarP(&opts.commitTsIDs, "commit-timestamp-ids", "c", "", "set oldest and newest transactions bearing commit timestamp (XID,XID; zero means no change)")
	f.StringVarP(&opts.xidEpoch, "epoch", "e", "", "set next transaction ID epoch")
	f.StringVarP(&opts.nextWALFile, "next-wal-file", "l", "", "set minimum starting location for new WAL")
	f.StringVarP(&opts.multiIDs, "multixact-ids", "m", "", "set next and oldest multitransaction ID (MXID,MXID)")
	f.StringVarP(&opts.nextOid, "next-oid", "o", "", "set next OID")
	f.StringVarP(&opts.multiOffset, "multixact-offset", "O", "", "set next multitransaction offset")
	f.StringVarP(&opts.oldestXid, "oldest-transaction-id", "u", "", "set oldest transaction ID")
	f.StringVarP(&opts.nextXid, "next-transaction-id", "x", "", "set next transaction ID")
	f.StringVar(&opts.walSegSize, "wal-segsize", "", "size of WAL segments, in megabytes")
	f.StringVar(&opts.configPath, "config", "", "path to an optional YAML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "logging level (debug, info, warn, error)")
	f.StringVar(&opts.logOutput, "log-output", "", "log output (stdout, stderr, file, none)")
	f.StringVar(&opts.logFile, "log-file", "", "path to log file if output is 'file'")

	return cmd
}

// applyConfigDefaults fills in options the user did not pass on the command
// line from the config file; flags always win.
func applyConfigDefaults(opts *cliOptions, cfg *config.Config) {
	if opts.pgDataIn == "" {
		opts.pgDataIn = cfg.PGDataIn
	}
	if opts.pgDataOut == "" {
		opts.pgDataOut = cfg.PGDataOut
	}
	if opts.logLevel == "" {
		opts.logLevel = cfg.Logging.Level
	}
	if opts.logOutput == "" {
		opts.logOutput = cfg.Logging.Output
	}
	if opts.logFile == "" {
		opts.logFile = cfg.Logging.File
	}
}

// newLogger builds the slog logger from the resolved logging options. The
// returned func closes the log file, if any.
func newLogger(opts *cliOptions) (*slog.Logger, func(), error) {
	var level slog.Level
	switch strings.ToLower(opts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level: %s. Defaulting to info.\n", opts.logLevel)
		level = slog.LevelInfo
	}

	var output io.Writer = os.Stderr
	closeLog := func() {}
	switch strings.ToLower(opts.logOutput) {
	case "", "stderr":
		// Already set
	case "stdout":
		output = os.Stdout
	case "file":
		file, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.logFile, err)
		}
		output = file
		closeLog = func() { file.Close() }
	case "none":
		output = io.Discard
	}

	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})), closeLog, nil
}

// run drives the pipeline: load the source control file, apply the
// overrides, and persist into the destination data directory.
func run(opts *cliOptions, ov override.Overrides, walName string, logger *slog.Logger) error {
	// A CRC mismatch marks the loaded values as guessed; the loader warns
	// about it but nothing acts on the marker beyond that today.
	rec, _, err := controlfile.Read(opts.pgDataIn, logger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "If you are sure the data directory path is correct, execute\n  touch %s\nand try again.\n",
				controlfile.Path(opts.pgDataIn))
			return err
		}
		if errors.Is(err, controlfile.ErrRejected) {
			return fmt.Errorf("could not read control file from the input directory %q: %w", opts.pgDataIn, err)
		}
		return err
	}

	// The WAL file name can only be decoded once the segment size in effect
	// is known, which needs the loaded record.
	if walName != "" {
		segSize := rec.WalSegmentSize
		if ov.WalSegmentSize != 0 {
			segSize = ov.WalSegmentSize
		}
		tli, _, err := walfile.ParseFileName(walName, segSize)
		if err != nil {
			return err
		}
		ov.MinTimeline = tli
	}

	ov.Apply(rec)

	if err := controlfile.EnsureDataDir(opts.pgDataOut); err != nil {
		return err
	}
	if err := controlfile.Write(opts.pgDataOut, rec); err != nil {
		return err
	}

	logger.Info("control file updated", "path", controlfile.Path(opts.pgDataOut))
	return nil
}
