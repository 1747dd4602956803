package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"

	"source-collector/internal/config"
	"source-collector/internal/diff"
	"source-collector/internal/listing"
	"source-collector/internal/sources"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitStale = 3
)

// Set by release ldflags.
var (
	version = "dev"
	commit  = ""
)

type rootOptions struct {
	configPath string
	verbose    bool
	checkPath  string
	writePath  string
}

// exitCodeError carries a specific process exit code up through cobra.
// A nil err means the message was already reported.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitCodeError{code: exitUsage, err: err} }

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer, fsys billy.Filesystem) int {
	cmd := newRootCmd(stdout, stderr, fsys)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.err != nil {
			fmt.Fprintln(stderr, "ERROR:", ec.err)
		}
		return ec.code
	}
	fmt.Fprintln(stderr, "ERROR:", err)
	return exitError
}

func newRootCmd(stdout, stderr io.Writer, fsys billy.Filesystem) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "find-sources",
		Short:         "List the engine's C++ sources in sorted order",
		Version:       buildVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts, stdout, stderr, fsys)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding roots, suffix and excludes")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-root counts and skipped paths to stderr")
	f.StringVar(&opts.checkPath, "check", "", "compare against a checked-in listing; print a diff and exit 3 when it is stale")
	f.StringVar(&opts.writePath, "write", "", "write the listing to this file instead of stdout")

	return cmd
}

func run(opts *rootOptions, stdout, stderr io.Writer, fsys billy.Filesystem) error {
	if opts.checkPath != "" && opts.writePath != "" {
		return usageError(errors.New("--check and --write are mutually exclusive"))
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return usageError(err)
		}
		cfg = loaded
	}
	if err := config.Validate(cfg); err != nil {
		return usageError(err)
	}

	paths, err := sources.Collect(fsys, cfg, log)
	if err != nil {
		return err
	}
	log.Debug("listing complete", "files", len(paths), "roots", len(cfg.Roots))

	switch {
	case opts.checkPath != "":
		return check(opts.checkPath, paths, stdout, log)
	case opts.writePath != "":
		if err := listing.Write(opts.writePath, paths); err != nil {
			return err
		}
		log.Debug("wrote listing", "path", opts.writePath)
		return nil
	default:
		return sources.Print(stdout, paths)
	}
}

func check(path string, paths []string, stdout io.Writer, log *slog.Logger) error {
	want, err := listing.Read(path)
	if err != nil {
		return err
	}
	patch, err := diff.Lines(want, paths, diff.Options{FromName: path, ToName: "current"})
	if err != nil {
		return err
	}
	if patch == "" {
		return nil
	}
	if _, err := io.WriteString(stdout, patch); err != nil {
		return fmt.Errorf("writing diff: %w", err)
	}
	log.Warn("listing is out of date", "path", path)
	return &exitCodeError{code: exitStale}
}

func buildVersion() string {
	if commit == "" {
		return version
	}
	return version + " (" + commit + ")"
}
