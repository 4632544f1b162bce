// Command karagen generates a Karabiner-Elements configuration with a leader
// key, hyper sublayers and vim navigation for Finder and Slack.
//
// Usage:
//
//	karagen [flags]
//
// Flags:
//
//	-o, --output string         File to write, or '-' for stdout (default "karabiner.json")
//	-p, --profile string        Profile name (default "Default")
//	    --merge                 Replace only the named profile in an existing output file
//	-n, --dry-run               Print the document instead of writing it
//	    --check                 Verify the rules and print the findings
//	    --cheatsheet            Print the leader key menu
//	    --caps-lock string      Caps lock behavior: control, hyper or none (default "control")
//	    --hyper-layers          Add the hyper sublayers (requires --caps-lock=hyper)
//	    --leader-timeout int    Leave the leader after this many idle milliseconds (0 never does)
//	    --strict                Fail when the checker reports errors (default true)
//	    --config string         Path to the configuration file
//	-v, --verbose               Verbose output
//	    --debug                 Debug output
//	-h, --help                  Display help information
//
// Settings are read from flags, KARAGEN_ environment variables and a YAML
// config file, in that order of precedence.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/karagen/karagen/generate"
	"github.com/karagen/karagen/options"
)

func main() {
	opts, fs, err := initFlags(os.Args, os.Stdout, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := NewLogger(opts.Stderr, opts.Verbose, opts.DebugMode)
	defer logger.Sync()

	if err := run(ctx, opts, fs, logger); err != nil {
		printError(opts.Stderr, err)
		os.Exit(1)
	}
}

func initFlags(args []string, stdout, stderr io.Writer) (options.RunOptions, *pflag.FlagSet, error) {
	opts := options.RunOptions{Stdout: stdout, Stderr: stderr}

	fs := pflag.NewFlagSet("karagen", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(stderr)

	fs.StringP("output", "o", options.DefaultOutput, "File to write, or '-' for stdout")
	fs.StringP("profile", "p", options.DefaultProfile, "Profile name")
	fs.Bool("merge", false, "Replace only the named profile in an existing output file")
	fs.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print the document instead of writing it")
	fs.BoolVar(&opts.Check, "check", false, "Verify the rules and print the findings")
	fs.BoolVar(&opts.Cheatsheet, "cheatsheet", false, "Print the leader key menu")
	fs.String("caps-lock", options.DefaultCapsLock, "Caps lock behavior: control, hyper or none")
	fs.Bool("hyper-layers", false, "Add the hyper sublayers (requires --caps-lock=hyper)")
	fs.Int("leader-timeout", 0, "Leave the leader after this many idle milliseconds (0 never does)")
	fs.Bool("strict", true, "Fail when the checker reports errors")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the configuration file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&opts.DebugMode, "debug", false, "Debug output")
	help := fs.BoolP("help", "h", false, "Display help information")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "karagen generates a Karabiner-Elements configuration")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage of karagen:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr, `
Examples:
	$ karagen -o ~/.config/karabiner/karabiner.json --merge
	$ karagen --check
	$ karagen --cheatsheet`)
	}

	if len(args) > 0 {
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if *help {
		fs.Usage()
		return opts, fs, pflag.ErrHelp
	}
	if fs.NArg() > 0 {
		return opts, fs, errors.WithHint(errors.Newf("unexpected arguments: %v", fs.Args()),
			"karagen takes flags only, see --help")
	}
	opts.Color = isTerminal(stdout)
	return opts, fs, nil
}

func run(ctx context.Context, opts options.RunOptions, fs *pflag.FlagSet, logger *zap.SugaredLogger) error {
	cfg, err := options.LoadConfig(opts.ConfigPath, opts.Stderr, fs)
	if err != nil {
		return err
	}
	opts.Config = cfg

	s, err := generate.New(cfg,
		generate.WithStdout(opts.Stdout),
		generate.WithStderr(opts.Stderr),
		generate.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return s.Run(ctx, opts)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "karagen: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}
