// Command estimate is a terminal front-end for the HVAC estimate API.
//
//	estimate [--server URL] [--verbose] <command> [flags]
//
// Commands: download, save, list, get, search, delete, stats, health.
// download and save take the form fields as flags, validate them the same
// way the form does and only contact the server when the form is valid.
//
// Exit codes: 0 = success, 1 = error, 2 = usage or validation error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/hvac-estimate/internal/client"
)

// usageError marks errors that should exit with status 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }
func (e usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// env carries what every command needs.
type env struct {
	api    *client.Client
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"download": {"render the form as a PDF or Excel file", runDownload},
	"save":     {"store the form as a new estimate", runSave},
	"list":     {"list stored estimates, newest first", runList},
	"get":      {"show one estimate by id", runGet},
	"search":   {"search estimates by unit, model, location or issue", runSearch},
	"delete":   {"delete an estimate by id", runDelete},
	"stats":    {"show aggregate figures", runStats},
	"health":   {"show server health", runHealth},
}

var commandOrder = []string{"download", "save", "list", "get", "search", "delete", "stats", "health"}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		server  string
		verbose bool
	)

	fs := pflag.NewFlagSet("estimate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&server, "server", envOr("ESTIMATE_SERVER_URL", client.DefaultBaseURL), "API base URL")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log requests at debug level")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError{msg: err.Error()}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr, fs)
		return usagef("missing command")
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stderr, fs)
		return usagef("unknown command %q", rest[0])
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	e := &env{
		api:    client.New(server, client.WithLogger(logger)),
		stdout: stdout,
		stderr: stderr,
	}
	return cmd.run(ctx, e, rest[1:])
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: estimate [flags] <command> [command flags]")
	fmt.Fprintln(w, "\nCommands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, fs.FlagUsages())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
