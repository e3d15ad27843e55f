// Command fleetctl is the terminal client of the fleet management backend.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/onebus/fleet-console/config"
	"github.com/onebus/fleet-console/internal/bootstrap"
	"github.com/rs/zerolog"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger zerolog.Logger
	Config config.AppConfig
	In     io.Reader
	Out    io.Writer
	Err    io.Writer

	console *bootstrap.Console
	reader  *bufio.Reader
}

// errUsage marks argument errors; the command's usage line is printed with them.
var errUsage = errors.New("invalid arguments")

func main() {
	cfg, cfgErr := bootstrap.LoadConfig()
	logger := bootstrap.InitLogger(cfg.Log)
	if cfgErr != nil {
		logger.Error().Err(cfgErr).Msg("load config")
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
	code := run(cmdCtx, os.Args[1:])
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate command status to callers
}

// run dispatches args[0] and returns the process exit status.
func run(cmdCtx *commandContext, args []string) int {
	defer cmdCtx.close()

	if len(args) < 1 {
		_ = printUsage(cmdCtx.Err)
		return 2
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		_ = printUsage(cmdCtx.Out)
		return 0
	}
	cmd, ok := commands()[name]
	if !ok {
		_ = writef(cmdCtx.Err, "unknown command %q\n\n", name)
		_ = printUsage(cmdCtx.Err)
		return 2
	}

	if err := cmd.run(cmdCtx, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			_ = writef(cmdCtx.Err, "%v\nusage: fleetctl %s %s\n", err, cmd.name, cmd.usage)
			return 2
		}
		cmdCtx.Logger.Debug().Err(err).Str("command", name).Msg("command failed")
		_ = writef(cmdCtx.Err, "error: %s\n", errorText(err))
		return 1
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name: "login", usage: "-email <email> [-password <password>]",
			description: "Authenticate and store the session token",
			run:         runLogin,
		},
		"logout": {
			name: "logout", description: "Forget the session token",
			run: runLogout,
		},
		"whoami": {
			name: "whoami", description: "Show the claims of the current session token",
			run: runWhoami,
		},
		"resources": {
			name: "resources", description: "List the resources, their filters and option endpoints",
			run: runResources,
		},
		"list": {
			name: "list", usage: "<resource> [-search s] [-filter k=v]... [-page n] [-page-size n] [-sort field:dir] [-query expr] [-json] [-xlsx file] [-pdf file]",
			description: "Fetch one page of a resource",
			run:         runList,
		},
		"get": {
			name: "get", usage: "<resource> <id> [-query expr]",
			description: "Fetch one record",
			run:         runGet,
		},
		"delete": {
			name: "delete", usage: "<resource> <id> [-yes] [list flags]",
			description: "Delete one record and show the refreshed page",
			run:         runDelete,
		},
		"options": {
			name: "options", usage: "[-all] <path>...",
			description: "Show enum options such as /employees/roles",
			run:         runOptions,
		},
		"raw": {
			name: "raw", usage: "<path> [-param k=v]... [-query expr]",
			description: "GET any backend path and print its value as JSON",
			run:         runRaw,
		},
		"window": {
			name: "window", usage: "<page> <total-pages>",
			description: "Show the page controls for a zero-based page",
			run:         runWindow,
		},
		"cpf": {
			name: "cpf", usage: "<value>",
			description: "Check a CPF and print it masked",
			run:         runCPF,
		},
		"mask": {
			name: "mask", usage: "<cpf|phone|rg|cnh> <value>",
			description: "Apply a form input mask",
			run:         runMask,
		},
		"today": {
			name: "today", description: "Print today's date as forms expect it",
			run: runToday,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: fleetctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// app returns the wired client, building it on first use.
func (c *commandContext) app() (*bootstrap.Console, error) {
	if c.console != nil {
		return c.console, nil
	}
	app, err := bootstrap.NewConsole(c.Ctx, bootstrap.ConsoleDeps{
		Config: c.Config,
		Logger: c.Logger,
		OnUnauthorized: func() {
			_ = writeln(c.Err, "session expired or missing; run `fleetctl login`")
		},
	})
	if err != nil {
		return nil, err
	}
	c.console = app
	return app, nil
}

func (c *commandContext) close() {
	if c.console == nil {
		return
	}
	if err := c.console.Close(); err != nil {
		c.Logger.Warn().Err(err).Msg("close console")
	}
	c.console = nil
}

// readLine reads one line of user input without the line ending.
func (c *commandContext) readLine() (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
