package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/console"
	"github.com/onebus/fleet-console/internal/export"
)

func runResources(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return usageError("resources takes no arguments")
	}
	rows := make([][]string, 0, len(console.Resources()))
	for _, r := range console.Resources() {
		rows = append(rows, []string{
			r.Name, r.Path, strings.Join(r.Filters, ","), strings.Join(r.Options, ","),
		})
	}
	return writeTable(cmdCtx.Out, []string{"NAME", "PATH", "FILTERS", "OPTIONS"}, rows)
}

// openScreen resolves the resource name and opens its screen on the wired client.
func openScreen(cmdCtx *commandContext, name string) (console.Screen, error) {
	r, ok := console.Lookup(name)
	if !ok {
		return nil, usageError("unknown resource %q; one of %s", name, strings.Join(console.Names(), ", "))
	}
	app, err := cmdCtx.app()
	if err != nil {
		return nil, err
	}
	return r.Open(app.API, app.ListOptions()...), nil
}

func runList(cmdCtx *commandContext, args []string) error {
	var opts listOptions
	fs := newListFlagSet(cmdCtx, "list", &opts)
	pos, err := splitPositional(fs, args, 1)
	if err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	scr, err := openScreen(cmdCtx, pos[0])
	if err != nil {
		return err
	}
	listing, err := scr.List(cmdCtx.Ctx, opts.request())
	if err != nil {
		return err
	}
	return emitListing(cmdCtx, scr.Resource(), listing, opts)
}

func runGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	query := fs.String("query", "", "JMESPath expression applied to the record")
	pos, err := splitPositional(fs, args, 2)
	if err != nil {
		return err
	}
	if err := compileQuery(*query); err != nil {
		return err
	}
	id, err := parseID(pos[1])
	if err != nil {
		return err
	}

	scr, err := openScreen(cmdCtx, pos[0])
	if err != nil {
		return err
	}
	rec, err := scr.Get(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(cmdCtx.Out, rec, *query)
}

func runDelete(cmdCtx *commandContext, args []string) error {
	var opts listOptions
	fs := newListFlagSet(cmdCtx, "delete", &opts)
	fs.BoolVar(&opts.Yes, "yes", false, "Do not ask for confirmation")
	pos, err := splitPositional(fs, args, 2)
	if err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}
	id, err := parseID(pos[1])
	if err != nil {
		return err
	}

	scr, err := openScreen(cmdCtx, pos[0])
	if err != nil {
		return err
	}
	if !opts.Yes {
		ok, err := confirm(cmdCtx, fmt.Sprintf("Delete %s %d?", scr.Resource().Name, id))
		if err != nil {
			return err
		}
		if !ok {
			return writeln(cmdCtx.Out, "Cancelled.")
		}
	}

	listing, err := scr.Delete(cmdCtx.Ctx, id, opts.request())
	if err != nil {
		return err
	}
	if err := writef(cmdCtx.Out, "Deleted %s %d.\n", scr.Resource().Name, id); err != nil {
		return err
	}
	return emitListing(cmdCtx, scr.Resource(), listing, opts)
}

func runOptions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("options", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	all := fs.Bool("all", false, "Load every option endpoint the screens use")
	asJSON := fs.Bool("json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	paths := fs.Args()
	if *all {
		paths = console.OptionPaths()
	}
	if len(paths) == 0 {
		return usageError("at least one path or -all is required")
	}

	app, err := cmdCtx.app()
	if err != nil {
		return err
	}
	loaded, err := app.Options.Load(cmdCtx.Ctx, paths...)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(cmdCtx.Out, loaded, "")
	}

	rows := make([][]string, 0)
	for _, p := range paths {
		for _, o := range loaded[p] {
			rows = append(rows, []string{p, strconv.Itoa(o.Value), o.Name})
		}
	}
	return writeTable(cmdCtx.Out, []string{"PATH", "VALUE", "NAME"}, rows)
}

func runRaw(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("raw", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	params := kvFlag{}
	fs.Var(params, "param", "Query parameter as k=v; repeatable")
	query := fs.String("query", "", "JMESPath expression applied to the response")
	pos, err := splitPositional(fs, args, 1)
	if err != nil {
		return err
	}
	if err := compileQuery(*query); err != nil {
		return err
	}

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	app, err := cmdCtx.app()
	if err != nil {
		return err
	}
	out, err := app.API.Raw(cmdCtx.Ctx, pos[0], values)
	if err != nil {
		return err
	}
	return writeJSON(cmdCtx.Out, out, *query)
}

// emitListing prints listing as JSON or a table and writes the requested
// export files.
func emitListing(cmdCtx *commandContext, r console.Resource, listing console.Listing, opts listOptions) error {
	table := listing.Table(r)
	if opts.XLSX != "" {
		if err := writeFile(opts.XLSX, func(f *os.File) error { return export.WriteXLSX(f, table) }); err != nil {
			return err
		}
		cmdCtx.Logger.Info().Str("file", opts.XLSX).Int("rows", len(table.Rows)).Msg("spreadsheet written")
	}
	if opts.PDF != "" {
		if err := writeFile(opts.PDF, func(f *os.File) error { return export.WritePDF(f, table) }); err != nil {
			return err
		}
		cmdCtx.Logger.Info().Str("file", opts.PDF).Int("rows", len(table.Rows)).Msg("pdf written")
	}

	if opts.JSON || opts.Query != "" {
		return writeJSON(cmdCtx.Out, listing, opts.Query)
	}
	return writeListing(cmdCtx.Out, table, listing)
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("id must be a positive integer, got %q", s)
	}
	return id, nil
}

func confirm(cmdCtx *commandContext, prompt string) (bool, error) {
	if err := writef(cmdCtx.Err, "%s [y/N] ", prompt); err != nil {
		return false, err
	}
	answer, err := cmdCtx.readLine()
	if err != nil {
		return false, nil //nolint:nilerr // no input means no confirmation
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true, nil
	default:
		return false, nil
	}
}
