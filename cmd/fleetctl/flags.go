package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/jmespath-community/go-jmespath"
	"github.com/onebus/fleet-console/internal/console"
	"github.com/onebus/fleet-console/internal/fleetapi"
)

// kvFlag collects repeated k=v flags.
type kvFlag map[string]string

func (f kvFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f[k]
	}
	return strings.Join(parts, ",")
}

func (f kvFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	f[strings.TrimSpace(k)] = strings.TrimSpace(val)
	return nil
}

type listOptions struct {
	Search   string
	Filters  kvFlag
	Page     int
	PageSize int
	Sort     string
	Query    string
	JSON     bool
	XLSX     string
	PDF      string
	Yes      bool
}

func (o listOptions) request() console.ListRequest {
	field, dir := fleetapi.ParseSort(o.Sort)
	return console.ListRequest{
		Search:     o.Search,
		Filters:    o.Filters,
		Page:       o.Page - 1,
		PageSize:   o.PageSize,
		OrderField: field,
		OrderType:  dir,
	}
}

func newListFlagSet(cmdCtx *commandContext, name string, opts *listOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	opts.Filters = kvFlag{}
	fs.StringVar(&opts.Search, "search", "", "Free-text search")
	fs.Var(opts.Filters, "filter", "Filter as Name=value; repeatable")
	fs.IntVar(&opts.Page, "page", 1, "Page number, starting at 1")
	fs.IntVar(&opts.PageSize, "page-size", cmdCtx.Config.Console.PageSize, "Records per page")
	fs.StringVar(&opts.Sort, "sort", "", "Sort as field[:asc|desc]")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output")
	fs.BoolVar(&opts.JSON, "json", false, "Print JSON instead of a table")
	fs.StringVar(&opts.XLSX, "xlsx", "", "Also write the page to this .xlsx file")
	fs.StringVar(&opts.PDF, "pdf", "", "Also write the page to this .pdf file")
	return fs
}

func (o listOptions) validate() error {
	if o.Page < 1 {
		return usageError("-page starts at 1")
	}
	if o.PageSize < 1 {
		return usageError("-page-size must be positive")
	}
	return compileQuery(o.Query)
}

func compileQuery(expr string) error {
	if expr == "" {
		return nil
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return usageError("invalid -query: %v", err)
	}
	return nil
}

// splitPositional parses fs over the arguments after the first n
// positional ones, so flags may follow "list employees".
func splitPositional(fs *flag.FlagSet, args []string, n int) ([]string, error) {
	if len(args) < n {
		return nil, usageError("expected %d argument(s)", n)
	}
	for _, a := range args[:n] {
		if strings.HasPrefix(a, "-") {
			return nil, usageError("expected %d argument(s) before flags", n)
		}
	}
	if err := fs.Parse(args[n:]); err != nil {
		return nil, usageError("%v", err)
	}
	if fs.NArg() > 0 {
		return nil, usageError("unexpected argument %q", fs.Arg(0))
	}
	return args[:n], nil
}
