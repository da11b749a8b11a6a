// gridcat prints one page of a table to the terminal. It loads CSV,
// Parquet and JSON files or a Delta Sharing table, applies sort, page and
// selection flags, and can export the selected rows.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/config"
	"github.com/magpierre/datagrid/internal/export"
	"github.com/magpierre/datagrid/internal/loader"
	"github.com/magpierre/datagrid/internal/script"
	"github.com/magpierre/datagrid/internal/summary"
	"github.com/magpierre/datagrid/internal/termview"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	page         int
	sort         string
	selectRows   []int
	selectPage   bool
	singleSelect bool
	noPagination bool
	layoutPath   string
	exportPath   string
	profilePath  string
	table        string
	listTables   bool
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts options
	flagSet := pflag.NewFlagSet("gridcat", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&opts.page, "page", 1, "page to print")
	flagSet.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page")
	flagSet.BoolVar(&opts.noPagination, "no-pagination", false, "print all rows")
	flagSet.StringVar(&opts.sort, "sort", "", "sort by column, KEY or KEY:desc")
	flagSet.IntSliceVar(&opts.selectRows, "select", nil, "select rows by source index (0-based)")
	flagSet.BoolVar(&opts.selectPage, "select-page", false, "select every row on the printed page")
	flagSet.BoolVar(&opts.singleSelect, "single-select", false, "allow at most one selected row")
	flagSet.StringVar(&opts.layoutPath, "layout", "", "YAML column layout")
	flagSet.StringVar(&opts.exportPath, "export", "", "write the selection (or all rows, sorted) to a .csv, .json or .parquet file")
	flagSet.StringVar(&opts.profilePath, "profile", "", "Delta Sharing profile file")
	flagSet.StringVar(&opts.table, "table", "", "Delta Sharing table as share.schema.table")
	flagSet.BoolVar(&opts.listTables, "list-tables", false, "list the tables of --profile and exit")
	flagSet.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for number formatting")
	flagSet.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for Delta Sharing requests")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet, stderr)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return nil
	}
	if opts.noPagination {
		cfg.Pagination = false
	}
	if opts.singleSelect {
		cfg.MultiSelect = false
	}

	logger := config.NewLogger(stderr, cfg.LogLevel)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	defer cancel()

	if opts.listTables {
		return listTables(ctx, stdout, opts.profilePath)
	}

	ds, err := loadDataset(ctx, logger, opts, flagSet.Args())
	if err != nil {
		return err
	}

	var layout *config.Layout
	if opts.layoutPath != "" {
		if layout, err = config.LoadLayout(opts.layoutPath); err != nil {
			return err
		}
		if renderers := layout.Apply(ds); len(renderers) > 0 {
			if err := script.BindRenderers(ds.Columns, renderers); err != nil {
				return err
			}
		}
		if layout.PageSize > 0 && !flagSet.Changed("page-size") {
			cfg.PageSize = layout.PageSize
		}
	}

	gridConfig := cfg.GridConfig()
	gridConfig.Logger = logger
	grid := datatable.NewGrid(ds.Columns, datatable.RecordField, gridConfig)
	grid.SetSortState(layout.SortState())
	grid.SetCollection(ds.Records)

	if opts.sort != "" {
		grid.SetSortState(parseSort(opts.sort))
	}
	grid.SetPage(opts.page)
	for _, idx := range opts.selectRows {
		if !grid.ToggleRow(idx) {
			logger.Warn("row not selected", "index", idx, "rows", ds.RowCount())
		}
	}
	if opts.selectPage {
		grid.ToggleAllOnPage(true)
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}
	printer := summary.NewPrinter(tag)

	p := grid.Projection()
	fmt.Fprintln(stdout, summary.Status(printer, ds.Name, len(ds.Columns), p, grid.Selection().Len()))
	renderer := termview.NewRenderer(termview.DefaultTheme, printer, gridConfig)
	fmt.Fprint(stdout, renderer.Render(grid.Columns(), p, grid.Selection(), grid.Field()))

	if opts.exportPath == "" {
		return nil
	}
	format, err := export.FormatFromPath(opts.exportPath)
	if err != nil {
		return err
	}
	rows := export.GridRows(grid)
	if err := export.Rows(format, grid.Columns(), rows, opts.exportPath); err != nil {
		return err
	}
	logger.Info("exported rows", "path", opts.exportPath, "rows", len(rows))
	return nil
}

func loadDataset(ctx context.Context, logger *slog.Logger, opts options, args []string) (*datatable.Dataset, error) {
	if opts.table != "" {
		ref, err := loader.ParseTableRef(opts.table)
		if err != nil {
			return nil, err
		}
		profile, err := readProfile(opts.profilePath)
		if err != nil {
			return nil, err
		}
		return loader.LoadDeltaTable(ctx, logger, profile, ref)
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("want exactly one FILE or --table: %w", datatable.ErrNoDataSource)
	}
	logger.Debug("loading file", "path", args[0])
	return loader.LoadFile(ctx, args[0])
}

func listTables(ctx context.Context, w io.Writer, profilePath string) error {
	profile, err := readProfile(profilePath)
	if err != nil {
		return err
	}
	refs, err := loader.ListTables(ctx, profile)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		fmt.Fprintln(w, ref)
	}
	return nil
}

func readProfile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--profile is required: %w", datatable.ErrNoDataSource)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read profile: %w", err)
	}
	if !loader.IsDeltaSharingProfile(content) {
		return "", fmt.Errorf("%s is not a Delta Sharing profile: %w", path, datatable.ErrUnsupportedFile)
	}
	return string(content), nil
}

// parseSort reads KEY, KEY:asc or KEY:desc.
func parseSort(s string) datatable.SortState {
	key, dir, _ := strings.Cut(s, ":")
	return datatable.SortState{Key: key, Direction: datatable.ParseSortDirection(dir)}
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `gridcat prints a page of a table.

Settings also come from DATAGRID_* environment variables; flags win.

Usage:
  gridcat [flags] FILE
  gridcat [flags] --profile PROFILE --table SHARE.SCHEMA.TABLE
  gridcat --profile PROFILE --list-tables

Examples:
  gridcat --sort rtt:desc --page 2 pings.csv
  gridcat --select 3,7 --export picked.parquet orders.parquet
  gridcat --profile open-datasets.share --table delta_sharing.default.owid-covid-data

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
