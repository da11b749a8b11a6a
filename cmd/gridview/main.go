// gridview is a desktop browser for tabular data. It opens CSV, Parquet
// and JSON files and tables shared through a Delta Sharing profile in a
// sortable, paginated and selectable grid.
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"

	"github.com/magpierre/datagrid/internal/config"
	"github.com/magpierre/datagrid/windows"
)

const appID = "io.github.magpierre.datagrid"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var layoutPath string
	var singleSelect, noPagination bool

	flagSet := pflag.NewFlagSet("gridview", pflag.ContinueOnError)
	flagSet.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page")
	flagSet.BoolVar(&noPagination, "no-pagination", false, "show all rows on one page")
	flagSet.BoolVar(&singleSelect, "single-select", false, "allow at most one selected row")
	flagSet.StringVar(&cfg.Theme, "theme", cfg.Theme, "initial theme: system, light or dark")
	flagSet.StringVar(&layoutPath, "layout", "", "YAML column layout applied to opened tables")
	flagSet.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for Delta Sharing requests")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if noPagination {
		cfg.Pagination = false
	}
	if singleSelect {
		cfg.MultiSelect = false
	}

	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	var layout *config.Layout
	if layoutPath != "" {
		if layout, err = config.LoadLayout(layoutPath); err != nil {
			return err
		}
	}

	a := app.NewWithID(appID)
	mw := windows.NewMainWindow(a, windows.Options{Config: cfg, Layout: layout, Logger: logger})

	files := flagSet.Args()
	if len(files) > 0 {
		a.Lifecycle().SetOnStarted(func() {
			for _, path := range files {
				mw.LoadDataFile(path)
			}
		})
	}

	logger.Debug("starting", "page_size", cfg.PageSize, "theme", cfg.Theme, "files", len(files))
	mw.ShowAndRun()
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gridview, a desktop data grid.

Opens each FILE in its own tab. A Delta Sharing profile (.share) fills
the table tree instead; click a table to load it.

Settings also come from DATAGRID_* environment variables; flags win.

Usage:
  gridview [flags] [FILE...]

Examples:
  gridview orders.csv
  gridview --page-size 50 --layout pings.yaml pings.parquet
  gridview ~/profiles/open-datasets.share

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
