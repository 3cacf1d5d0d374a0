package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tabula/internal/dataset"
	"tabula/internal/model"
	"tabula/internal/sorting"
	"tabula/internal/table"
	"tabula/internal/ui"
	"tabula/internal/util"
)

var errNoSource = errors.New("no data source: pass a file, --db with --table, or --sample")

type viewOptions struct {
	db       string
	table    string
	sample   bool
	pageSize int
	siblings int
	sort     string
	filter   string
	columns  string
}

func newViewCmd(root *rootOptions) *cobra.Command {
	var o viewOptions

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open an interactive table",
		Long: `Opens a dataset in an interactive table that can be sorted, filtered and
paginated. Supported files: .csv, .tsv, .json, .yaml, .yml and SQLite
databases (.db, .sqlite, .sqlite3, which need --table).`,
		Example: `  tabula view people.csv --sort age:desc --page-size 20
  tabula view --db app.db --table users --columns id,name,email
  tabula view --sample --filter admin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("page-size") {
				cfg.PageSize = o.pageSize
			}
			if cmd.Flags().Changed("siblings") {
				cfg.SiblingCount = o.siblings
			}
			if o.db == "" {
				o.db = cfg.DBPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			initial, err := o.initialActions()
			if err != nil {
				return err
			}
			load, title, err := o.loader(cmd.Context(), args)
			if err != nil {
				return err
			}

			logger := root.logger
			screen := ui.New(load, ui.Config{
				Title:           title,
				PageSize:        cfg.PageSize,
				PageSizeOptions: cfg.PageSizeOptions,
				Siblings:        uiSiblings(cfg.SiblingCount),
				FormatDate:      util.DateFormatter(cfg.DateFormat),
				Logger:          root.logs.Logger,
				Initial:         initial,
				OnPageChange: func(page int) {
					logger.Debug().Int("page", page).Msg("page changed")
				},
				OnPageSizeChange: func(size int) {
					logger.Info().Int("page_size", size).Msg("page size changed")
				},
			})

			p := tea.NewProgram(screen,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.db, "db", "", "SQLite database to read (or set TABULA_DB)")
	f.StringVar(&o.table, "table", "", "table to read from the SQLite database")
	f.BoolVar(&o.sample, "sample", false, "use the built-in sample dataset")
	f.IntVar(&o.pageSize, "page-size", 0, "rows per page (overrides config)")
	f.IntVar(&o.siblings, "siblings", 0, "page buttons shown on each side of the current page")
	f.StringVar(&o.sort, "sort", "", "initial sort, e.g. role:asc,age:desc")
	f.StringVar(&o.filter, "filter", "", "initial search text")
	f.StringVar(&o.columns, "columns", "", "comma-separated visible columns")

	return cmd
}

// initialActions turns the start-up flags into table actions.
func (o viewOptions) initialActions() ([]table.Action, error) {
	var actions []table.Action
	if o.sort != "" {
		spec, err := sorting.ParseSpec(o.sort)
		if err != nil {
			return nil, err
		}
		actions = append(actions, table.ReplaceSort{Spec: spec})
	}
	if cols := splitList(o.columns); len(cols) > 0 {
		actions = append(actions, table.SetColumns{Columns: cols})
	}
	if o.filter != "" {
		actions = append(actions, table.SetFilter{Text: o.filter})
	}
	return actions, nil
}

// loader picks the data source. The returned function runs inside the Bubble
// Tea program so the screen can show loading and error states.
func (o viewOptions) loader(ctx context.Context, args []string) (func() (model.Dataset, error), string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch {
	case o.sample:
		return func() (model.Dataset, error) { return dataset.Sample(), nil }, "sample", nil
	case len(args) == 1:
		path := args[0]
		opts := dataset.FileOptions{Table: o.table}
		return func() (model.Dataset, error) {
			return dataset.LoadFile(ctx, path, opts)
		}, filepath.Base(path), nil
	case o.db != "":
		if o.table == "" {
			return nil, "", dataset.ErrMissingTable
		}
		db, tbl := o.db, o.table
		return func() (model.Dataset, error) {
			return dataset.LoadSQLite(ctx, db, tbl)
		}, filepath.Base(db) + " › " + tbl, nil
	default:
		return nil, "", errNoSource
	}
}

// uiSiblings maps a configured sibling count onto ui.Config, where zero
// selects the default.
func uiSiblings(n int) int {
	if n <= 0 {
		return ui.NoSiblings
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
