package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tabula/internal/dataset"
)

func newTablesCmd(root *rootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables of a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = root.cfg.DBPath
			}
			if dbPath == "" {
				return errors.New("--db is required (or set TABULA_DB)")
			}

			db, err := dataset.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			tables, err := dataset.ListSQLiteTables(cmd.Context(), db)
			if err != nil {
				return err
			}
			root.logger.Debug().Str("db", dbPath).Int("tables", len(tables)).Msg("listed tables")

			for _, t := range tables {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (or set TABULA_DB)")
	return cmd
}
