package main

import (
	"fmt"

	"github.com/dhamidi/esdata/catalog"
	"github.com/dhamidi/esdata/model"
	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Parse data files and store their records in PostgreSQL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var objects []model.Object
			for _, filename := range args {
				src, err := readFile(filename)
				if err != nil {
					return err
				}
				parsed, err := parser.Parse(src, a.parserOptions(filename)...)
				if err != nil {
					return err
				}
				objects = append(objects, parsed...)
			}

			log.Infof("parsed %d records from %d files", len(objects), len(args))

			dbConfig := a.config.Database
			if databaseURL != "" {
				dbConfig.URL = databaseURL
			}

			ctx := cmd.Context()
			cat, err := catalog.Open(ctx, dbConfig)
			if err != nil {
				return err
			}
			defer cat.Close()

			if err := cat.Migrate(ctx); err != nil {
				return err
			}
			stats, err := cat.Import(ctx, objects)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (overrides ESDATA_DATABASE_URL)")

	return cmd
}
