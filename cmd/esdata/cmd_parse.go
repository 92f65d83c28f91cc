package main

import (
	"github.com/dhamidi/esdata/format"
	"github.com/dhamidi/esdata/model"
	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var bestEffort bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a data file and print its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFile(args[0])
			if err != nil {
				return err
			}

			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var objects []model.Object
			if bestEffort {
				objects = parser.ParseBestEffort(src, a.parserOptions(args[0])...)
			} else {
				objects, err = parser.Parse(src, a.parserOptions(args[0])...)
				if err != nil {
					return err
				}
			}

			return enc.Encode(objects)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, line)")
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "print the records before the first error instead of failing")

	return cmd
}
