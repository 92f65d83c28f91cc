package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>...",
		Short:         "Validate data files and report the first error in each",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				src, err := readFile(filename)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", filename, err)
					failed++
					continue
				}
				if _, err := parser.Parse(src, a.parserOptions(filename)...); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), err)
					failed++
				}
			}
			if failed > 0 {
				return errors.New("check failed")
			}
			return nil
		},
	}
}
