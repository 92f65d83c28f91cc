package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/esdata/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the EBNF grammar of the data format",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := grammar.Check(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", grammar.Filename)
				return nil
			}
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "match <production> <text>",
		Short:         "Report how much of text a grammar production matches",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			n, err := grammar.NewMatcher(g).Match(args[0], args[1])
			if err != nil {
				return err
			}
			if n < 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no match\n", args[0])
				return fmt.Errorf("%s does not match", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: matched %d of %d bytes\n", args[0], n, len(args[1]))
			return nil
		},
	}
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
