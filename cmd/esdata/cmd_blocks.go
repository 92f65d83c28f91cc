package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
)

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "blocks <file>",
		Short:         "Validate each blank-line separated block of a data file",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			return reportBlocks(cmd.OutOrStdout(), string(src), a.parserOptions(args[0]))
		},
	}
}

// splitBlocks splits a file on two blank lines, falling back to one blank
// line when that yields fewer than two blocks. Empty blocks are dropped.
func splitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := nonEmpty(strings.Split(text, "\n\n\n"))
	if len(blocks) < 2 {
		blocks = nonEmpty(strings.Split(text, "\n\n"))
	}
	return blocks
}

func nonEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func reportBlocks(w io.Writer, text string, opts []parser.Option) error {
	blocks := splitBlocks(text)
	total := parser.ParseBestEffort([]byte(text), opts...)

	ok := 0
	var firstBlock string
	var firstErr error
	for _, block := range blocks {
		_, err := parser.Parse([]byte(block+"\n"), opts...)
		if err == nil {
			ok++
			continue
		}
		if firstErr == nil {
			firstBlock, firstErr = block, err
		}
	}

	fmt.Fprintf(w, "%d blocks found, %d ok (%d on total read)\n", len(blocks), ok, len(total))
	if firstErr == nil {
		return nil
	}
	fmt.Fprintf(w, "first failed:\n%s\n--> because: %v\n", firstBlock, firstErr)
	return fmt.Errorf("%d of %d blocks failed", len(blocks)-ok, len(blocks))
}
