package main

import (
	"github.com/dhamidi/esdata/lsp"
	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewLSPServer(version, parser.WithMaxDepth(a.config.Parser.MaxDepth))
			return server.RunStdio()
		},
	}
}
