// Command lsp runs the Language Server Protocol front end over stdio,
// publishing the parser's single syntax diagnostic for each open C file.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hi345slim/c99scan/codebase"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version)
			return server.RunStdio()
		},
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
