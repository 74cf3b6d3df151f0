// Command ui serves the web front end for pasting C source and viewing
// its scan and parse results in a browser.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/hi345slim/c99scan/webui"
)

func main() {
	var addr string

	root := &cobra.Command{
		Use:   "ui",
		Short: "Serve the c99scan web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := webui.NewServer()
			if err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			fmt.Printf("listening on %s\n", addr)
			return http.ListenAndServe(addr, server)
		},
	}
	root.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
