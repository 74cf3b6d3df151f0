// Command parse is the parser front end: it reads tokens.txt from the
// working directory, runs the recursive-descent parser over it, and
// prints either the syntax tree or the single diagnostic from the first
// failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hi345slim/c99scan/ast"
	"github.com/hi345slim/c99scan/format"
	"github.com/hi345slim/c99scan/parser"
	"github.com/hi345slim/c99scan/token"
)

func main() {
	var asJSON bool

	root := &cobra.Command{
		Use:           "parse",
		Short:         "Parse tokens.txt into a syntax tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(asJSON)
		},
	}
	root.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON instead of the box-drawing rendering")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var errParseFailed = errors.New("parse failed")

func runParse(asJSON bool) error {
	f, err := os.Open("tokens.txt")
	if err != nil {
		fmt.Println("Could not open tokens.txt; run scan first.")
		return errParseFailed
	}
	defer f.Close()

	tokens, warnings, err := token.Load(f)
	if err != nil {
		return fmt.Errorf("read tokens.txt: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(tokens) == 0 {
		fmt.Println("tokens.txt is empty; nothing to parse.")
		return errParseFailed
	}

	tree, err := parser.Parse(tokens)
	if err != nil {
		fmt.Println(err.Error())
		fmt.Println("Program has one or more syntax errors.")
		return errParseFailed
	}

	fmt.Println("Program is syntactically valid.")
	if asJSON {
		var enc format.Encoder[*ast.Node] = format.NewASTJSONEncoder(os.Stdout)
		return enc.Encode(tree)
	}
	return ast.Print(os.Stdout, tree)
}
