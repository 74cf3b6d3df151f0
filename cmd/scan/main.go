// Command scan is the scanner front end: it interactively locates a C
// source file, runs the scanner over it, and writes the resulting token
// stream to tokens.txt in the interchange format.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hi345slim/c99scan/format"
	"github.com/hi345slim/c99scan/lexer"
	"github.com/hi345slim/c99scan/token"
)

func main() {
	var asJSON bool

	root := &cobra.Command{
		Use:           "scan",
		Short:         "Scan a C source file into a token stream",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(asJSON)
		},
	}
	root.Flags().BoolVar(&asJSON, "json", false, "print the token stream as JSON instead of the plain summary")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var errScanFailed = errors.New("scan failed")

func runScan(asJSON bool) error {
	in := bufio.NewReader(os.Stdin)

	path, err := promptForPath(in, os.Stdout)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	src := string(data)
	if strings.TrimSpace(src) == "" {
		fmt.Println("Source file is empty; nothing to scan.")
		return errScanFailed
	}

	result := lexer.Scan(src)
	switch result.Status.Kind {
	case lexer.UnterminatedBlockComment:
		fmt.Println("Scan failed: unterminated block comment.")
		return errScanFailed
	case lexer.UnexpectedCharacter:
		fmt.Printf("Scan failed: unexpected character %q at line %d.\n", string(result.Status.Char), result.Status.Line)
		return errScanFailed
	}

	out, err := os.Create("tokens.txt")
	if err != nil {
		return fmt.Errorf("create tokens.txt: %w", err)
	}
	defer out.Close()

	if err := token.Write(out, result.Tokens); err != nil {
		return fmt.Errorf("write tokens.txt: %w", err)
	}

	if asJSON {
		var enc format.Encoder[[]token.Token] = format.NewTokenJSONEncoder(os.Stdout)
		return enc.Encode(result.Tokens)
	}

	fmt.Printf("Scanned %d line(s), wrote %d token(s) to tokens.txt\n", result.LineCount, len(result.Tokens))
	return nil
}

// promptForPath asks whether the source file lives in the current
// directory, then loops prompting for a filename or path until one opens.
func promptForPath(in *bufio.Reader, out *os.File) (string, error) {
	fmt.Fprint(out, "Is the source file in the current directory? (y/n): ")
	answer, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(strings.ToLower(answer))

	prompt := "Enter the filename: "
	if answer != "y" {
		prompt = "Enter the full path to the file: "
	}

	for {
		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if err != nil {
			return "", err
		}
		path := strings.TrimSpace(line)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		fmt.Fprintf(out, "Could not open %q, try again.\n", path)
	}
}
