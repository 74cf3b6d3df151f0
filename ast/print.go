package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print renders n as indented box-drawing ASCII, one line per node in
// "<prefix><branch><kind> (<value>) [Line: <line>]" form. The root is
// treated as a last child with an empty prefix.
func Print(w io.Writer, n *Node) error {
	return printNode(w, n, "", true)
}

// String returns the same rendering Print writes, as a single string.
func String(n *Node) string {
	var b strings.Builder
	printNode(&b, n, "", true)
	return b.String()
}

func printNode(w io.Writer, n *Node, prefix string, last bool) error {
	branch := "├── "
	if last {
		branch = "└── "
	}
	if _, err := fmt.Fprintf(w, "%s%s%s (%s) [Line: %d]\n", prefix, branch, n.Kind, n.Value, n.Line); err != nil {
		return err
	}

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, child := range n.Children {
		if err := printNode(w, child, childPrefix, i == len(n.Children)-1); err != nil {
			return err
		}
	}
	return nil
}
