package format

import (
	"encoding/json"
	"io"

	"github.com/hi345slim/c99scan/ast"
)

// ASTJSONEncoder writes ast.Node trees to an underlying io.Writer as
// indented JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

// NewASTJSONEncoder returns an ASTJSONEncoder writing to w.
func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

type astJSONNode struct {
	Kind     string        `json:"kind"`
	Value    string        `json:"value,omitempty"`
	Line     int           `json:"line"`
	Children []astJSONNode `json:"children,omitempty"`
}

// Encode renders root and its descendants as a single JSON document.
func (e *ASTJSONEncoder) Encode(root *ast.Node) error {
	data, err := json.MarshalIndent(nodeToJSON(root), "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}

func nodeToJSON(n *ast.Node) astJSONNode {
	out := astJSONNode{
		Kind:  n.Kind.String(),
		Value: n.Value,
		Line:  n.Line,
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, nodeToJSON(child))
	}
	return out
}
