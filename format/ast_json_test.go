package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hi345slim/c99scan/ast"
)

func TestASTJSONEncoderRoundTripsShape(t *testing.T) {
	root := ast.New(ast.Program, "", 1)
	fn := ast.New(ast.FunctionDefinition, "main", 1)
	fn.AddChild(ast.New(ast.TypeSpecifier, "int", 1))
	root.AddChild(fn)

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(root); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != "Program" {
		t.Errorf("Kind = %q, want Program", decoded.Kind)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Kind != "FunctionDefinition" {
		t.Fatalf("Children = %+v, want one FunctionDefinition", decoded.Children)
	}
	if decoded.Children[0].Value != "main" {
		t.Errorf("Value = %q, want main", decoded.Children[0].Value)
	}
}
