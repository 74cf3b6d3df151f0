// Package ast defines the syntax tree the parser produces and the
// box-drawing printer used to render it.
package ast

// Kind is one of the closed set of syntactic categories a parsed tree node
// can carry.
type Kind int

const (
	Program Kind = iota
	PreprocessorDirective
	VariableDeclarationStatement
	TypeSpecifier
	Keyword
	Declarator
	Initializer
	FunctionDefinition
	FunctionPrototype
	BlockStatement
	IfStatement
	ForStatement
	ReturnStatement
	EmptyStatement
	ExpressionStatement
	AssignmentExpression
	BinaryExpression
	Constant
	Identifier
	Empty
)

var kindNames = map[Kind]string{
	Program:                      "Program",
	PreprocessorDirective:        "PreprocessorDirective",
	VariableDeclarationStatement: "VariableDeclarationStatement",
	TypeSpecifier:                "TypeSpecifier",
	Keyword:                      "Keyword",
	Declarator:                   "Declarator",
	Initializer:                  "Initializer",
	FunctionDefinition:           "FunctionDefinition",
	FunctionPrototype:            "FunctionPrototype",
	BlockStatement:               "BlockStatement",
	IfStatement:                  "IfStatement",
	ForStatement:                 "ForStatement",
	ReturnStatement:              "ReturnStatement",
	EmptyStatement:               "EmptyStatement",
	ExpressionStatement:          "ExpressionStatement",
	AssignmentExpression:         "AssignmentExpression",
	BinaryExpression:             "BinaryExpression",
	Constant:                     "Constant",
	Identifier:                   "Identifier",
	Empty:                        "Empty",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one syntax tree node. It exclusively owns its Children; there are
// no shared or back pointers, so the tree is acyclic by construction and a
// dropped root releases the whole tree under ordinary garbage collection.
type Node struct {
	Kind     Kind
	Value    string
	Line     int
	Children []*Node
}

// New creates a node with no children.
func New(kind Kind, value string, line int) *Node {
	return &Node{Kind: kind, Value: value, Line: line}
}

// AddChild appends child to n's children in order and returns n, so callers
// can chain construction.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// FirstChildOfKind returns the first direct child with the given kind, or
// nil if none exists.
func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}
