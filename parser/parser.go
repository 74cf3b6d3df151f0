// Package parser implements the recursive-descent parser: it consumes the
// token.Token stream produced by the lexer and builds an ast.Node tree, or
// fails with a single SyntaxError. There is no error recovery; the first
// unexpected token ends the parse.
package parser

import (
	"fmt"

	"github.com/hi345slim/c99scan/ast"
	"github.com/hi345slim/c99scan/token"
)

// SyntaxError is the single diagnostic a failed parse reports. Line is -1
// for an error discovered at end of file.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("[End of File] Syntax Error: %s", e.Message)
	}
	return fmt.Sprintf("[Line %d] Syntax Error: %s", e.Line, e.Message)
}

var typeKeywords = map[string]bool{"int": true, "float": true, "char": true, "void": true, "const": true}

func isComment(c token.Class) bool {
	return c == token.SingleLineComment || c == token.MultiLineComment
}

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse runs the grammar over tokens and returns the Program root, or a
// *SyntaxError describing the first unexpected token.
func Parse(tokens []token.Token) (tree *ast.Node, err error) {
	p := &parser{tokens: tokens}
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	tree = p.parseProgram()
	return tree, nil
}

// peek returns the next non-comment token, skipping over any comment
// tokens that sit at the cursor, or the EOF sentinel once the stream is
// exhausted.
func (p *parser) peek() token.Token {
	return p.lookahead(0)
}

// lookahead returns the k-th non-comment token ahead of the cursor, k=0
// being equivalent to peek.
func (p *parser) lookahead(k int) token.Token {
	idx := p.pos
	seen := 0
	for idx < len(p.tokens) {
		if isComment(p.tokens[idx].Class) {
			idx++
			continue
		}
		if seen == k {
			return p.tokens[idx]
		}
		seen++
		idx++
	}
	return token.EOFToken
}

// advance skips any comments at the cursor, then consumes and returns the
// token under it.
func (p *parser) advance() token.Token {
	for p.pos < len(p.tokens) && isComment(p.tokens[p.pos].Class) {
		p.pos++
	}
	if p.pos >= len(p.tokens) {
		return token.EOFToken
	}
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// match consumes peek() if it has the given class (and, when value is
// supplied, the given value), otherwise raises a fatal syntax error.
func (p *parser) match(class token.Class, value ...string) token.Token {
	cur := p.peek()
	if cur.Class != class {
		p.fail(cur, fmt.Sprintf("expected %s, got %s %q", class, cur.Class, cur.Value))
	}
	if len(value) > 0 && cur.Value != value[0] {
		p.fail(cur, fmt.Sprintf("expected %q, got %q", value[0], cur.Value))
	}
	return p.advance()
}

func (p *parser) is(class token.Class, value string) bool {
	cur := p.peek()
	return cur.Class == class && cur.Value == value
}

func (p *parser) fail(cur token.Token, msg string) {
	if cur.Class == token.EOF {
		panic(&SyntaxError{Line: -1, Message: msg})
	}
	panic(&SyntaxError{Line: cur.Line, Message: msg})
}

func (p *parser) parseProgram() *ast.Node {
	root := ast.New(ast.Program, "", 1)
	for p.peek().Class != token.EOF {
		root.AddChild(p.parseTopLevelDecl())
	}
	return root
}

func (p *parser) parseTopLevelDecl() *ast.Node {
	if p.peek().Class == token.PreprocessorDirective {
		return p.parsePreprocessorDirective()
	}
	return p.parseDeclarationOrFunction()
}

func (p *parser) parsePreprocessorDirective() *ast.Node {
	t := p.advance()
	return ast.New(ast.PreprocessorDirective, t.Value, t.Line)
}

// parseDeclarationOrFunction resolves the grammar's one real ambiguity:
// lookahead(2) == "(" means a function definition or prototype, otherwise
// a variable declaration.
func (p *parser) parseDeclarationOrFunction() *ast.Node {
	cur := p.peek()
	if cur.Class != token.Keyword || !typeKeywords[cur.Value] {
		p.fail(cur, fmt.Sprintf("expected a type keyword, got %s %q", cur.Class, cur.Value))
	}
	if p.lookahead(2).Value == "(" {
		return p.parseFunctionOrPrototype()
	}
	return p.parseVariableDeclaration()
}

func (p *parser) parseFunctionOrPrototype() *ast.Node {
	typeKw := p.advance()
	typeSpec := ast.New(ast.TypeSpecifier, typeKw.Value, typeKw.Line)
	name := p.match(token.Identifier)
	p.match(token.SpecialCharacter, "(")
	p.match(token.SpecialCharacter, ")")

	if p.is(token.SpecialCharacter, "{") {
		body := p.parseBlockStatement()
		node := ast.New(ast.FunctionDefinition, name.Value, typeKw.Line)
		node.AddChild(typeSpec)
		node.AddChild(body)
		return node
	}

	p.match(token.SpecialCharacter, ";")
	node := ast.New(ast.FunctionPrototype, name.Value, typeKw.Line)
	node.AddChild(typeSpec)
	return node
}

func (p *parser) parseVariableDeclaration() *ast.Node {
	line := p.peek().Line
	node := ast.New(ast.VariableDeclarationStatement, "", line)

	if p.is(token.Keyword, "const") {
		t := p.advance()
		node.AddChild(ast.New(ast.Keyword, "const", t.Line))
	}

	typeKw := p.match(token.Keyword)
	node.AddChild(ast.New(ast.TypeSpecifier, typeKw.Value, typeKw.Line))
	node.AddChild(p.parseDeclarator())
	for p.is(token.SpecialCharacter, ",") {
		p.advance()
		node.AddChild(p.parseDeclarator())
	}
	p.match(token.SpecialCharacter, ";")
	return node
}

func (p *parser) parseDeclarator() *ast.Node {
	name := p.match(token.Identifier)
	decl := ast.New(ast.Declarator, name.Value, name.Line)
	if p.is(token.Operator, "=") {
		p.advance()
		init := ast.New(ast.Initializer, "", name.Line)
		init.AddChild(p.parseExpression())
		decl.AddChild(init)
	}
	return decl
}

func (p *parser) parseStatement() *ast.Node {
	cur := p.peek()
	switch {
	case cur.Class == token.Keyword && cur.Value == "if":
		return p.parseIfStatement()
	case cur.Class == token.Keyword && cur.Value == "for":
		return p.parseForStatement()
	case cur.Class == token.Keyword && cur.Value == "return":
		return p.parseReturnStatement()
	case cur.Class == token.SpecialCharacter && cur.Value == "{":
		return p.parseBlockStatement()
	case cur.Class == token.SpecialCharacter && cur.Value == ";":
		t := p.advance()
		return ast.New(ast.EmptyStatement, "", t.Line)
	case cur.Class == token.Keyword && typeKeywords[cur.Value]:
		return p.parseVariableDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseBlockStatement() *ast.Node {
	open := p.match(token.SpecialCharacter, "{")
	node := ast.New(ast.BlockStatement, "", open.Line)
	for !p.is(token.SpecialCharacter, "}") {
		if p.peek().Class == token.EOF {
			p.fail(p.peek(), "unterminated block, expected \"}\"")
		}
		node.AddChild(p.parseStatement())
	}
	p.advance()
	return node
}

func (p *parser) parseIfStatement() *ast.Node {
	kw := p.match(token.Keyword, "if")
	p.match(token.SpecialCharacter, "(")
	cond := p.parseExpression()
	p.match(token.SpecialCharacter, ")")
	then := p.parseStatement()

	node := ast.New(ast.IfStatement, "", kw.Line)
	node.AddChild(cond)
	node.AddChild(then)
	if p.is(token.Keyword, "else") {
		p.advance()
		node.AddChild(p.parseStatement())
	}
	return node
}

func (p *parser) parseForStatement() *ast.Node {
	kw := p.match(token.Keyword, "for")
	p.match(token.SpecialCharacter, "(")
	init := p.parseForInit()
	cond := p.parseForCond()
	incr := p.parseForIncr()
	p.match(token.SpecialCharacter, ")")
	body := p.parseStatement()

	node := ast.New(ast.ForStatement, "", kw.Line)
	node.AddChild(init)
	node.AddChild(cond)
	node.AddChild(incr)
	node.AddChild(body)
	return node
}

func (p *parser) parseForInit() *ast.Node {
	cur := p.peek()
	if cur.Class == token.SpecialCharacter && cur.Value == ";" {
		t := p.advance()
		return ast.New(ast.Empty, "initializer", t.Line)
	}
	if cur.Class == token.Keyword && typeKeywords[cur.Value] {
		return p.parseVariableDeclaration()
	}
	return p.parseExpressionStatement()
}

func (p *parser) parseForCond() *ast.Node {
	if p.is(token.SpecialCharacter, ";") {
		t := p.advance()
		return ast.New(ast.Empty, "condition", t.Line)
	}
	expr := p.parseExpression()
	p.match(token.SpecialCharacter, ";")
	return expr
}

func (p *parser) parseForIncr() *ast.Node {
	if p.is(token.SpecialCharacter, ")") {
		return ast.New(ast.Empty, "increment", p.peek().Line)
	}
	return p.parseExpression()
}

func (p *parser) parseReturnStatement() *ast.Node {
	kw := p.match(token.Keyword, "return")
	node := ast.New(ast.ReturnStatement, "", kw.Line)
	if !p.is(token.SpecialCharacter, ";") {
		node.AddChild(p.parseExpression())
	}
	p.match(token.SpecialCharacter, ";")
	return node
}

func (p *parser) parseExpressionStatement() *ast.Node {
	line := p.peek().Line
	expr := p.parseExpression()
	p.match(token.SpecialCharacter, ";")
	node := ast.New(ast.ExpressionStatement, "", line)
	node.AddChild(expr)
	return node
}

func (p *parser) parseExpression() *ast.Node {
	return p.parseAssignment()
}

// parseAssignment is right-associative: a = b = c parses as a = (b = c).
func (p *parser) parseAssignment() *ast.Node {
	left := p.parseEquality()
	if p.is(token.Operator, "=") {
		eq := p.advance()
		right := p.parseAssignment()
		node := ast.New(ast.AssignmentExpression, "=", eq.Line)
		node.AddChild(left)
		node.AddChild(right)
		return node
	}
	return left
}

func (p *parser) parseEquality() *ast.Node {
	left := p.parseRelational()
	for p.peek().Class == token.Operator && (p.peek().Value == "==" || p.peek().Value == "!=") {
		op := p.advance()
		right := p.parseRelational()
		node := ast.New(ast.BinaryExpression, op.Value, op.Line)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
	return left
}

func (p *parser) parseRelational() *ast.Node {
	left := p.parseAdditive()
	for p.peek().Class == token.Operator && isRelationalOp(p.peek().Value) {
		op := p.advance()
		right := p.parseAdditive()
		node := ast.New(ast.BinaryExpression, op.Value, op.Line)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
	return left
}

func isRelationalOp(v string) bool {
	return v == "<" || v == ">" || v == "<=" || v == ">="
}

func (p *parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.peek().Class == token.Operator && (p.peek().Value == "+" || p.peek().Value == "-") {
		op := p.advance()
		right := p.parseMultiplicative()
		node := ast.New(ast.BinaryExpression, op.Value, op.Line)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
	return left
}

func (p *parser) parseMultiplicative() *ast.Node {
	left := p.parsePrimary()
	for p.peek().Class == token.Operator && (p.peek().Value == "*" || p.peek().Value == "/") {
		op := p.advance()
		right := p.parsePrimary()
		node := ast.New(ast.BinaryExpression, op.Value, op.Line)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}
	return left
}

func (p *parser) parsePrimary() *ast.Node {
	cur := p.peek()
	switch {
	case cur.Class == token.NumericConstant:
		t := p.advance()
		return ast.New(ast.Constant, t.Value, t.Line)
	case cur.Class == token.Identifier:
		t := p.advance()
		return ast.New(ast.Identifier, t.Value, t.Line)
	case cur.Class == token.SpecialCharacter && cur.Value == "(":
		p.advance()
		expr := p.parseExpression()
		p.match(token.SpecialCharacter, ")")
		return expr
	default:
		p.fail(cur, fmt.Sprintf("unexpected token %s %q in expression", cur.Class, cur.Value))
		return nil
	}
}
