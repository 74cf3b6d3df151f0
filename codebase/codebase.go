// Package codebase indexes a directory of C source files: for each file it
// runs the scanner and parser and keeps the resulting token stream, syntax
// tree, and first diagnostic (if any). It is a pure consumer of the lexer
// and parser packages and never retries a failed file on its own.
package codebase

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/hi345slim/c99scan/ast"
	"github.com/hi345slim/c99scan/lexer"
	"github.com/hi345slim/c99scan/parser"
	"github.com/hi345slim/c99scan/token"
)

// FileInfo is the latest scan+parse result for one file.
type FileInfo struct {
	Path      string
	Content   []byte
	Tokens    []token.Token
	Tree      *ast.Node
	ScanErr   string
	ParseErr  error
	LineCount int
}

// Codebase holds the latest FileInfo for every file it has indexed. A file
// that fails to scan or parse keeps its diagnostic here; it never aborts
// the rest of the index.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// New returns an empty Codebase rooted at rootDir.
func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".c" || ext == ".h"
}

// ScanAll walks rootDir and indexes every .c/.h file found.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if isSourceFile(path) {
			c.ScanFile(path)
		}
		return nil
	})
}

// ScanFile reads path from disk and indexes it.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile (re)indexes path with the given content, replacing any prior
// entry. Re-running with identical content reproduces an identical
// FileInfo, since scanning and parsing have no hidden state.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = c.buildFileInfo(path, content)
	return nil
}

func (c *Codebase) buildFileInfo(path string, content []byte) *FileInfo {
	info := &FileInfo{Path: path, Content: content}

	result := lexer.Scan(string(content))
	info.Tokens = result.Tokens
	info.LineCount = result.LineCount
	switch result.Status.Kind {
	case lexer.UnexpectedCharacter:
		info.ScanErr = formatUnexpectedCharacter(result.Status)
		return info
	case lexer.UnterminatedBlockComment:
		info.ScanErr = "unterminated block comment"
		return info
	}

	tree, err := parser.Parse(result.Tokens)
	if err != nil {
		info.ParseErr = err
		return info
	}
	info.Tree = tree
	return info
}

func formatUnexpectedCharacter(s lexer.Status) string {
	return "unexpected character " + string(s.Char) + " at line " + strconv.Itoa(s.Line)
}

// RemoveFile drops path from the index, e.g. when it is deleted on disk.
func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

// GetFile returns the latest FileInfo for path, or nil if it is not
// indexed.
func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// AllFiles returns every indexed FileInfo, in no particular order.
func (c *Codebase) AllFiles() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		out = append(out, f)
	}
	return out
}
