// Package webui serves a small HTML front end where a user pastes C
// source, submits it, and is shown the resulting token stream and syntax
// tree (or the first diagnostic). Submissions are processed by a
// worker-goroutine job queue, modeled on the teacher's own scan-job
// pattern, so multiple browser tabs can submit without blocking each
// other; each individual job still runs the scanner and parser
// synchronously and single-threaded.
package webui

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hi345slim/c99scan/ast"
	"github.com/hi345slim/c99scan/lexer"
	"github.com/hi345slim/c99scan/parser"
	"github.com/hi345slim/c99scan/token"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Request is one submission: the pasted source text.
type Request struct {
	ID        string
	Source    string
	CreatedAt time.Time
}

// Result is a job's outcome once its scan+parse completes. Exactly one of
// ScanErr, ParseErr, or Tree is populated alongside Tokens.
type Result struct {
	ID        string
	Status    Status
	Request   Request
	Tokens    []token.Token
	Tree      *ast.Node
	ScanErr   string
	ParseErr  string
	StartedAt time.Time
	EndedAt   time.Time
}

// Jobs is the in-process queue: one worker goroutine drains submissions
// off a channel, results are kept in a mutex-guarded map keyed by job id.
type Jobs struct {
	mu       sync.RWMutex
	results  map[string]*Result
	requests chan Request
	nextID   int
}

// NewJobs starts a Jobs queue with a single worker.
func NewJobs() *Jobs {
	j := &Jobs{
		results:  make(map[string]*Result),
		requests: make(chan Request, 64),
	}
	go j.run()
	return j
}

func (j *Jobs) run() {
	for req := range j.requests {
		j.process(req)
	}
}

func (j *Jobs) process(req Request) {
	j.mu.Lock()
	result := j.results[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	j.mu.Unlock()

	scanResult := lexer.Scan(req.Source)

	j.mu.Lock()
	defer j.mu.Unlock()
	result.Tokens = scanResult.Tokens
	result.EndedAt = time.Now()

	switch scanResult.Status.Kind {
	case lexer.UnexpectedCharacter:
		result.ScanErr = fmt.Sprintf("unexpected character %q at line %d", string(scanResult.Status.Char), scanResult.Status.Line)
		result.Status = StatusCompleted
		return
	case lexer.UnterminatedBlockComment:
		result.ScanErr = "unterminated block comment"
		result.Status = StatusCompleted
		return
	}

	tree, err := parser.Parse(scanResult.Tokens)
	if err != nil {
		result.ParseErr = err.Error()
	} else {
		result.Tree = tree
	}
	result.Status = StatusCompleted
}

// Submit enqueues src for scanning and parsing and returns its job id
// without waiting for the job to run; it blocks only while the queue's
// 64-entry buffer is full. The caller polls Get for the result.
func (j *Jobs) Submit(src string) string {
	j.mu.Lock()
	j.nextID++
	id := strconv.Itoa(j.nextID)
	req := Request{ID: id, Source: src, CreatedAt: time.Now()}

	j.results[id] = &Result{ID: id, Status: StatusPending, Request: req}
	j.mu.Unlock()

	j.requests <- req
	return id
}

// Get returns the job's current result and whether it exists.
func (j *Jobs) Get(id string) (*Result, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	r, ok := j.results[id]
	return r, ok
}
