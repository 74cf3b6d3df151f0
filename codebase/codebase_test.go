package codebase

import (
	"testing"

	"github.com/hi345slim/c99scan/ast"
)

func TestUpdateFileIndexesCleanSource(t *testing.T) {
	c := New(".")
	c.UpdateFile("main.c", []byte("int main(){return 0;}"))

	f := c.GetFile("main.c")
	if f == nil {
		t.Fatal("GetFile returned nil after UpdateFile")
	}
	if f.ScanErr != "" {
		t.Errorf("ScanErr = %q, want empty", f.ScanErr)
	}
	if f.ParseErr != nil {
		t.Errorf("ParseErr = %v, want nil", f.ParseErr)
	}
	if f.Tree == nil {
		t.Fatal("Tree is nil for a clean file")
	}
	if f.Tree.Kind != ast.Program {
		t.Errorf("Tree.Kind = %v, want Program", f.Tree.Kind)
	}
}

func TestUpdateFileRecordsScanError(t *testing.T) {
	c := New(".")
	c.UpdateFile("bad.c", []byte("int x = `;"))

	f := c.GetFile("bad.c")
	if f.ScanErr == "" {
		t.Fatal("ScanErr is empty, want a scan failure recorded")
	}
	if f.Tree != nil {
		t.Error("Tree is non-nil despite a scan failure")
	}
}

func TestUpdateFileRecordsParseError(t *testing.T) {
	c := New(".")
	c.UpdateFile("bad.c", []byte("int x = ;"))

	f := c.GetFile("bad.c")
	if f.ParseErr == nil {
		t.Fatal("ParseErr is nil, want a syntax error recorded")
	}
	if f.Tree != nil {
		t.Error("Tree is non-nil despite a parse failure")
	}
}

func TestUpdateFileIsIdempotent(t *testing.T) {
	c := New(".")
	src := []byte("int main(){int x = 1; return x;}")

	c.UpdateFile("main.c", src)
	first := c.GetFile("main.c")

	c.UpdateFile("main.c", src)
	second := c.GetFile("main.c")

	if ast.String(first.Tree) != ast.String(second.Tree) {
		t.Error("re-indexing identical content produced a different tree")
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Error("re-indexing identical content produced a different token count")
	}
}

func TestRemoveFileDropsEntry(t *testing.T) {
	c := New(".")
	c.UpdateFile("main.c", []byte("int x;"))
	c.RemoveFile("main.c")

	if f := c.GetFile("main.c"); f != nil {
		t.Errorf("GetFile after RemoveFile = %v, want nil", f)
	}
}

func TestOneFailingFileDoesNotAffectOthers(t *testing.T) {
	c := New(".")
	c.UpdateFile("good.c", []byte("int x;"))
	c.UpdateFile("bad.c", []byte("int x = ;"))

	good := c.GetFile("good.c")
	bad := c.GetFile("bad.c")

	if good.ParseErr != nil {
		t.Errorf("good.c ParseErr = %v, want nil", good.ParseErr)
	}
	if bad.ParseErr == nil {
		t.Error("bad.c ParseErr = nil, want a syntax error")
	}
}
