package token

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	tokens := []Token{
		{Class: Keyword, Value: "int", Line: 1},
		{Class: Identifier, Value: "main", Line: 1},
		{Class: SpecialCharacter, Value: "(", Line: 1},
		{Class: SpecialCharacter, Value: ")", Line: 1},
		{Class: SpecialCharacter, Value: "{", Line: 1},
		{Class: Keyword, Value: "return", Line: 1},
		{Class: NumericConstant, Value: "0", Line: 1},
		{Class: SpecialCharacter, Value: ";", Line: 1},
		{Class: SpecialCharacter, Value: "}", Line: 1},
	}

	var buf bytes.Buffer
	if err := Write(&buf, tokens); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, warnings, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Load warnings = %v, want none", warnings)
	}
	if len(got) != len(tokens) {
		t.Fatalf("Load returned %d tokens, want %d", len(got), len(tokens))
	}
	for i := range tokens {
		if got[i] != tokens[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], tokens[i])
		}
	}
}

func TestWritePreservesCommentPlaceholders(t *testing.T) {
	tokens := []Token{
		{Class: SingleLineComment, Value: "//", Line: 3},
		{Class: MultiLineComment, Value: "/* .. */", Line: 5},
	}

	var buf bytes.Buffer
	Write(&buf, tokens)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "<Single-Line Comment, //, 3>" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "<Multi-Line Comment, /* .. */, 5>" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestLoadSkipsMalformedLinesWithWarning(t *testing.T) {
	input := strings.Join([]string{
		"<KEYWORD, int, 1>",
		"xyz",
		"<KEYWORD, no-closing-bracket, 2",
		"<KEYWORD, int, notanumber>",
		"<IDENTIFIER, main, 2>",
	}, "\n")

	tokens, warnings, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("Load returned %d tokens, want 2 (got %+v)", len(tokens), tokens)
	}
	if len(warnings) != 3 {
		t.Fatalf("Load returned %d warnings, want 3 (got %v)", len(warnings), warnings)
	}
}

func TestLoadRejectsLineShorterThanFive(t *testing.T) {
	tokens, warnings, err := Load(strings.NewReader("<a>\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tokens) != 0 || len(warnings) != 1 {
		t.Fatalf("tokens=%v warnings=%v, want 0 tokens and 1 warning", tokens, warnings)
	}
}
