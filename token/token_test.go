package token

import "testing"

func TestClassString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{EOF, "EOF"},
		{Keyword, "KEYWORD"},
		{Identifier, "IDENTIFIER"},
		{Operator, "OPERATOR"},
		{SpecialCharacter, "SPECIAL CHARACTER"},
		{NumericConstant, "NUMERIC CONSTANT"},
		{PreprocessorDirective, "PREPROCESSOR DIRECTIVE"},
		{SingleLineComment, "Single-Line Comment"},
		{MultiLineComment, "Multi-Line Comment"},
		{CharLiteral, "CHAR_LITERAL"},
		{Class(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.class.String(); got != tt.want {
				t.Errorf("Class(%d).String() = %q, want %q", tt.class, got, tt.want)
			}
		})
	}
}

func TestClassByName(t *testing.T) {
	c, ok := ClassByName("KEYWORD")
	if !ok || c != Keyword {
		t.Errorf("ClassByName(KEYWORD) = (%v, %v), want (%v, true)", c, ok, Keyword)
	}

	if _, ok := ClassByName("NOT A CLASS"); ok {
		t.Errorf("ClassByName(NOT A CLASS) succeeded, want failure")
	}
}

func TestKeywordsHasExactlyThirtyTwo(t *testing.T) {
	if len(Keywords) != 32 {
		t.Errorf("len(Keywords) = %d, want 32", len(Keywords))
	}
	for _, w := range []string{"auto", "while", "int", "struct"} {
		if !Keywords[w] {
			t.Errorf("Keywords[%q] = false, want true", w)
		}
	}
}
