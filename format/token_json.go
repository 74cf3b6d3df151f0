package format

import (
	"encoding/json"
	"io"

	"github.com/hi345slim/c99scan/token"
)

// TokenJSONEncoder writes a token.Token stream to an underlying io.Writer
// as a single indented JSON array, one object per token.
type TokenJSONEncoder struct {
	w io.Writer
}

// NewTokenJSONEncoder returns a TokenJSONEncoder writing to w.
func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

type tokenJSON struct {
	Class string `json:"class"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}

// Encode renders tokens as a single JSON array.
func (e *TokenJSONEncoder) Encode(tokens []token.Token) error {
	out := make([]tokenJSON, len(tokens))
	for i, t := range tokens {
		out[i] = tokenJSON{Class: t.Class.String(), Value: t.Value, Line: t.Line}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}
