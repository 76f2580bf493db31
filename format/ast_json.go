package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/eqsolve/parser"
)

// ASTJSONEncoder writes a parsed system as indented JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(sys *parser.System) error {
	text, err := json.MarshalIndent(sys, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}
