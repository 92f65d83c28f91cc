// Package grammar holds an EBNF description of the Endless Sky data format
// and matches its lexical productions against text.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// Filename is the name the embedded grammar reports in error positions.
const Filename = "esdata.ebnf"

// Start is the production a whole data file matches.
const Start = "Document"

//go:embed esdata.ebnf
var source []byte

// Source returns the embedded grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(Filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Check parses the embedded grammar and verifies that every production is
// defined, reachable from Start and well formed.
func Check() error {
	grammar, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(grammar, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}
