package parser

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location in a data file. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// lineIndex maps byte offsets to line and column numbers.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (li *lineIndex) position(file string, offset int) Position {
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.SearchInts(li.starts, offset+1) - 1
	lineStart := li.starts[line]
	return Position{
		File:   file,
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(li.src[lineStart:offset]) + 1,
	}
}
