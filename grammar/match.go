package grammar

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Matcher measures how much of an input a production accepts. Alternatives
// and repetitions are matched greedily and the longest alternative wins,
// so it is meant for the lexical productions; the indentation-dependent
// record productions are only approximated by the grammar.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

func NewMatcher(grammar ebnf.Grammar) *Matcher {
	return &Matcher{grammar: grammar}
}

// Match returns the length in bytes of the longest prefix of input that
// production accepts. A production that matches the empty string reports
// zero with no error.
func (m *Matcher) Match(production, input string) (int, error) {
	if _, ok := m.grammar[production]; !ok {
		return 0, fmt.Errorf("unknown production %q", production)
	}
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0), nil
}

// Accepts reports whether production matches all of input.
func (m *Matcher) Accepts(production, input string) (bool, error) {
	n, err := m.Match(production, input)
	if err != nil {
		return false, err
	}
	return n == len(input), nil
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production with memoization and cycle detection.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := m.memo[key]; ok {
		return result
	}
	// Left recursion at the same offset cannot make progress.
	if m.visiting[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	result := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = result
	return result
}

func (m *Matcher) matchToken(token string, offset int) int {
	if offset+len(token) > len(m.input) {
		return -1
	}
	if m.input[offset:offset+len(token)] == token {
		return len(token)
	}
	return -1
}

// matchRange matches one rune between begin and end inclusive.
func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if r == utf8.RuneError && size <= 1 {
		return -1
	}
	if r >= lo && r <= hi {
		return size
	}
	return -1
}
