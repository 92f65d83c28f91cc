package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/esdata/model"
	"golang.org/x/exp/constraints"
)

// cursor walks the input string. Every primitive either consumes what it
// recognized or leaves pos untouched and reports a mismatch.
type cursor struct {
	src      string
	pos      int
	file     string
	maxDepth int
	lines    *lineIndex
	context  []string
}

func newCursor(src string) *cursor {
	return &cursor{
		src:      src,
		maxDepth: defaultMaxDepth,
		lines:    newLineIndex(src),
	}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) peek() byte {
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

func (c *cursor) rest() string {
	return c.src[c.pos:]
}

func (c *cursor) position(offset int) Position {
	return c.lines.position(c.file, offset)
}

// enter pushes a context label reported by mismatches until the returned
// function is called.
func (c *cursor) enter(label string) func() {
	c.context = append(c.context, label)
	n := len(c.context)
	return func() {
		c.context = c.context[:n-1]
	}
}

// relabel replaces the innermost context label.
func (c *cursor) relabel(label string) {
	if len(c.context) > 0 {
		c.context[len(c.context)-1] = label
	}
}

func (c *cursor) mismatch(expected string) *Error {
	return c.mismatchAt(c.pos, expected)
}

func (c *cursor) mismatchAt(offset int, expected string) *Error {
	return &Error{
		Kind:     KindMismatch,
		Pos:      c.position(offset),
		Context:  append([]string(nil), c.context...),
		Expected: expected,
	}
}

func (c *cursor) invalid(offset int, record, field string) *Error {
	return &Error{
		Kind:   KindValidation,
		Pos:    c.position(offset),
		Record: record,
		Field:  field,
	}
}

// indent consumes one indentation unit: a tab or exactly four spaces.
func (c *cursor) indent() bool {
	if c.peek() == '\t' {
		c.pos++
		return true
	}
	if strings.HasPrefix(c.rest(), "    ") {
		c.pos += 4
		return true
	}
	return false
}

// indents consumes exactly n indentation units or nothing.
func (c *cursor) indents(n int) bool {
	start := c.pos
	for i := 0; i < n; i++ {
		if !c.indent() {
			c.pos = start
			return false
		}
	}
	return true
}

// blanks consumes one or more spaces or tabs.
func (c *cursor) blanks() bool {
	start := c.pos
	for c.pos < len(c.src) && isBlank(c.src[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

// atLineEnd reports whether the cursor sits on a line terminator or at the
// end of the input.
func (c *cursor) atLineEnd() bool {
	rest := c.rest()
	return rest == "" || rest[0] == '\n' || strings.HasPrefix(rest, "\r\n")
}

// newline consumes "\n" or "\r\n".
func (c *cursor) newline() bool {
	switch {
	case c.peek() == '\n':
		c.pos++
		return true
	case strings.HasPrefix(c.rest(), "\r\n"):
		c.pos += 2
		return true
	}
	return false
}

// endLine consumes trailing blanks and the line terminator. The end of the
// input also ends a line.
func (c *cursor) endLine() error {
	start := c.pos
	c.blanks()
	if c.newline() || c.eof() {
		return nil
	}
	c.pos = start
	return c.mismatch("end of line")
}

// skipBlankLines consumes lines holding nothing but spaces and tabs.
func (c *cursor) skipBlankLines() {
	for !c.eof() {
		start := c.pos
		c.blanks()
		if c.newline() || c.eof() {
			continue
		}
		c.pos = start
		return
	}
}

// keyword consumes tag when it is followed by a blank, a line terminator or
// the end of the input.
func (c *cursor) keyword(tag string) bool {
	rest := c.rest()
	if !strings.HasPrefix(rest, tag) {
		return false
	}
	if len(rest) > len(tag) {
		next := rest[len(tag)]
		if !isBlank(next) && next != '\n' && next != '\r' {
			return false
		}
	}
	c.pos += len(tag)
	return true
}

// lookTag consumes depth indentation units followed by one of tags and
// returns the tag found. On failure nothing is consumed.
func (c *cursor) lookTag(depth int, tags []string) (string, bool) {
	start := c.pos
	if !c.indents(depth) {
		return "", false
	}
	for _, tag := range tags {
		if c.keyword(tag) {
			return tag, true
		}
	}
	c.pos = start
	return "", false
}

// peekTag is lookTag without consuming anything.
func (c *cursor) peekTag(depth int, tags []string) (string, bool) {
	start := c.pos
	tag, ok := c.lookTag(depth, tags)
	c.pos = start
	return tag, ok
}

// str reads a string token, trying a double-quoted run, then a bare word,
// then a backtick-quoted run. Quoted runs are taken verbatim.
func (c *cursor) str() (string, error) {
	ch := c.peek()
	switch {
	case ch == '"':
		return c.delimited('"')
	case isBareChar(ch):
		start := c.pos
		for c.pos < len(c.src) && isBareChar(c.src[c.pos]) {
			c.pos++
		}
		return c.src[start:c.pos], nil
	case ch == '`':
		return c.delimited('`')
	}
	return "", c.mismatch("string")
}

// delimited reads up to the next quote, across line ends if need be.
func (c *cursor) delimited(quote byte) (string, error) {
	start := c.pos
	rest := c.src[start+1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return "", c.mismatchAt(start, fmt.Sprintf("closing %c", quote))
	}
	c.pos = start + 1 + end + 1
	return rest[:end], nil
}

// resourcePath reads a double-quoted run or else everything up to the end
// of the line, which lets unquoted paths hold slashes and spaces.
func (c *cursor) resourcePath() (string, error) {
	if c.peek() == '"' {
		return c.delimited('"')
	}
	start := c.pos
	for c.pos < len(c.src) && !c.atLineEnd() {
		c.pos++
	}
	if c.pos == start {
		return "", c.mismatch("resource path")
	}
	return c.src[start:c.pos], nil
}

// words reads zero or more blank-separated strings up to the end of the
// line.
func (c *cursor) words() ([]string, error) {
	values := []string{}
	for {
		start := c.pos
		if len(values) > 0 && !c.blanks() {
			return values, nil
		}
		if c.atLineEnd() {
			c.pos = start
			return values, nil
		}
		s, err := c.str()
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
}

// integer reads a run of ASCII digits into T. Values that do not fit T are
// rejected rather than clamped.
func integer[T constraints.Unsigned](c *cursor) (T, error) {
	start := c.pos
	for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return 0, c.mismatch(fmt.Sprintf("integer (%T)", T(0)))
	}
	v, err := strconv.ParseUint(c.src[start:c.pos], 10, 64)
	if err == nil && uint64(T(v)) == v {
		return T(v), nil
	}
	c.pos = start
	return 0, c.mismatchAt(start, fmt.Sprintf("integer fitting %T", T(0)))
}

// number reads a signed decimal literal with optional fraction and
// exponent, parsed at the given bit size.
func (c *cursor) number(bitSize int) (float64, error) {
	start := c.pos
	i := start
	if i < len(c.src) && (c.src[i] == '+' || c.src[i] == '-') {
		i++
	}
	intDigits := digitsFrom(c.src, i)
	i += intDigits
	fracDigits := 0
	if i < len(c.src) && c.src[i] == '.' {
		fracDigits = digitsFrom(c.src, i+1)
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, c.mismatch(fmt.Sprintf("float%d", bitSize))
	}
	if i < len(c.src) && (c.src[i] == 'e' || c.src[i] == 'E') {
		j := i + 1
		if j < len(c.src) && (c.src[j] == '+' || c.src[j] == '-') {
			j++
		}
		if n := digitsFrom(c.src, j); n > 0 {
			i = j + n
		}
	}
	v, err := strconv.ParseFloat(c.src[start:i], bitSize)
	if err != nil {
		return 0, c.mismatchAt(start, fmt.Sprintf("float%d in range", bitSize))
	}
	c.pos = i
	return v, nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.number(32)
	return float32(v), err
}

func (c *cursor) f64() (float64, error) {
	return c.number(64)
}

// separator requires the blanks between two values on one line.
func (c *cursor) separator() error {
	if !c.blanks() {
		return c.mismatch("blank")
	}
	return nil
}

func (c *cursor) point() (model.Position, error) {
	x, err := c.f64()
	if err != nil {
		return model.Position{}, err
	}
	if err := c.separator(); err != nil {
		return model.Position{}, err
	}
	y, err := c.f64()
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{X: x, Y: y}, nil
}

// date reads "day month year".
func (c *cursor) date() (model.Date, error) {
	day, err := integer[uint8](c)
	if err != nil {
		return model.Date{}, err
	}
	if err := c.separator(); err != nil {
		return model.Date{}, err
	}
	month, err := integer[uint8](c)
	if err != nil {
		return model.Date{}, err
	}
	if err := c.separator(); err != nil {
		return model.Date{}, err
	}
	year, err := integer[uint16](c)
	if err != nil {
		return model.Date{}, err
	}
	return model.Date{Year: year, Month: month, Day: day}, nil
}

// comment consumes a line starting with "//" or "#".
func (c *cursor) comment() bool {
	rest := c.rest()
	if !strings.HasPrefix(rest, "//") && !strings.HasPrefix(rest, "#") {
		return false
	}
	for !c.atLineEnd() {
		c.pos++
	}
	c.newline()
	return true
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBareChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '\'' || ch == '-'
}

func digitsFrom(s string, i int) int {
	n := 0
	for i+n < len(s) && isDigit(s[i+n]) {
		n++
	}
	return n
}
