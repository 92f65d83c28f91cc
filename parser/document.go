package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/esdata/model"
	"github.com/tliron/commonlog"
)

const defaultMaxDepth = 64

var log = commonlog.GetLogger("esdata.parser")

type Option func(*cursor)

// WithFile names the source in error positions.
func WithFile(name string) Option {
	return func(c *cursor) {
		c.file = name
	}
}

// WithMaxDepth bounds how deeply system objects may nest. Deeper input
// fails with a mismatch instead of recursing further.
func WithMaxDepth(depth int) Option {
	return func(c *cursor) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// Entry is a parsed record with the source span it was read from.
type Entry struct {
	Object model.Object
	Span   Span
}

type Document struct {
	Entries []Entry
}

func (d *Document) Objects() []model.Object {
	if d == nil {
		return nil
	}
	objects := make([]model.Object, len(d.Entries))
	for i, entry := range d.Entries {
		objects[i] = entry.Object
	}
	return objects
}

// record is one top-level alternative: a header tag and the grammar that
// takes over once the tag matched.
type record struct {
	tag   string
	parse func(c *cursor, at int) (model.Object, error)
}

// records lists the top-level alternatives in the order they are tried.
var records = []record{
	{"start", func(c *cursor, at int) (model.Object, error) { return c.start(at) }},
	{"planet", func(c *cursor, at int) (model.Object, error) { return c.planet(at) }},
	{"galaxy", func(c *cursor, at int) (model.Object, error) { return c.galaxy(at) }},
	{"system", func(c *cursor, at int) (model.Object, error) { return c.system(at) }},
	{"ship", func(c *cursor, at int) (model.Object, error) { return c.ship(at) }},
}

// Parse reads every record of src. It fails on empty input and on the
// first line that no record, blank line or comment accounts for.
func Parse(src []byte, opts ...Option) ([]model.Object, error) {
	doc, err := ParseDocument(src, opts...)
	if err != nil {
		return nil, err
	}
	return doc.Objects(), nil
}

// ParseBestEffort returns the records parsed before the first problem in
// src. Everything from that point on is dropped without an error.
func ParseBestEffort(src []byte, opts ...Option) []model.Object {
	doc, err := ParseDocument(src, opts...)
	if err != nil {
		log.Debugf("best-effort parse kept %d records: %s", len(doc.Entries), err)
	}
	return doc.Objects()
}

// ParseDocument is Parse that also reports the span of each record. On
// failure the document holds the records read before the error.
func ParseDocument(src []byte, opts ...Option) (*Document, error) {
	c := newCursor(string(src))
	for _, opt := range opts {
		opt(c)
	}
	doc, err := c.document()
	if err != nil {
		return doc, err
	}
	return doc, nil
}

// document runs the top-level loop. On failure it returns the records read
// so far together with the error.
func (c *cursor) document() (*Document, *Error) {
	doc := &Document{}
	for first := true; first || !c.eof(); first = false {
		entry, err := c.item()
		if err != nil {
			return doc, err
		}
		if entry != nil {
			doc.Entries = append(doc.Entries, *entry)
		}
	}
	return doc, nil
}

// item consumes one record, blank line or comment. A header tag that does
// not match lets the next alternative try; any error after a header tag
// matched is returned as is.
func (c *cursor) item() (*Entry, *Error) {
	at := c.pos
	var tried []*Error
	for _, r := range records {
		if !c.keyword(r.tag) {
			tried = append(tried, c.tagMismatch(r.tag))
			continue
		}
		obj, err := r.parse(c, at)
		if err != nil {
			c.pos = at
			return nil, asError(err)
		}
		log.Debugf("parsed %s %q at %s", obj.Kind(), model.NameOf(obj), c.position(at))
		return &Entry{
			Object: obj,
			Span:   Span{Start: c.position(at), End: c.position(c.pos)},
		}, nil
	}
	if c.blanks() && c.eof() {
		return nil, nil
	}
	if c.newline() {
		return nil, nil
	}
	c.pos = at
	tried = append(tried, c.mismatch("end of line"))
	if c.comment() {
		return nil, nil
	}
	tried = append(tried, c.mismatch(`comment starting with "//" or "#"`))
	return nil, aggregate(tried)
}

// tagMismatch reports a missing record tag at the first byte that differs
// from it, so that near misses such as "shipp" point past the shared prefix.
func (c *cursor) tagMismatch(tag string) *Error {
	rest := c.rest()
	n := 0
	for n < len(tag) && n < len(rest) && rest[n] == tag[n] {
		n++
	}
	if n == len(tag) {
		return c.mismatchAt(c.pos+n, fmt.Sprintf("blank or end of line after %q", tag))
	}
	return c.mismatchAt(c.pos+n, fmt.Sprintf("%q record", tag))
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindMismatch, Expected: err.Error()}
}
