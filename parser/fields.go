package parser

type arity int

const (
	// once fields take a single occurrence.
	once arity = iota
	// repeated fields take any number of occurrences, kept in source order.
	repeated
)

// field describes one tagged line of a record body. value runs after the
// tag and any following blanks were consumed. Inline values must stop
// before the line terminator; block values consume their own line
// terminator together with any deeper lines that belong to them.
type field struct {
	tags  []string
	arity arity
	block bool
	value func(c *cursor) error
}

func one(tag string, value func(c *cursor) error) field {
	return field{tags: []string{tag}, arity: once, value: value}
}

func many(tag string, value func(c *cursor) error) field {
	return field{tags: []string{tag}, arity: repeated, value: value}
}

func block(f field) field {
	f.block = true
	return f
}

// or adds alternative spellings of the tag.
func (f field) or(tags ...string) field {
	f.tags = append(append([]string(nil), f.tags...), tags...)
	return f
}

// occurrence consumes one line of f at depth: indentation, tag, value, line
// terminator and any blank lines after it. It reports false without
// consuming anything when the tag is absent. Errors after the tag matched
// are final.
func (c *cursor) occurrence(depth int, f *field) (bool, error) {
	tag, ok := c.lookTag(depth, f.tags)
	if !ok {
		return false, nil
	}
	leave := c.enter(tag)
	defer leave()

	c.blanks()
	if err := f.value(c); err != nil {
		return true, err
	}
	if !f.block {
		if err := c.endLine(); err != nil {
			return true, err
		}
	}
	c.skipBlankLines()
	return true, nil
}

// run consumes one occurrence of a once field, or the whole run of
// consecutive occurrences of a repeated field.
func (c *cursor) run(depth int, f *field) (bool, error) {
	matched, err := c.occurrence(depth, f)
	if err != nil || !matched || f.arity == once {
		return matched, err
	}
	for {
		more, err := c.occurrence(depth, f)
		if err != nil {
			return true, err
		}
		if !more {
			return true, nil
		}
	}
}

// permute parses a small fixed set of fields appearing in any order. It
// sweeps the fields that are still open until a full sweep consumes
// nothing. A once field closes after its first match; a repeated field
// stays open so that later runs of the same tag are appended. Whether the
// required fields were all seen is left to the draft being filled.
func (c *cursor) permute(depth int, fields []field) error {
	closed := make([]bool, len(fields))
	for progress := true; progress; {
		progress = false
		for i := range fields {
			if closed[i] {
				continue
			}
			matched, err := c.run(depth, &fields[i])
			if err != nil {
				return err
			}
			if matched {
				progress = true
				if fields[i].arity == once {
					closed[i] = true
				}
			}
		}
	}
	return nil
}

// dispatch parses a record body against a precedence list. It looks ahead
// for the first field whose tag starts the next line at depth, consumes it
// and restarts from the top of the list, stopping when no tag matches. A
// once field found a second time is an error.
func (c *cursor) dispatch(depth int, fields []field) error {
	seen := make([]bool, len(fields))
scan:
	for {
		for i := range fields {
			f := &fields[i]
			tag, ok := c.peekTag(depth, f.tags)
			if !ok {
				continue
			}
			if f.arity == once && seen[i] {
				at := c.pos
				c.indents(depth)
				err := c.mismatch("at most one " + tag)
				c.pos = at
				return err
			}
			seen[i] = true
			if _, err := c.run(depth, f); err != nil {
				return err
			}
			continue scan
		}
		return nil
	}
}
