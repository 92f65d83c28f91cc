package parser

import "golang.org/x/exp/constraints"

// Value parsers that store into a draft slot. They let the record grammars
// be written as field tables.

func text(dst **string) func(c *cursor) error {
	return func(c *cursor) error {
		s, err := c.str()
		if err != nil {
			return err
		}
		*dst = &s
		return nil
	}
}

func texts(dst *[]string) func(c *cursor) error {
	return func(c *cursor) error {
		s, err := c.str()
		if err != nil {
			return err
		}
		*dst = append(*dst, s)
		return nil
	}
}

func path(dst **string) func(c *cursor) error {
	return func(c *cursor) error {
		s, err := c.resourcePath()
		if err != nil {
			return err
		}
		*dst = &s
		return nil
	}
}

func real32(dst **float32) func(c *cursor) error {
	return func(c *cursor) error {
		v, err := c.f32()
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func whole[T constraints.Unsigned](dst **T) func(c *cursor) error {
	return func(c *cursor) error {
		v, err := integer[T](c)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// wholeOr stores into a slot whose absence defaults to zero.
func wholeOr[T constraints.Unsigned](dst *T) func(c *cursor) error {
	return func(c *cursor) error {
		v, err := integer[T](c)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// optionalLabel reads a trailing string after blanks, if the line has one.
func (c *cursor) optionalLabel() (*string, error) {
	start := c.pos
	if !c.blanks() || c.atLineEnd() {
		c.pos = start
		return nil, nil
	}
	s, err := c.str()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// nestedLines reads one or more lines at depth, each parsed by line, until
// a line no longer starts at that depth. Blank lines between them are
// skipped.
func (c *cursor) nestedLines(depth int, what string, line func() error) error {
	count := 0
	for {
		start := c.pos
		if !c.indents(depth) || isBlank(c.peek()) {
			c.pos = start
			break
		}
		if err := line(); err != nil {
			return err
		}
		if err := c.endLine(); err != nil {
			return err
		}
		c.skipBlankLines()
		count++
	}
	if count == 0 {
		return c.mismatch(what)
	}
	return nil
}
