package parser

import (
	"strconv"

	"github.com/dhamidi/esdata/model"
)

// galaxy parses a galaxy record whose "galaxy" tag was consumed at offset at.
func (c *cursor) galaxy(at int) (*model.Galaxy, error) {
	leave := c.enter("galaxy")
	defer leave()

	d := &galaxyDraft{}
	name, err := c.recordName("galaxy")
	if err != nil {
		return nil, err
	}
	d.name = name

	err = c.permute(1, []field{
		one("pos", func(c *cursor) error {
			pos, err := c.point()
			if err != nil {
				return err
			}
			d.pos = &pos
			return nil
		}),
		one("sprite", path(&d.sprite)),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

// recordName reads the name following a record tag up to the end of the
// header line, and names the current context after it.
func (c *cursor) recordName(tag string) (string, error) {
	if err := c.separator(); err != nil {
		return "", err
	}
	name, err := c.str()
	if err != nil {
		return "", err
	}
	c.relabel(tag + " " + strconv.Quote(name))
	if err := c.endLine(); err != nil {
		return "", err
	}
	c.skipBlankLines()
	return name, nil
}
