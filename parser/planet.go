package parser

import "github.com/dhamidi/esdata/model"

// planet parses a planet record whose "planet" tag was consumed at offset at.
func (c *cursor) planet(at int) (*model.Planet, error) {
	leave := c.enter("planet")
	defer leave()

	d := &planetDraft{}
	name, err := c.recordName("planet")
	if err != nil {
		return nil, err
	}
	d.name = name

	err = c.dispatch(1, []field{
		one("attributes", func(c *cursor) error {
			words, err := c.words()
			if err != nil {
				return err
			}
			d.attributes = words
			return nil
		}),
		one("landscape", path(&d.landscape)),
		one("government", text(&d.government)),
		many("description", texts(&d.description)),
		one("music", path(&d.music)),
		many("spaceport", texts(&d.spaceport)),
		many("shipyard", texts(&d.shipyard)),
		many("outfitter", texts(&d.outfitter)),
		one("bribe", real32(&d.bribe)),
		one("security", real32(&d.security)),
		one(`"required reputation"`, real32(&d.requiredReputation)),
		block(one("tribute", func(c *cursor) error {
			tribute, err := c.tribute(2)
			if err != nil {
				return err
			}
			d.tribute = tribute
			return nil
		})),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

// tribute reads the tribute value and its threshold and fleet lines at depth.
func (c *cursor) tribute(depth int) (*model.Tribute, error) {
	at := c.pos
	d := &tributeDraft{}
	value, err := integer[uint32](c)
	if err != nil {
		return nil, err
	}
	d.value = value
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	err = c.permute(depth, []field{
		one("threshold", whole(&d.threshold)),
		one("fleet", func(c *cursor) error {
			fleet, err := c.fleet()
			if err != nil {
				return err
			}
			d.fleet = &fleet
			return nil
		}),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}
