package parser

import (
	"fmt"

	"github.com/dhamidi/esdata/model"
)

// system parses a system record whose "system" tag was consumed at offset at.
func (c *cursor) system(at int) (*model.System, error) {
	leave := c.enter("system")
	defer leave()

	d := &systemDraft{}
	name, err := c.recordName("system")
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
		one("government", text(&d.government)),
		one("habitable", real32(&d.habitable)),
		one("belt", whole(&d.belt)),
		one("haze", path(&d.haze)),
		many("link", texts(&d.links)),
		many("asteroids", func(c *cursor) error {
			name, first, second, err := c.deposit()
			if err != nil {
				return err
			}
			d.asteroids = append(d.asteroids, model.Asteroids{Name: name, FirstValue: first, SecondValue: second})
			return nil
		}),
		many("minables", func(c *cursor) error {
			name, first, second, err := c.deposit()
			if err != nil {
				return err
			}
			d.minables = append(d.minables, model.Minables{Name: name, FirstValue: first, SecondValue: second})
			return nil
		}),
		many("trade", func(c *cursor) error {
			name, err := c.str()
			if err != nil {
				return err
			}
			if err := c.separator(); err != nil {
				return err
			}
			price, err := integer[uint32](c)
			if err != nil {
				return err
			}
			d.trades = append(d.trades, model.Trade{Name: name, Price: price})
			return nil
		}),
		many("fleet", func(c *cursor) error {
			fleet, err := c.fleet()
			if err != nil {
				return err
			}
			d.fleets = append(d.fleets, fleet)
			return nil
		}),
		block(many("object", func(c *cursor) error {
			obj, err := c.systemObject(1)
			if err != nil {
				return err
			}
			d.objects = append(d.objects, obj)
			return nil
		})),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

// deposit reads the "name count value" triple shared by asteroids and
// minables.
func (c *cursor) deposit() (string, uint32, float32, error) {
	name, err := c.str()
	if err != nil {
		return "", 0, 0, err
	}
	if err := c.separator(); err != nil {
		return "", 0, 0, err
	}
	first, err := integer[uint32](c)
	if err != nil {
		return "", 0, 0, err
	}
	if err := c.separator(); err != nil {
		return "", 0, 0, err
	}
	second, err := c.f32()
	if err != nil {
		return "", 0, 0, err
	}
	return name, first, second, nil
}

func (c *cursor) fleet() (model.Fleet, error) {
	kind, err := c.str()
	if err != nil {
		return model.Fleet{}, err
	}
	if err := c.separator(); err != nil {
		return model.Fleet{}, err
	}
	count, err := integer[uint16](c)
	if err != nil {
		return model.Fleet{}, err
	}
	return model.Fleet{Kind: kind, Count: count}, nil
}

// systemObject parses the rest of an "object" line found at depth and the
// fields below it. A nested object one level deeper becomes a child.
func (c *cursor) systemObject(depth int) (model.SystemObject, error) {
	at := c.pos
	if depth > c.maxDepth {
		return model.SystemObject{}, c.mismatch(fmt.Sprintf("objects nested at most %d levels deep", c.maxDepth))
	}
	d := &objectDraft{}
	if !c.atLineEnd() {
		name, err := c.str()
		if err != nil {
			return model.SystemObject{}, err
		}
		d.name = &name
	}
	if err := c.endLine(); err != nil {
		return model.SystemObject{}, err
	}
	c.skipBlankLines()

	err := c.dispatch(depth+1, []field{
		one("sprite", path(&d.sprite)),
		one("distance", real32(&d.distance)),
		one("period", real32(&d.period)),
		one("offset", real32(&d.offset)),
		block(many("object", func(c *cursor) error {
			child, err := c.systemObject(depth + 1)
			if err != nil {
				return err
			}
			d.objects = append(d.objects, child)
			return nil
		})),
	})
	if err != nil {
		return model.SystemObject{}, err
	}
	return d.finalize(c, at)
}
