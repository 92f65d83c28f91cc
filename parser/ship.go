package parser

import (
	"strconv"

	"github.com/dhamidi/esdata/model"
)

// ship parses a ship record whose "ship" tag was consumed at offset at. The
// header may carry a subclass name after the ship name.
func (c *cursor) ship(at int) (*model.Ship, error) {
	leave := c.enter("ship")
	defer leave()

	d := &shipDraft{}
	if err := c.separator(); err != nil {
		return nil, err
	}
	name, err := c.str()
	if err != nil {
		return nil, err
	}
	d.name = name
	c.relabel("ship " + strconv.Quote(name))
	if d.subclass, err = c.optionalLabel(); err != nil {
		return nil, err
	}
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	err = c.dispatch(1, []field{
		one("plural", text(&d.plural)),
		block(one("sprite", func(c *cursor) error {
			sprite, err := c.sprite(2)
			if err != nil {
				return err
			}
			d.sprite = sprite
			return nil
		})),
		one("thumbnail", path(&d.thumbnail)),
		block(one("attributes", func(c *cursor) error {
			attributes, err := c.shipAttributes(2)
			if err != nil {
				return err
			}
			d.attributes = attributes
			return nil
		})),
		block(one("outfits", func(c *cursor) error {
			outfits, err := c.outfits(2)
			if err != nil {
				return err
			}
			d.outfits = append(d.outfits, outfits...)
			return nil
		})),
		many("engine", func(c *cursor) error {
			x, y, err := c.coordinates()
			if err != nil {
				return err
			}
			engine := model.Engine{X: x, Y: y}
			start := c.pos
			if c.blanks() && !c.atLineEnd() {
				extra, err := c.f32()
				if err != nil {
					return err
				}
				engine.Extra = &extra
			} else {
				c.pos = start
			}
			d.engine = append(d.engine, engine)
			return nil
		}),
		many("gun", hardpoint(&d.gun)),
		many("turret", hardpoint(&d.turret)),
		many("fighter", hardpoint(&d.fighter)),
		many("drone", hardpoint(&d.drone)),
		many("leak", func(c *cursor) error {
			label, err := c.str()
			if err != nil {
				return err
			}
			if err := c.separator(); err != nil {
				return err
			}
			first, err := integer[uint32](c)
			if err != nil {
				return err
			}
			if err := c.separator(); err != nil {
				return err
			}
			second, err := integer[uint32](c)
			if err != nil {
				return err
			}
			d.leak = append(d.leak, model.Leak{Label: label, First: first, Second: second})
			return nil
		}),
		many("explode", func(c *cursor) error {
			label, err := c.str()
			if err != nil {
				return err
			}
			if err := c.separator(); err != nil {
				return err
			}
			count, err := integer[uint32](c)
			if err != nil {
				return err
			}
			d.explode = append(d.explode, model.Explode{Label: label, Count: count})
			return nil
		}),
		one(`"final explode"`, text(&d.finalExplode)),
		many("description", texts(&d.description)),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

func (c *cursor) coordinates() (float32, float32, error) {
	x, err := c.f32()
	if err != nil {
		return 0, 0, err
	}
	if err := c.separator(); err != nil {
		return 0, 0, err
	}
	y, err := c.f32()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func hardpoint(dst *[]model.Hardpoint) func(c *cursor) error {
	return func(c *cursor) error {
		x, y, err := c.coordinates()
		if err != nil {
			return err
		}
		label, err := c.optionalLabel()
		if err != nil {
			return err
		}
		*dst = append(*dst, model.Hardpoint{X: x, Y: y, Label: label})
		return nil
	}
}

// sprite reads a sprite path. When the next line at depth starts with
// "frame time" the sprite is animated and its frame lines follow.
func (c *cursor) sprite(depth int) (model.Sprite, error) {
	name, err := c.resourcePath()
	if err != nil {
		return nil, err
	}
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	if _, ok := c.peekTag(depth, []string{`"frame time"`}); !ok {
		return &model.SimpleSprite{Name: name}, nil
	}
	at := c.pos
	d := &animationDraft{}
	err = c.permute(depth, []field{
		one(`"frame time"`, whole(&d.frameTime)),
		one(`"delay"`, whole(&d.delay)),
		one(`"random start frame"`, func(c *cursor) error {
			d.randomStartFrame = true
			return nil
		}),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at, name)
}

// outfits reads the outfit lines at depth. Each names an outfit and an
// optional count defaulting to one; blank lines may split them into groups.
func (c *cursor) outfits(depth int) ([]model.Outfit, error) {
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	var outfits []model.Outfit
	err := c.nestedLines(depth, "outfit name", func() error {
		name, err := c.str()
		if err != nil {
			return err
		}
		outfit := model.Outfit{Name: name, Count: 1}
		start := c.pos
		if c.blanks() && !c.atLineEnd() {
			count, err := integer[uint32](c)
			if err != nil {
				return err
			}
			outfit.Count = count
		} else {
			c.pos = start
		}
		outfits = append(outfits, outfit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outfits, nil
}

func (c *cursor) shipAttributes(depth int) (*model.ShipAttributes, error) {
	at := c.pos
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	d := &attributesDraft{}
	err := c.dispatch(depth, []field{
		block(one("licenses", func(c *cursor) error {
			if err := c.endLine(); err != nil {
				return err
			}
			c.skipBlankLines()
			return c.nestedLines(depth+1, "license name", func() error {
				license, err := c.str()
				if err != nil {
					return err
				}
				d.licenses = append(d.licenses, license)
				return nil
			})
		})),
		one("category", text(&d.category)),
		one(`"cost"`, whole(&d.cost)).or("cost"),
		one(`"shields"`, wholeOr(&d.shields)),
		one(`"hull"`, whole(&d.hull)),
		one(`"automaton"`, func(c *cursor) error {
			v, err := integer[uint32](c)
			if err != nil {
				return err
			}
			d.automaton = v != 0
			return nil
		}),
		one(`"required crew"`, wholeOr(&d.requiredCrew)),
		one(`"bunks"`, wholeOr(&d.bunks)),
		one(`"mass"`, whole(&d.mass)),
		one(`"drag"`, real32(&d.drag)),
		one(`"heat dissipation"`, real32(&d.heatDissipation)),
		one(`"fuel capacity"`, wholeOr(&d.fuelCapacity)),
		one(`"cargo space"`, wholeOr(&d.cargoSpace)),
		one(`"outfit space"`, whole(&d.outfitSpace)),
		one(`"weapon capacity"`, wholeOr(&d.weaponCapacity)),
		one(`"engine capacity"`, whole(&d.engineCapacity)),
		block(one("weapon", func(c *cursor) error {
			weapon, err := c.shipWeapon(depth + 1)
			if err != nil {
				return err
			}
			d.weapon = weapon
			return nil
		})),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

func (c *cursor) shipWeapon(depth int) (*model.ShipWeapon, error) {
	at := c.pos
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	d := &weaponDraft{}
	err := c.dispatch(depth, []field{
		one(`"blast radius"`, whole(&d.blastRadius)),
		one(`"shield damage"`, whole(&d.shieldDamage)),
		one(`"hull damage"`, whole(&d.hullDamage)),
		one(`"hit force"`, whole(&d.hitForce)),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}
