package parser

import "github.com/dhamidi/esdata/model"

// start parses a start record whose "start" tag was consumed at offset at.
func (c *cursor) start(at int) (*model.Start, error) {
	leave := c.enter("start")
	defer leave()

	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	d := &startDraft{}
	err := c.permute(1, []field{
		one("system", text(&d.system)),
		one("planet", text(&d.planet)),
		one("date", func(c *cursor) error {
			date, err := c.date()
			if err != nil {
				return err
			}
			d.date = &date
			return nil
		}),
		one("set", text(&d.set)),
		block(one("account", func(c *cursor) error {
			account, err := c.account(2)
			if err != nil {
				return err
			}
			d.account = account
			return nil
		})),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

func (c *cursor) account(depth int) (*model.Account, error) {
	at := c.pos
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	d := &accountDraft{}
	err := c.permute(depth, []field{
		one("credits", whole(&d.credits)),
		one("score", whole(&d.score)),
		block(one("mortgage", func(c *cursor) error {
			mortgage, err := c.mortgage(depth + 1)
			if err != nil {
				return err
			}
			d.mortgage = mortgage
			return nil
		})),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}

// mortgage reads the "Mortgage" type name and the principal, interest and
// term lines below it.
func (c *cursor) mortgage(depth int) (*model.Mortgage, error) {
	at := c.pos
	if !c.keyword("Mortgage") {
		return nil, c.mismatch(`"Mortgage"`)
	}
	if err := c.endLine(); err != nil {
		return nil, err
	}
	c.skipBlankLines()

	d := &mortgageDraft{}
	err := c.permute(depth, []field{
		one("principal", whole(&d.principal)),
		one("interest", real32(&d.interest)),
		one("term", whole(&d.term)),
	})
	if err != nil {
		return nil, err
	}
	return d.finalize(c, at)
}
