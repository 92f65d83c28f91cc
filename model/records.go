package model

type Galaxy struct {
	Name   string
	Pos    Position
	Sprite *string
}

type System struct {
	Name       string
	Pos        Position
	Government string
	Habitable  float32
	Belt       *uint32
	Haze       *string
	Links      []string
	Asteroids  []Asteroids
	Minables   []Minables
	Trades     []Trade
	Fleets     []Fleet
	Objects    []SystemObject
}

// SystemObject is a star, planet or moon orbiting inside a system. Objects
// nest to any depth; the tree shape follows the indentation of the source.
type SystemObject struct {
	Name     *string
	Sprite   *string
	Distance *float32
	Period   float32
	Offset   *float32
	Objects  []SystemObject
}

// Depth reports the height of the object tree rooted at o, counting o.
func (o SystemObject) Depth() int {
	deepest := 0
	for _, child := range o.Objects {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

type Planet struct {
	Name               string
	Attributes         []string
	Landscape          *string
	Government         *string
	Music              *string
	Description        []string
	Spaceport          []string
	Shipyard           []string
	Outfitter          []string
	Bribe              *float32
	Security           *float32
	Tribute            *Tribute
	RequiredReputation *float32
}

type Start struct {
	Date    Date
	System  string
	Planet  string
	Account Account
	Set     string
}
