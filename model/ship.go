package model

type Ship struct {
	Name         string
	Subclass     *string
	Plural       *string
	Sprite       Sprite
	Thumbnail    string
	Attributes   ShipAttributes
	Outfits      []Outfit
	Engine       []Engine
	Gun          []Hardpoint
	Turret       []Hardpoint
	Fighter      []Hardpoint
	Drone        []Hardpoint
	Leak         []Leak
	Explode      []Explode
	FinalExplode *string
	Description  []string
}

type ShipAttributes struct {
	Licenses        []string
	Category        string
	Cost            uint32
	Shields         uint32
	Hull            uint32
	Automaton       bool
	RequiredCrew    uint32
	Bunks           uint32
	Mass            uint32
	Drag            float32
	HeatDissipation float32
	FuelCapacity    uint32
	CargoSpace      uint32
	OutfitSpace     uint32
	WeaponCapacity  uint32
	EngineCapacity  uint32
	Weapon          ShipWeapon
}

// ShipWeapon is the weapon block of a ship's attributes, describing the
// explosion caused when the ship is destroyed.
type ShipWeapon struct {
	BlastRadius  uint32
	ShieldDamage uint32
	HullDamage   uint32
	HitForce     uint32
}

type Outfit struct {
	Name  string
	Count uint32
}

type Engine struct {
	X     float32
	Y     float32
	Extra *float32
}

// Hardpoint is a gun, turret, fighter bay or drone bay location with an
// optional label naming what it holds.
type Hardpoint struct {
	X     float32
	Y     float32
	Label *string
}

type Leak struct {
	Label  string
	First  uint32
	Second uint32
}

type Explode struct {
	Label string
	Count uint32
}

// Sprite is either a *SimpleSprite or an *AnimatedSprite.
type Sprite interface {
	SpriteName() string
	isSprite()
}

type SimpleSprite struct {
	Name string
}

type AnimatedSprite struct {
	Name             string
	FrameTime        uint32
	Delay            uint32
	RandomStartFrame bool
}

func (s *SimpleSprite) SpriteName() string   { return s.Name }
func (s *AnimatedSprite) SpriteName() string { return s.Name }

func (*SimpleSprite) isSprite()   {}
func (*AnimatedSprite) isSprite() {}
