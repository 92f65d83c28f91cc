package parser

import "github.com/dhamidi/esdata/model"

// Drafts collect the fields of one record while its body is scanned in any
// order. finalize checks the required fields in declaration order and
// fails on the first one missing.

type requirement struct {
	field   string
	present bool
}

func need(field string, present bool) requirement {
	return requirement{field: field, present: present}
}

func (c *cursor) require(at int, record string, reqs ...requirement) error {
	for _, r := range reqs {
		if !r.present {
			return c.invalid(at, record, r.field)
		}
	}
	return nil
}

type galaxyDraft struct {
	name   string
	pos    *model.Position
	sprite *string
}

func (d *galaxyDraft) finalize(c *cursor, at int) (*model.Galaxy, error) {
	if err := c.require(at, "galaxy", need("pos", d.pos != nil)); err != nil {
		return nil, err
	}
	return &model.Galaxy{Name: d.name, Pos: *d.pos, Sprite: d.sprite}, nil
}

type systemDraft struct {
	name       string
	pos        *model.Position
	government *string
	habitable  *float32
	belt       *uint32
	haze       *string
	links      []string
	asteroids  []model.Asteroids
	minables   []model.Minables
	trades     []model.Trade
	fleets     []model.Fleet
	objects    []model.SystemObject
}

func (d *systemDraft) finalize(c *cursor, at int) (*model.System, error) {
	err := c.require(at, "system",
		need("pos", d.pos != nil),
		need("government", d.government != nil),
		need("habitable", d.habitable != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.System{
		Name:       d.name,
		Pos:        *d.pos,
		Government: *d.government,
		Habitable:  *d.habitable,
		Belt:       d.belt,
		Haze:       d.haze,
		Links:      d.links,
		Asteroids:  d.asteroids,
		Minables:   d.minables,
		Trades:     d.trades,
		Fleets:     d.fleets,
		Objects:    d.objects,
	}, nil
}

type objectDraft struct {
	name     *string
	sprite   *string
	distance *float32
	period   *float32
	offset   *float32
	objects  []model.SystemObject
}

func (d *objectDraft) finalize(c *cursor, at int) (model.SystemObject, error) {
	if err := c.require(at, "object", need("period", d.period != nil)); err != nil {
		return model.SystemObject{}, err
	}
	return model.SystemObject{
		Name:     d.name,
		Sprite:   d.sprite,
		Distance: d.distance,
		Period:   *d.period,
		Offset:   d.offset,
		Objects:  d.objects,
	}, nil
}

type planetDraft struct {
	name               string
	attributes         []string
	landscape          *string
	government         *string
	music              *string
	description        []string
	spaceport          []string
	shipyard           []string
	outfitter          []string
	bribe              *float32
	security           *float32
	tribute            *model.Tribute
	requiredReputation *float32
}

func (d *planetDraft) finalize(c *cursor, at int) (*model.Planet, error) {
	if err := c.require(at, "planet", need("description", d.description != nil)); err != nil {
		return nil, err
	}
	return &model.Planet{
		Name:               d.name,
		Attributes:         d.attributes,
		Landscape:          d.landscape,
		Government:         d.government,
		Music:              d.music,
		Description:        d.description,
		Spaceport:          d.spaceport,
		Shipyard:           d.shipyard,
		Outfitter:          d.outfitter,
		Bribe:              d.bribe,
		Security:           d.security,
		Tribute:            d.tribute,
		RequiredReputation: d.requiredReputation,
	}, nil
}

type tributeDraft struct {
	value     uint32
	threshold *uint32
	fleet     *model.Fleet
}

func (d *tributeDraft) finalize(c *cursor, at int) (*model.Tribute, error) {
	err := c.require(at, "tribute",
		need("threshold", d.threshold != nil),
		need("fleet", d.fleet != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.Tribute{Value: d.value, Threshold: *d.threshold, Fleet: *d.fleet}, nil
}

type shipDraft struct {
	name         string
	subclass     *string
	plural       *string
	sprite       model.Sprite
	thumbnail    *string
	attributes   *model.ShipAttributes
	outfits      []model.Outfit
	engine       []model.Engine
	gun          []model.Hardpoint
	turret       []model.Hardpoint
	fighter      []model.Hardpoint
	drone        []model.Hardpoint
	leak         []model.Leak
	explode      []model.Explode
	finalExplode *string
	description  []string
}

func (d *shipDraft) finalize(c *cursor, at int) (*model.Ship, error) {
	err := c.require(at, "ship",
		need("sprite", d.sprite != nil),
		need("thumbnail", d.thumbnail != nil),
		need("attributes", d.attributes != nil),
		need("outfits", d.outfits != nil),
		need("engine", d.engine != nil),
		need("explode", d.explode != nil),
		need("description", d.description != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.Ship{
		Name:         d.name,
		Subclass:     d.subclass,
		Plural:       d.plural,
		Sprite:       d.sprite,
		Thumbnail:    *d.thumbnail,
		Attributes:   *d.attributes,
		Outfits:      d.outfits,
		Engine:       d.engine,
		Gun:          d.gun,
		Turret:       d.turret,
		Fighter:      d.fighter,
		Drone:        d.drone,
		Leak:         d.leak,
		Explode:      d.explode,
		FinalExplode: d.finalExplode,
		Description:  d.description,
	}, nil
}

type animationDraft struct {
	frameTime        *uint32
	delay            *uint32
	randomStartFrame bool
}

func (d *animationDraft) finalize(c *cursor, at int, name string) (*model.AnimatedSprite, error) {
	err := c.require(at, "sprite",
		need(`"frame time"`, d.frameTime != nil),
		need(`"delay"`, d.delay != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.AnimatedSprite{
		Name:             name,
		FrameTime:        *d.frameTime,
		Delay:            *d.delay,
		RandomStartFrame: d.randomStartFrame,
	}, nil
}

type attributesDraft struct {
	licenses        []string
	category        *string
	cost            *uint32
	shields         uint32
	hull            *uint32
	automaton       bool
	requiredCrew    uint32
	bunks           uint32
	mass            *uint32
	drag            *float32
	heatDissipation *float32
	fuelCapacity    uint32
	cargoSpace      uint32
	outfitSpace     *uint32
	weaponCapacity  uint32
	engineCapacity  *uint32
	weapon          *model.ShipWeapon
}

func (d *attributesDraft) finalize(c *cursor, at int) (*model.ShipAttributes, error) {
	err := c.require(at, "attributes",
		need("category", d.category != nil),
		need(`"cost"`, d.cost != nil),
		need(`"hull"`, d.hull != nil),
		need(`"mass"`, d.mass != nil),
		need(`"drag"`, d.drag != nil),
		need(`"heat dissipation"`, d.heatDissipation != nil),
		need(`"outfit space"`, d.outfitSpace != nil),
		need(`"engine capacity"`, d.engineCapacity != nil),
		need("weapon", d.weapon != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.ShipAttributes{
		Licenses:        d.licenses,
		Category:        *d.category,
		Cost:            *d.cost,
		Shields:         d.shields,
		Hull:            *d.hull,
		Automaton:       d.automaton,
		RequiredCrew:    d.requiredCrew,
		Bunks:           d.bunks,
		Mass:            *d.mass,
		Drag:            *d.drag,
		HeatDissipation: *d.heatDissipation,
		FuelCapacity:    d.fuelCapacity,
		CargoSpace:      d.cargoSpace,
		OutfitSpace:     *d.outfitSpace,
		WeaponCapacity:  d.weaponCapacity,
		EngineCapacity:  *d.engineCapacity,
		Weapon:          *d.weapon,
	}, nil
}

type weaponDraft struct {
	blastRadius  *uint32
	shieldDamage *uint32
	hullDamage   *uint32
	hitForce     *uint32
}

func (d *weaponDraft) finalize(c *cursor, at int) (*model.ShipWeapon, error) {
	err := c.require(at, "weapon",
		need(`"blast radius"`, d.blastRadius != nil),
		need(`"shield damage"`, d.shieldDamage != nil),
		need(`"hull damage"`, d.hullDamage != nil),
		need(`"hit force"`, d.hitForce != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.ShipWeapon{
		BlastRadius:  *d.blastRadius,
		ShieldDamage: *d.shieldDamage,
		HullDamage:   *d.hullDamage,
		HitForce:     *d.hitForce,
	}, nil
}

type startDraft struct {
	date    *model.Date
	system  *string
	planet  *string
	account *model.Account
	set     *string
}

func (d *startDraft) finalize(c *cursor, at int) (*model.Start, error) {
	err := c.require(at, "start",
		need("date", d.date != nil),
		need("system", d.system != nil),
		need("planet", d.planet != nil),
		need("account", d.account != nil),
		need("set", d.set != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.Start{
		Date:    *d.date,
		System:  *d.system,
		Planet:  *d.planet,
		Account: *d.account,
		Set:     *d.set,
	}, nil
}

type accountDraft struct {
	credits  *uint64
	score    *uint32
	mortgage *model.Mortgage
}

func (d *accountDraft) finalize(c *cursor, at int) (*model.Account, error) {
	err := c.require(at, "account",
		need("credits", d.credits != nil),
		need("score", d.score != nil),
		need("mortgage", d.mortgage != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.Account{Credits: *d.credits, Score: *d.score, Mortgage: *d.mortgage}, nil
}

type mortgageDraft struct {
	principal *uint64
	interest  *float32
	term      *uint16
}

func (d *mortgageDraft) finalize(c *cursor, at int) (*model.Mortgage, error) {
	err := c.require(at, "mortgage",
		need("principal", d.principal != nil),
		need("interest", d.interest != nil),
		need("term", d.term != nil),
	)
	if err != nil {
		return nil, err
	}
	return &model.Mortgage{Principal: *d.principal, Interest: *d.interest, Term: *d.term}, nil
}
