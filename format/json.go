package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/esdata/model"
)

type JSONEncoder struct {
	w       io.Writer
	objects []model.Object
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(objects []model.Object) error {
	e.objects = objects
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := make([]jsonObject, len(e.objects))
	for i, obj := range e.objects {
		data[i] = buildObject(obj)
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonObject struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Record any    `json:"record"`
}

type jsonPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonGalaxy struct {
	Pos    jsonPosition `json:"pos"`
	Sprite *string      `json:"sprite,omitempty"`
}

type jsonSystem struct {
	Pos        jsonPosition  `json:"pos"`
	Government string        `json:"government"`
	Habitable  float32       `json:"habitable"`
	Belt       *uint32       `json:"belt,omitempty"`
	Haze       *string       `json:"haze,omitempty"`
	Links      []string      `json:"links,omitempty"`
	Asteroids  []jsonDeposit `json:"asteroids,omitempty"`
	Minables   []jsonDeposit `json:"minables,omitempty"`
	Trades     []jsonTrade   `json:"trades,omitempty"`
	Fleets     []jsonFleet   `json:"fleets,omitempty"`
	Objects    []jsonStellar `json:"objects,omitempty"`
}

type jsonDeposit struct {
	Name        string  `json:"name"`
	FirstValue  uint32  `json:"firstValue"`
	SecondValue float32 `json:"secondValue"`
}

type jsonTrade struct {
	Name  string `json:"name"`
	Price uint32 `json:"price"`
}

type jsonFleet struct {
	Kind  string `json:"kind"`
	Count uint16 `json:"count"`
}

type jsonStellar struct {
	Name     *string       `json:"name,omitempty"`
	Sprite   *string       `json:"sprite,omitempty"`
	Distance *float32      `json:"distance,omitempty"`
	Period   float32       `json:"period"`
	Offset   *float32      `json:"offset,omitempty"`
	Objects  []jsonStellar `json:"objects,omitempty"`
}

type jsonPlanet struct {
	Attributes         []string     `json:"attributes,omitempty"`
	Landscape          *string      `json:"landscape,omitempty"`
	Government         *string      `json:"government,omitempty"`
	Music              *string      `json:"music,omitempty"`
	Description        []string     `json:"description"`
	Spaceport          []string     `json:"spaceport,omitempty"`
	Shipyard           []string     `json:"shipyard,omitempty"`
	Outfitter          []string     `json:"outfitter,omitempty"`
	Bribe              *float32     `json:"bribe,omitempty"`
	Security           *float32     `json:"security,omitempty"`
	Tribute            *jsonTribute `json:"tribute,omitempty"`
	RequiredReputation *float32     `json:"requiredReputation,omitempty"`
}

type jsonTribute struct {
	Value     uint32    `json:"value"`
	Threshold uint32    `json:"threshold"`
	Fleet     jsonFleet `json:"fleet"`
}

type jsonStart struct {
	Date    string      `json:"date"`
	System  string      `json:"system"`
	Planet  string      `json:"planet"`
	Account jsonAccount `json:"account"`
	Set     string      `json:"set"`
}

type jsonAccount struct {
	Credits  uint64       `json:"credits"`
	Score    uint32       `json:"score"`
	Mortgage jsonMortgage `json:"mortgage"`
}

type jsonMortgage struct {
	Principal uint64  `json:"principal"`
	Interest  float32 `json:"interest"`
	Term      uint16  `json:"term"`
}

type jsonShip struct {
	Subclass     *string         `json:"subclass,omitempty"`
	Plural       *string         `json:"plural,omitempty"`
	Sprite       jsonSprite      `json:"sprite"`
	Thumbnail    string          `json:"thumbnail"`
	Attributes   jsonAttributes  `json:"attributes"`
	Outfits      []jsonOutfit    `json:"outfits"`
	Engine       []jsonEngine    `json:"engine"`
	Gun          []jsonHardpoint `json:"gun,omitempty"`
	Turret       []jsonHardpoint `json:"turret,omitempty"`
	Fighter      []jsonHardpoint `json:"fighter,omitempty"`
	Drone        []jsonHardpoint `json:"drone,omitempty"`
	Leak         []jsonLeak      `json:"leak,omitempty"`
	Explode      []jsonExplode   `json:"explode"`
	FinalExplode *string         `json:"finalExplode,omitempty"`
	Description  []string        `json:"description"`
}

type jsonSprite struct {
	Name             string  `json:"name"`
	FrameTime        *uint32 `json:"frameTime,omitempty"`
	Delay            *uint32 `json:"delay,omitempty"`
	RandomStartFrame bool    `json:"randomStartFrame,omitempty"`
}

type jsonAttributes struct {
	Licenses        []string   `json:"licenses,omitempty"`
	Category        string     `json:"category"`
	Cost            uint32     `json:"cost"`
	Shields         uint32     `json:"shields"`
	Hull            uint32     `json:"hull"`
	Automaton       bool       `json:"automaton"`
	RequiredCrew    uint32     `json:"requiredCrew"`
	Bunks           uint32     `json:"bunks"`
	Mass            uint32     `json:"mass"`
	Drag            float32    `json:"drag"`
	HeatDissipation float32    `json:"heatDissipation"`
	FuelCapacity    uint32     `json:"fuelCapacity"`
	CargoSpace      uint32     `json:"cargoSpace"`
	OutfitSpace     uint32     `json:"outfitSpace"`
	WeaponCapacity  uint32     `json:"weaponCapacity"`
	EngineCapacity  uint32     `json:"engineCapacity"`
	Weapon          jsonWeapon `json:"weapon"`
}

type jsonWeapon struct {
	BlastRadius  uint32 `json:"blastRadius"`
	ShieldDamage uint32 `json:"shieldDamage"`
	HullDamage   uint32 `json:"hullDamage"`
	HitForce     uint32 `json:"hitForce"`
}

type jsonOutfit struct {
	Name  string `json:"name"`
	Count uint32 `json:"count"`
}

type jsonEngine struct {
	X     float32  `json:"x"`
	Y     float32  `json:"y"`
	Extra *float32 `json:"extra,omitempty"`
}

type jsonHardpoint struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Label *string `json:"label,omitempty"`
}

type jsonLeak struct {
	Label  string `json:"label"`
	First  uint32 `json:"first"`
	Second uint32 `json:"second"`
}

type jsonExplode struct {
	Label string `json:"label"`
	Count uint32 `json:"count"`
}

func buildObject(obj model.Object) jsonObject {
	data := jsonObject{Kind: obj.Kind().String(), Name: model.NameOf(obj)}
	switch o := obj.(type) {
	case *model.Galaxy:
		data.Record = jsonGalaxy{Pos: jsonPosition(o.Pos), Sprite: o.Sprite}
	case *model.System:
		data.Record = buildSystem(o)
	case *model.Planet:
		data.Record = buildPlanet(o)
	case *model.Start:
		data.Record = buildStart(o)
	case *model.Ship:
		data.Record = buildShip(o)
	}
	return data
}

func buildSystem(s *model.System) jsonSystem {
	data := jsonSystem{
		Pos:        jsonPosition(s.Pos),
		Government: s.Government,
		Habitable:  s.Habitable,
		Belt:       s.Belt,
		Haze:       s.Haze,
		Links:      s.Links,
		Objects:    buildStellar(s.Objects),
	}
	for _, a := range s.Asteroids {
		data.Asteroids = append(data.Asteroids, jsonDeposit(a))
	}
	for _, m := range s.Minables {
		data.Minables = append(data.Minables, jsonDeposit(m))
	}
	for _, t := range s.Trades {
		data.Trades = append(data.Trades, jsonTrade(t))
	}
	for _, f := range s.Fleets {
		data.Fleets = append(data.Fleets, jsonFleet(f))
	}
	return data
}

func buildStellar(objects []model.SystemObject) []jsonStellar {
	if len(objects) == 0 {
		return nil
	}
	result := make([]jsonStellar, len(objects))
	for i, o := range objects {
		result[i] = jsonStellar{
			Name:     o.Name,
			Sprite:   o.Sprite,
			Distance: o.Distance,
			Period:   o.Period,
			Offset:   o.Offset,
			Objects:  buildStellar(o.Objects),
		}
	}
	return result
}

func buildPlanet(p *model.Planet) jsonPlanet {
	data := jsonPlanet{
		Attributes:         p.Attributes,
		Landscape:          p.Landscape,
		Government:         p.Government,
		Music:              p.Music,
		Description:        p.Description,
		Spaceport:          p.Spaceport,
		Shipyard:           p.Shipyard,
		Outfitter:          p.Outfitter,
		Bribe:              p.Bribe,
		Security:           p.Security,
		RequiredReputation: p.RequiredReputation,
	}
	if t := p.Tribute; t != nil {
		data.Tribute = &jsonTribute{Value: t.Value, Threshold: t.Threshold, Fleet: jsonFleet(t.Fleet)}
	}
	return data
}

func buildStart(s *model.Start) jsonStart {
	return jsonStart{
		Date:   s.Date.String(),
		System: s.System,
		Planet: s.Planet,
		Account: jsonAccount{
			Credits:  s.Account.Credits,
			Score:    s.Account.Score,
			Mortgage: jsonMortgage(s.Account.Mortgage),
		},
		Set: s.Set,
	}
}

func buildShip(s *model.Ship) jsonShip {
	a := s.Attributes
	data := jsonShip{
		Subclass:  s.Subclass,
		Plural:    s.Plural,
		Sprite:    buildSprite(s.Sprite),
		Thumbnail: s.Thumbnail,
		Attributes: jsonAttributes{
			Licenses:        a.Licenses,
			Category:        a.Category,
			Cost:            a.Cost,
			Shields:         a.Shields,
			Hull:            a.Hull,
			Automaton:       a.Automaton,
			RequiredCrew:    a.RequiredCrew,
			Bunks:           a.Bunks,
			Mass:            a.Mass,
			Drag:            a.Drag,
			HeatDissipation: a.HeatDissipation,
			FuelCapacity:    a.FuelCapacity,
			CargoSpace:      a.CargoSpace,
			OutfitSpace:     a.OutfitSpace,
			WeaponCapacity:  a.WeaponCapacity,
			EngineCapacity:  a.EngineCapacity,
			Weapon:          jsonWeapon(a.Weapon),
		},
		Gun:          buildHardpoints(s.Gun),
		Turret:       buildHardpoints(s.Turret),
		Fighter:      buildHardpoints(s.Fighter),
		Drone:        buildHardpoints(s.Drone),
		FinalExplode: s.FinalExplode,
		Description:  s.Description,
	}
	for _, o := range s.Outfits {
		data.Outfits = append(data.Outfits, jsonOutfit(o))
	}
	for _, e := range s.Engine {
		data.Engine = append(data.Engine, jsonEngine(e))
	}
	for _, l := range s.Leak {
		data.Leak = append(data.Leak, jsonLeak(l))
	}
	for _, x := range s.Explode {
		data.Explode = append(data.Explode, jsonExplode(x))
	}
	return data
}

func buildSprite(sprite model.Sprite) jsonSprite {
	switch s := sprite.(type) {
	case *model.AnimatedSprite:
		return jsonSprite{
			Name:             s.Name,
			FrameTime:        &s.FrameTime,
			Delay:            &s.Delay,
			RandomStartFrame: s.RandomStartFrame,
		}
	case *model.SimpleSprite:
		return jsonSprite{Name: s.Name}
	}
	return jsonSprite{}
}

func buildHardpoints(points []model.Hardpoint) []jsonHardpoint {
	var result []jsonHardpoint
	for _, p := range points {
		result = append(result, jsonHardpoint(p))
	}
	return result
}
