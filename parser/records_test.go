package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/esdata/model"
)

func ptr[T any](v T) *T {
	return &v
}

// removeLine drops one exact line from src.
func removeLine(t *testing.T, src, line string) string {
	t.Helper()
	if !strings.Contains(src, line) {
		t.Fatalf("line %q not found", line)
	}
	return strings.Replace(src, line, "", 1)
}

// parseOne parses src strictly and returns its single record as T.
func parseOne[T model.Object](t *testing.T, src string) T {
	t.Helper()
	objects, err := Parse([]byte(src), WithFile("test.txt"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(objects) != 1 {
		t.Fatalf("got %d records, want 1", len(objects))
	}
	obj, ok := objects[0].(T)
	if !ok {
		t.Fatalf("got %T, want %T", objects[0], obj)
	}
	return obj
}

func TestParseGalaxy(t *testing.T) {
	galaxy := parseOne[*model.Galaxy](t, "galaxy \"Milky Way\"\n\tpos -27 32.8\n\tsprite ui/galaxy\n\n")

	want := &model.Galaxy{
		Name:   "Milky Way",
		Pos:    model.Position{X: -27, Y: 32.8},
		Sprite: ptr("ui/galaxy"),
	}
	if !reflect.DeepEqual(galaxy, want) {
		t.Errorf("got %+v, want %+v", galaxy, want)
	}
}

func TestParseGalaxyFieldOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"pos first", "galaxy g\n\tpos 1 2\n\tsprite s\n"},
		{"sprite first", "galaxy g\n\tsprite s\n\tpos 1 2\n"},
		{"blank line between", "galaxy g\n\tsprite s\n\n  \n\tpos 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			galaxy := parseOne[*model.Galaxy](t, tt.input)
			if galaxy.Pos != (model.Position{X: 1, Y: 2}) {
				t.Errorf("Pos = %+v, want {1 2}", galaxy.Pos)
			}
			if galaxy.Sprite == nil || *galaxy.Sprite != "s" {
				t.Errorf("Sprite = %v, want s", galaxy.Sprite)
			}
		})
	}
}

const systemData = `system "My System"
    pos -192873.2 123.456
    government FirstEmpire
    habitable 823.12
    belt 1010
    link "Other System"
    asteroids "small rock" 1 2.222
    asteroids "large metal" 7 2.345
    minables lead 11 10
    trade Goods 100
    fleet "Small Vessel" 100
    object
        sprite planet/visual-planet
        distance 1811.79
        period 1129.48
        object Moon
            sprite moon/nice-moon
            distance 229
            period 12.994
    object
        sprite star/k5
        distance 49.335
        period 18.0618
        offset 180
`

func TestParseSystem(t *testing.T) {
	system := parseOne[*model.System](t, systemData)

	t.Run("header fields", func(t *testing.T) {
		if system.Name != "My System" {
			t.Errorf("Name = %q, want %q", system.Name, "My System")
		}
		if system.Pos != (model.Position{X: -192873.2, Y: 123.456}) {
			t.Errorf("Pos = %+v", system.Pos)
		}
		if system.Government != "FirstEmpire" {
			t.Errorf("Government = %q", system.Government)
		}
		if system.Habitable != 823.12 {
			t.Errorf("Habitable = %v, want 823.12", system.Habitable)
		}
		if system.Belt == nil || *system.Belt != 1010 {
			t.Errorf("Belt = %v, want 1010", system.Belt)
		}
		if system.Haze != nil {
			t.Errorf("Haze = %q, want nil", *system.Haze)
		}
	})

	t.Run("repeated fields", func(t *testing.T) {
		if !reflect.DeepEqual(system.Links, []string{"Other System"}) {
			t.Errorf("Links = %q", system.Links)
		}
		wantAsteroids := []model.Asteroids{
			{Name: "small rock", FirstValue: 1, SecondValue: 2.222},
			{Name: "large metal", FirstValue: 7, SecondValue: 2.345},
		}
		if !reflect.DeepEqual(system.Asteroids, wantAsteroids) {
			t.Errorf("Asteroids = %+v, want %+v", system.Asteroids, wantAsteroids)
		}
		wantMinables := []model.Minables{{Name: "lead", FirstValue: 11, SecondValue: 10}}
		if !reflect.DeepEqual(system.Minables, wantMinables) {
			t.Errorf("Minables = %+v, want %+v", system.Minables, wantMinables)
		}
		wantTrades := []model.Trade{{Name: "Goods", Price: 100}}
		if !reflect.DeepEqual(system.Trades, wantTrades) {
			t.Errorf("Trades = %+v, want %+v", system.Trades, wantTrades)
		}
		wantFleets := []model.Fleet{{Kind: "Small Vessel", Count: 100}}
		if !reflect.DeepEqual(system.Fleets, wantFleets) {
			t.Errorf("Fleets = %+v, want %+v", system.Fleets, wantFleets)
		}
	})

	t.Run("objects", func(t *testing.T) {
		want := []model.SystemObject{
			{
				Sprite:   ptr("planet/visual-planet"),
				Distance: ptr(float32(1811.79)),
				Period:   1129.48,
				Objects: []model.SystemObject{
					{
						Name:     ptr("Moon"),
						Sprite:   ptr("moon/nice-moon"),
						Distance: ptr(float32(229)),
						Period:   12.994,
					},
				},
			},
			{
				Sprite:   ptr("star/k5"),
				Distance: ptr(float32(49.335)),
				Period:   18.0618,
				Offset:   ptr(float32(180)),
			},
		}
		if !reflect.DeepEqual(system.Objects, want) {
			t.Errorf("Objects = %+v, want %+v", system.Objects, want)
		}
		if got := system.Objects[0].Depth(); got != 2 {
			t.Errorf("planet Depth() = %d, want 2", got)
		}
		if got := system.Objects[0].Objects[0].Depth(); got != 1 {
			t.Errorf("moon Depth() = %d, want 1", got)
		}
	})
}

func TestSystemRepeatedFieldsKeepOrder(t *testing.T) {
	input := "system S\n\tlink A\n\tpos 0 0\n\tlink B\n\tgovernment G\n\tlink C\n\thabitable 1\n"
	system := parseOne[*model.System](t, input)
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(system.Links, want) {
		t.Errorf("Links = %q, want %q", system.Links, want)
	}
}

func TestSystemObjectDepthLimit(t *testing.T) {
	input := "system S\n\tpos 0 0\n\tgovernment G\n\thabitable 1\n" +
		"\tobject a\n\t\tperiod 1\n" +
		"\t\tobject b\n\t\t\tperiod 1\n" +
		"\t\t\tobject c\n\t\t\t\tperiod 1\n"

	if _, err := Parse([]byte(input), WithMaxDepth(3)); err != nil {
		t.Fatalf("depth 3 with limit 3: %v", err)
	}
	_, err := Parse([]byte(input), WithMaxDepth(2))
	if err == nil {
		t.Fatalf("depth 3 with limit 2 succeeded, want error")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindMismatch {
		t.Errorf("got %v, want a mismatch", err)
	}
}

func TestSystemObjectRequiresPeriod(t *testing.T) {
	input := "system S\n\tpos 0 0\n\tgovernment G\n\thabitable 1\n\tobject a\n\t\tsprite x\n"
	_, err := Parse([]byte(input))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if perr.Kind != KindValidation || perr.Record != "object" || perr.Field != "period" {
		t.Errorf("got %v, want object missing period", perr)
	}
}

const planetData = "planet MyPlanet\n" +
	"\tattributes a1 a2 a3\n" +
	"\tlandscape flyover/sea1\n" +
	"\tdescription `This is a \"special\" planet`\n" +
	"\tdescription `\tIt can have a complete description`\n" +
	"\tspaceport `And also a spaceport!`\n" +
	"\tshipyard \"Some Ships\"\n" +
	"\tshipyard \"Also Those Ships\"\n" +
	"\toutfitter \"Basic Outifts\"\n" +
	"\toutfitter \"Advanced Outfits\"\n" +
	"\tbribe 0.01\n" +
	"\tsecurity 0.5\n" +
	"\ttribute 1000\n" +
	"\t\tthreshold 3000\n" +
	"\t\tfleet \"Impressive Fleet\" 18\n"

func TestParsePlanetMultilineDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"double quoted", "planet P\n\tdescription \"first line\nsecond line\"\n"},
		{"backtick", "planet P\n\tdescription `first line\nsecond line`\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planet := parseOne[*model.Planet](t, tt.input)
			want := []string{"first line\nsecond line"}
			if !reflect.DeepEqual(planet.Description, want) {
				t.Errorf("Description = %q, want %q", planet.Description, want)
			}
		})
	}
}

func TestParsePlanet(t *testing.T) {
	planet := parseOne[*model.Planet](t, planetData)

	want := &model.Planet{
		Name:       "MyPlanet",
		Attributes: []string{"a1", "a2", "a3"},
		Landscape:  ptr("flyover/sea1"),
		Description: []string{
			`This is a "special" planet`,
			"\tIt can have a complete description",
		},
		Spaceport: []string{"And also a spaceport!"},
		Shipyard:  []string{"Some Ships", "Also Those Ships"},
		Outfitter: []string{"Basic Outifts", "Advanced Outfits"},
		Bribe:     ptr(float32(0.01)),
		Security:  ptr(float32(0.5)),
		Tribute: &model.Tribute{
			Value:     1000,
			Threshold: 3000,
			Fleet:     model.Fleet{Kind: "Impressive Fleet", Count: 18},
		},
	}
	if !reflect.DeepEqual(planet, want) {
		t.Errorf("got %+v, want %+v", planet, want)
	}
}

func TestPlanetRepeatedFieldsAcrossOtherFields(t *testing.T) {
	input := "planet P\n\tdescription one\n\tbribe 0.1\n\tdescription two\n"
	planet := parseOne[*model.Planet](t, input)
	want := []string{"one", "two"}
	if !reflect.DeepEqual(planet.Description, want) {
		t.Errorf("Description = %q, want %q", planet.Description, want)
	}
}

func TestPlanetDuplicateOnceField(t *testing.T) {
	input := "planet P\n\tdescription d\n\tbribe 0.1\n\tbribe 0.2\n"
	_, err := Parse([]byte(input))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if perr.Expected != "at most one bribe" {
		t.Errorf("Expected = %q, want %q", perr.Expected, "at most one bribe")
	}
	if perr.Pos.Line != 4 {
		t.Errorf("Pos.Line = %d, want 4", perr.Pos.Line)
	}
}

const startData = "start\n" +
	"    date 01 07 2020\n" +
	"\tsystem \"Sol\"\n" +
	"    planet Earth\n" +
	"\taccount\n" +
	"\t\tcredits 5000\n" +
	"        score 400\n" +
	"\t\tmortgage Mortgage\n" +
	"            principal 480000\n" +
	"\t\t\tinterest 0.004\n" +
	"\t    \tterm 365\n" +
	"    set \"initial\"\n"

func TestParseStart(t *testing.T) {
	start := parseOne[*model.Start](t, startData)

	want := &model.Start{
		Date:   model.Date{Year: 2020, Month: 7, Day: 1},
		System: "Sol",
		Planet: "Earth",
		Account: model.Account{
			Credits: 5000,
			Score:   400,
			Mortgage: model.Mortgage{
				Principal: 480000,
				Interest:  0.004,
				Term:      365,
			},
		},
		Set: "initial",
	}
	if !reflect.DeepEqual(start, want) {
		t.Errorf("got %+v, want %+v", start, want)
	}
	if got := model.NameOf(start); got != "Sol" {
		t.Errorf("NameOf = %q, want %q", got, "Sol")
	}
}

func TestStartMissingField(t *testing.T) {
	input := "start\n\tdate 1 1 3000\n\tsystem S\n\tplanet P\n\taccount\n\t\tcredits 1\n\t\tscore 1\n\t\tmortgage Mortgage\n\t\t\tprincipal 1\n\t\t\tinterest 1\n\t\t\tterm 1\n"
	_, err := Parse([]byte(input), WithFile("start.txt"))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if perr.Kind != KindValidation || perr.Record != "start" || perr.Field != "set" {
		t.Errorf("got %v, want start missing set", perr)
	}
	want := "start.txt:1:1: start is missing required field set"
	if perr.Error() != want {
		t.Errorf("Error() = %q, want %q", perr.Error(), want)
	}
}

const shipData = "ship \"Shuttle\"\n" +
	"    sprite \"ship/shuttle\"\n" +
	"    thumbnail \"thumbnail/shuttle\"\n" +
	"    attributes\n" +
	"        category \"Transport\"\n" +
	"        \"cost\" 100000\n" +
	"        \"shields\" 1000\n" +
	"        \"hull\" 100\n" +
	"        \"required crew\" 1\n" +
	"        \"bunks\" 2\n" +
	"        \"mass\" 50\n" +
	"        \"drag\" 1\n" +
	"        \"heat dissipation\" 1\n" +
	"        \"fuel capacity\" 500\n" +
	"        \"cargo space\" 20\n" +
	"        \"outfit space\" 100\n" +
	"        \"weapon capacity\" 0\n" +
	"        \"engine capacity\" 60\n" +
	"        weapon\n" +
	"            \"blast radius\" 10\n" +
	"            \"shield damage\" 100\n" +
	"            \"hull damage\" 50\n" +
	"            \"hit force\" 200\n" +
	"    outfits\n" +
	"        \"Fuel Cell\"\n" +
	"        \"Battery Pack\"\n" +
	"        \"Shield Generator\"\n" +
	"\n" +
	"        \"Fuel Thruster\"\n" +
	"        \"Fuel Steering\"\n" +
	"        \"Hyperdrive\" 2\n" +
	"\n" +
	"    engine -5 50\n" +
	"    engine 5 50 0.5\n" +
	"    gun 0 -30\n" +
	"    turret 0 10 \"Heavy Laser\"\n" +
	"    leak \"leak\" 50 50\n" +
	"    explode \"explosion\" 10\n" +
	"    description \"My Shuttle.\"\n" +
	"    description `   It doesn't do much.`\n"

func TestParseShip(t *testing.T) {
	ship := parseOne[*model.Ship](t, shipData)

	t.Run("header", func(t *testing.T) {
		if ship.Name != "Shuttle" || ship.Subclass != nil || ship.Plural != nil {
			t.Errorf("got name %q subclass %v plural %v", ship.Name, ship.Subclass, ship.Plural)
		}
		if !reflect.DeepEqual(ship.Sprite, &model.SimpleSprite{Name: "ship/shuttle"}) {
			t.Errorf("Sprite = %#v", ship.Sprite)
		}
		if ship.Thumbnail != "thumbnail/shuttle" {
			t.Errorf("Thumbnail = %q", ship.Thumbnail)
		}
	})

	t.Run("attributes", func(t *testing.T) {
		want := model.ShipAttributes{
			Category:        "Transport",
			Cost:            100000,
			Shields:         1000,
			Hull:            100,
			RequiredCrew:    1,
			Bunks:           2,
			Mass:            50,
			Drag:            1,
			HeatDissipation: 1,
			FuelCapacity:    500,
			CargoSpace:      20,
			OutfitSpace:     100,
			EngineCapacity:  60,
			Weapon: model.ShipWeapon{
				BlastRadius:  10,
				ShieldDamage: 100,
				HullDamage:   50,
				HitForce:     200,
			},
		}
		if !reflect.DeepEqual(ship.Attributes, want) {
			t.Errorf("got %+v, want %+v", ship.Attributes, want)
		}
	})

	t.Run("outfits", func(t *testing.T) {
		want := []model.Outfit{
			{Name: "Fuel Cell", Count: 1},
			{Name: "Battery Pack", Count: 1},
			{Name: "Shield Generator", Count: 1},
			{Name: "Fuel Thruster", Count: 1},
			{Name: "Fuel Steering", Count: 1},
			{Name: "Hyperdrive", Count: 2},
		}
		if !reflect.DeepEqual(ship.Outfits, want) {
			t.Errorf("got %+v, want %+v", ship.Outfits, want)
		}
	})

	t.Run("hardpoints", func(t *testing.T) {
		wantEngine := []model.Engine{{X: -5, Y: 50}, {X: 5, Y: 50, Extra: ptr(float32(0.5))}}
		if !reflect.DeepEqual(ship.Engine, wantEngine) {
			t.Errorf("Engine = %+v, want %+v", ship.Engine, wantEngine)
		}
		if !reflect.DeepEqual(ship.Gun, []model.Hardpoint{{X: 0, Y: -30}}) {
			t.Errorf("Gun = %+v", ship.Gun)
		}
		wantTurret := []model.Hardpoint{{X: 0, Y: 10, Label: ptr("Heavy Laser")}}
		if !reflect.DeepEqual(ship.Turret, wantTurret) {
			t.Errorf("Turret = %+v, want %+v", ship.Turret, wantTurret)
		}
		if len(ship.Fighter) != 0 || len(ship.Drone) != 0 {
			t.Errorf("got fighters %v drones %v, want none", ship.Fighter, ship.Drone)
		}
	})

	t.Run("leaks and explosions", func(t *testing.T) {
		if !reflect.DeepEqual(ship.Leak, []model.Leak{{Label: "leak", First: 50, Second: 50}}) {
			t.Errorf("Leak = %+v", ship.Leak)
		}
		if !reflect.DeepEqual(ship.Explode, []model.Explode{{Label: "explosion", Count: 10}}) {
			t.Errorf("Explode = %+v", ship.Explode)
		}
		if ship.FinalExplode != nil {
			t.Errorf("FinalExplode = %q, want nil", *ship.FinalExplode)
		}
	})

	t.Run("description", func(t *testing.T) {
		want := []string{"My Shuttle.", "   It doesn't do much."}
		if !reflect.DeepEqual(ship.Description, want) {
			t.Errorf("Description = %q, want %q", ship.Description, want)
		}
	})
}

func TestShipAnimatedSprite(t *testing.T) {
	input := "\tsprite ship/wisp\n\t\t\"frame time\" 4\n\t\t\"random start frame\"\n\t\t\"delay\" 14\n"
	c := newCursor(input)
	c.indents(1)
	c.keyword("sprite")
	c.blanks()
	sprite, err := c.sprite(2)
	if err != nil {
		t.Fatalf("sprite: %v", err)
	}
	want := &model.AnimatedSprite{Name: "ship/wisp", FrameTime: 4, Delay: 14, RandomStartFrame: true}
	if !reflect.DeepEqual(sprite, model.Sprite(want)) {
		t.Errorf("got %#v, want %#v", sprite, want)
	}
	if !c.eof() {
		t.Errorf("rest = %q, want everything consumed", c.rest())
	}
}

func TestShipAttributesBareCostAndLicenses(t *testing.T) {
	input := "\t\tlicenses\n\t\t\tMilitary\n\t\t\t\"City-Ship\"\n" +
		"\t\tcategory Heavy\n\t\tcost 5\n\t\t\"hull\" 1\n\t\t\"automaton\" 1\n" +
		"\t\t\"mass\" 1\n\t\t\"drag\" 1\n\t\t\"heat dissipation\" .5\n" +
		"\t\t\"outfit space\" 1\n\t\t\"engine capacity\" 1\n" +
		"\t\tweapon\n\t\t\t\"blast radius\" 1\n\t\t\t\"shield damage\" 2\n\t\t\t\"hull damage\" 3\n\t\t\t\"hit force\" 4\n"
	c := newCursor("\n" + input)
	attributes, err := c.shipAttributes(2)
	if err != nil {
		t.Fatalf("shipAttributes: %v", err)
	}
	if !reflect.DeepEqual(attributes.Licenses, []string{"Military", "City-Ship"}) {
		t.Errorf("Licenses = %q", attributes.Licenses)
	}
	if attributes.Cost != 5 || !attributes.Automaton || attributes.HeatDissipation != 0.5 {
		t.Errorf("got cost %d automaton %v heat %v", attributes.Cost, attributes.Automaton, attributes.HeatDissipation)
	}
	if attributes.Weapon.HitForce != 4 {
		t.Errorf("Weapon.HitForce = %d, want 4", attributes.Weapon.HitForce)
	}
}

func TestShipMissingRequiredField(t *testing.T) {
	tests := []struct {
		name   string
		drop   string
		record string
		field  string
	}{
		{"thumbnail", "    thumbnail \"thumbnail/shuttle\"\n", "ship", "thumbnail"},
		{"explode", "    explode \"explosion\" 10\n", "ship", "explode"},
		{"hull", "        \"hull\" 100\n", "attributes", `"hull"`},
		{"hit force", "            \"hit force\" 200\n", "weapon", `"hit force"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := removeLine(t, shipData, tt.drop)
			_, err := Parse([]byte(input))
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("got %v, want *Error", err)
			}
			if perr.Kind != KindValidation || perr.Record != tt.record || perr.Field != tt.field {
				t.Errorf("got %v, want %s missing %s", perr, tt.record, tt.field)
			}
		})
	}
}
