package model

// Kind identifies the top-level record type of an Object.
type Kind int

const (
	KindStart Kind = iota
	KindPlanet
	KindGalaxy
	KindSystem
	KindShip
)

var kindNames = map[Kind]string{
	KindStart:  "start",
	KindPlanet: "planet",
	KindGalaxy: "galaxy",
	KindSystem: "system",
	KindShip:   "ship",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Object is one top-level record of a data file. It is implemented by
// *Start, *Planet, *Galaxy, *System and *Ship only.
type Object interface {
	Kind() Kind
	isObject()
}

func (*Start) Kind() Kind  { return KindStart }
func (*Planet) Kind() Kind { return KindPlanet }
func (*Galaxy) Kind() Kind { return KindGalaxy }
func (*System) Kind() Kind { return KindSystem }
func (*Ship) Kind() Kind   { return KindShip }

func (*Start) isObject()  {}
func (*Planet) isObject() {}
func (*Galaxy) isObject() {}
func (*System) isObject() {}
func (*Ship) isObject()   {}

// NameOf returns the header name of a record. Start records have no name
// and report their starting system instead.
func NameOf(obj Object) string {
	switch o := obj.(type) {
	case *Planet:
		return o.Name
	case *Galaxy:
		return o.Name
	case *System:
		return o.Name
	case *Ship:
		return o.Name
	case *Start:
		return o.System
	}
	return ""
}
