package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/esdata/model"
	"github.com/lib/pq"
)

// statement is one parameterized SQL statement of an import.
type statement struct {
	query string
	args  []any
}

// Stats counts the records written by an import, per kind.
type Stats map[model.Kind]int

func (s Stats) String() string {
	var parts []string
	for _, kind := range []model.Kind{model.KindGalaxy, model.KindSystem, model.KindPlanet, model.KindShip, model.KindStart} {
		if n := s[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// Import writes objects in a single transaction. Records already present
// under the same key are replaced.
func (c *Catalog) Import(ctx context.Context, objects []model.Object) (Stats, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stats := Stats{}
	for _, obj := range objects {
		for _, st := range plan(obj) {
			if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
				return nil, fmt.Errorf("import %s %q: %w", obj.Kind(), model.NameOf(obj), err)
			}
		}
		stats[obj.Kind()]++
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	log.Infof("imported %s", stats)
	return stats, nil
}

// plan returns the statements that store obj.
func plan(obj model.Object) []statement {
	switch o := obj.(type) {
	case *model.Galaxy:
		return []statement{galaxyStatement(o)}
	case *model.System:
		return systemStatements(o)
	case *model.Planet:
		return []statement{planetStatement(o)}
	case *model.Ship:
		return []statement{shipStatement(o)}
	case *model.Start:
		return []statement{startStatement(o)}
	}
	return nil
}

func galaxyStatement(g *model.Galaxy) statement {
	return statement{
		query: `
		INSERT INTO galaxies (name, pos_x, pos_y, sprite)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y, sprite = EXCLUDED.sprite`,
		args: []any{g.Name, g.Pos.X, g.Pos.Y, g.Sprite},
	}
}

func systemStatements(s *model.System) []statement {
	var asteroids, minables, tradeNames, fleetKinds []string
	var tradePrices, fleetCounts []int64
	for _, a := range s.Asteroids {
		asteroids = append(asteroids, a.Name)
	}
	for _, m := range s.Minables {
		minables = append(minables, m.Name)
	}
	for _, t := range s.Trades {
		tradeNames = append(tradeNames, t.Name)
		tradePrices = append(tradePrices, int64(t.Price))
	}
	for _, f := range s.Fleets {
		fleetKinds = append(fleetKinds, f.Kind)
		fleetCounts = append(fleetCounts, int64(f.Count))
	}

	statements := []statement{
		{
			query: `
		INSERT INTO systems (name, pos_x, pos_y, government, habitable, belt, haze,
			asteroid_names, minable_names, trade_names, trade_prices, fleet_kinds, fleet_counts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (name) DO UPDATE SET
			pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y,
			government = EXCLUDED.government, habitable = EXCLUDED.habitable,
			belt = EXCLUDED.belt, haze = EXCLUDED.haze,
			asteroid_names = EXCLUDED.asteroid_names, minable_names = EXCLUDED.minable_names,
			trade_names = EXCLUDED.trade_names, trade_prices = EXCLUDED.trade_prices,
			fleet_kinds = EXCLUDED.fleet_kinds, fleet_counts = EXCLUDED.fleet_counts`,
			args: []any{
				s.Name, s.Pos.X, s.Pos.Y, s.Government, s.Habitable, s.Belt, s.Haze,
				pq.Array(nonNil(asteroids)), pq.Array(nonNil(minables)),
				pq.Array(nonNil(tradeNames)), pq.Array(nonNil(tradePrices)),
				pq.Array(nonNil(fleetKinds)), pq.Array(nonNil(fleetCounts)),
			},
		},
		{query: `DELETE FROM system_links WHERE system = $1`, args: []any{s.Name}},
		{query: `DELETE FROM system_objects WHERE system = $1`, args: []any{s.Name}},
	}
	for i, link := range s.Links {
		statements = append(statements, statement{
			query: `INSERT INTO system_links (system, position, link) VALUES ($1, $2, $3)`,
			args:  []any{s.Name, i, link},
		})
	}
	return appendObjects(statements, s.Name, nil, s.Objects)
}

// appendObjects adds one insert per object of the trees, parents before
// their children.
func appendObjects(statements []statement, system string, parent *string, objects []model.SystemObject) []statement {
	for i, o := range objects {
		path := strconv.Itoa(i)
		if parent != nil {
			path = *parent + "." + path
		}
		statements = append(statements, statement{
			query: `
		INSERT INTO system_objects (system, path, parent_path, name, sprite, distance, period, "offset")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			args: []any{system, path, parent, o.Name, o.Sprite, o.Distance, o.Period, o.Offset},
		})
		statements = appendObjects(statements, system, &path, o.Objects)
	}
	return statements
}

func planetStatement(p *model.Planet) statement {
	var tributeValue, tributeThreshold *uint32
	var tributeFleet *string
	var tributeFleetCount *uint16
	if t := p.Tribute; t != nil {
		tributeValue, tributeThreshold = &t.Value, &t.Threshold
		tributeFleet, tributeFleetCount = &t.Fleet.Kind, &t.Fleet.Count
	}
	var spaceport *string
	if len(p.Spaceport) > 0 {
		s := strings.Join(p.Spaceport, "\n")
		spaceport = &s
	}

	return statement{
		query: `
		INSERT INTO planets (name, attributes, landscape, government, music, description, spaceport,
			shipyard, outfitter, bribe, security, required_reputation,
			tribute_value, tribute_threshold, tribute_fleet, tribute_fleet_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (name) DO UPDATE SET
			attributes = EXCLUDED.attributes, landscape = EXCLUDED.landscape,
			government = EXCLUDED.government, music = EXCLUDED.music,
			description = EXCLUDED.description, spaceport = EXCLUDED.spaceport,
			shipyard = EXCLUDED.shipyard, outfitter = EXCLUDED.outfitter,
			bribe = EXCLUDED.bribe, security = EXCLUDED.security,
			required_reputation = EXCLUDED.required_reputation,
			tribute_value = EXCLUDED.tribute_value, tribute_threshold = EXCLUDED.tribute_threshold,
			tribute_fleet = EXCLUDED.tribute_fleet, tribute_fleet_count = EXCLUDED.tribute_fleet_count`,
		args: []any{
			p.Name, pq.Array(nonNil(p.Attributes)), p.Landscape, p.Government, p.Music,
			strings.Join(p.Description, "\n"), spaceport,
			pq.Array(nonNil(p.Shipyard)), pq.Array(nonNil(p.Outfitter)),
			p.Bribe, p.Security, p.RequiredReputation,
			tributeValue, tributeThreshold, tributeFleet, tributeFleetCount,
		},
	}
}

func shipStatement(s *model.Ship) statement {
	variant := ""
	if s.Subclass != nil {
		variant = *s.Subclass
	}
	_, animated := s.Sprite.(*model.AnimatedSprite)
	var outfitNames []string
	var outfitCounts []int64
	for _, o := range s.Outfits {
		outfitNames = append(outfitNames, o.Name)
		outfitCounts = append(outfitCounts, int64(o.Count))
	}
	a := s.Attributes

	return statement{
		query: `
		INSERT INTO ships (name, variant, plural, sprite, animated, thumbnail, category,
			cost, shields, hull, mass, licenses, outfit_names, outfit_counts, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (name, variant) DO UPDATE SET
			plural = EXCLUDED.plural, sprite = EXCLUDED.sprite, animated = EXCLUDED.animated,
			thumbnail = EXCLUDED.thumbnail, category = EXCLUDED.category,
			cost = EXCLUDED.cost, shields = EXCLUDED.shields, hull = EXCLUDED.hull,
			mass = EXCLUDED.mass, licenses = EXCLUDED.licenses,
			outfit_names = EXCLUDED.outfit_names, outfit_counts = EXCLUDED.outfit_counts,
			description = EXCLUDED.description`,
		args: []any{
			s.Name, variant, s.Plural, s.Sprite.SpriteName(), animated, s.Thumbnail, a.Category,
			a.Cost, a.Shields, a.Hull, a.Mass, pq.Array(nonNil(a.Licenses)),
			pq.Array(nonNil(outfitNames)), pq.Array(nonNil(outfitCounts)),
			strings.Join(s.Description, "\n"),
		},
	}
}

// startStatement passes the u64 amounts as decimal text so that values
// above the BIGINT range reach the NUMERIC columns intact.
func startStatement(s *model.Start) statement {
	m := s.Account.Mortgage
	return statement{
		query: `
		INSERT INTO starts (system, planet, date, credits, score, principal, interest, term, set_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (system, planet) DO UPDATE SET
			date = EXCLUDED.date, credits = EXCLUDED.credits, score = EXCLUDED.score,
			principal = EXCLUDED.principal, interest = EXCLUDED.interest,
			term = EXCLUDED.term, set_name = EXCLUDED.set_name`,
		args: []any{
			s.System, s.Planet, s.Date.String(), strconv.FormatUint(s.Account.Credits, 10), s.Account.Score,
			strconv.FormatUint(m.Principal, 10), m.Interest, m.Term, s.Set,
		},
	}
}

// nonNil turns a nil slice into an empty one so that pq stores '{}'
// rather than NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
