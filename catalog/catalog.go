// Package catalog declares the external collaborators the engine
// consumes but never owns: terrain, unit-type, and upkeep tables. These
// mirror galaxyCore's no-logic, data-only Building interface — the
// engine depends on the shape, not on any particular data source.
package catalog

import "github.com/ironveil/tactics-core/hexgrid"

// Class enumerates the unit-type classes the engine understands.
type Class string

const (
	ClassInfantry   Class = "infantry"
	ClassSpecialist Class = "specialist"
	ClassVehicle    Class = "vehicle"
	ClassTank       Class = "tank"
	ClassArtillery  Class = "artillery"
	ClassAir        Class = "air"
	ClassRecon      Class = "recon"
)

// MoveType enumerates terrain-cost lookup keys.
type MoveType string

const (
	MoveLeg   MoveType = "leg"
	MoveWheel MoveType = "wheel"
	MoveTrack MoveType = "track"
	MoveAir   MoveType = "air"
)

// ImpassableCost is any move-cost value at or above this threshold.
const ImpassableCost = 999

// AirRole enumerates the roles an air-support profile may fulfill.
type AirRole string

const (
	RoleStrike    AirRole = "strike"
	RoleEscort    AirRole = "escort"
	RoleCAP       AirRole = "cap"
	RoleTransport AirRole = "transport"
)

// AirSupportProfile describes an aircraft-capable unit type's air-mission
// participation.
type AirSupportProfile struct {
	Roles          []AirRole
	CombatRadiusKm float64
	RefitTurns     int
}

// HasRole reports whether the profile supports the given role.
func (p AirSupportProfile) HasRole(role AirRole) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UnitType is the external, read-only stat dictionary entry for a
// catalog key.
type UnitType struct {
	Key              string
	Class            Class
	MoveType         MoveType
	MovementPoints   int
	Vision           int
	RangeMin         int
	RangeMax         int
	BaseAmmo         int
	BaseFuel         int
	AirSupport       *AirSupportProfile
	Traits           []string
	UpkeepAmmo       float64
	UpkeepFuel       float64
	UpkeepRations    float64
	UpkeepParts      float64
}

// HasTrait reports whether the unit type carries the named trait (e.g.
// "carpet" for carpet bombers, "aa" for explicit ground-to-air units).
func (u UnitType) HasTrait(trait string) bool {
	for _, t := range u.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// UnitCatalog is the external unit-type stat dictionary.
type UnitCatalog interface {
	Lookup(typeKey string) (UnitType, bool)
}

// TerrainOracle is the external terrain/map collaborator: move cost,
// LOS blocking, in-bounds, and passability/road queries for the supply
// BFS.
type TerrainOracle interface {
	// InBounds reports whether a hex exists on the map.
	InBounds(h hexgrid.Hex) bool
	// MoveCost returns the cost to enter h using the given move type.
	// A value >= catalog.ImpassableCost means impassable.
	MoveCost(moveType MoveType, h hexgrid.Hex) int
	// BlocksLOS reports whether h blocks line of sight.
	BlocksLOS(h hexgrid.Hex) bool
	// DefenseBonus returns the terrain's defensive multiplier bonus at h
	// (e.g. 0.25 for +25% effective defense).
	DefenseBonus(h hexgrid.Hex) float64
	// Passable reports whether h may be traversed at all by ground
	// supply BFS (distinct from move cost, which may still be high).
	Passable(h hexgrid.Hex) bool
	// IsRoad reports whether h is a road tile, preferred by the supply
	// BFS over plain passable tiles.
	IsRoad(h hexgrid.Hex) bool
}

// IsBomber reports whether a unit type is a bomber: an air unit carrying
// the "carpet" trait, per spec.md's "traits (e.g., 'carpet' marks
// bombers)".
func IsBomber(u UnitType) bool {
	return u.Class == ClassAir && u.HasTrait("carpet")
}

// IsFighter reports whether a unit type is an air-to-air capable
// fighter: an air unit with an escort or CAP role that is not a bomber.
func IsFighter(u UnitType) bool {
	if u.Class != ClassAir || IsBomber(u) {
		return false
	}
	if u.AirSupport == nil {
		return false
	}
	return u.AirSupport.HasRole(RoleEscort) || u.AirSupport.HasRole(RoleCAP)
}

// IsExplicitAA reports whether a non-air unit type is nonetheless
// allowed to target aircraft (e.g. "Flak_88").
func IsExplicitAA(u UnitType) bool {
	return u.HasTrait("aa")
}

// MapUnitCatalog is a simple in-memory UnitCatalog, provided as a
// convenience default so the engine is runnable without a bespoke
// catalog implementation (tests use this).
type MapUnitCatalog map[string]UnitType

// Lookup implements UnitCatalog.
func (m MapUnitCatalog) Lookup(typeKey string) (UnitType, bool) {
	u, ok := m[typeKey]
	return u, ok
}
