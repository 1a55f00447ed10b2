// Package engine implements the deterministic battle state machine:
// phase/turn orchestration, deployment and reserves, hex movement and
// attack resolution, supply ticks, the air-mission lifecycle, the bot
// turn, and snapshots. It is the sole owner of all mutable battle
// state; everything it exposes outward is either a tagged result or a
// defensively-copied snapshot.
package engine

import (
	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/hexgrid"
	"github.com/ironveil/tactics-core/supply"
)

// Faction identifies a side in the battle.
type Faction string

const (
	Player Faction = "Player"
	Bot    Faction = "Bot"
)

// Phase enumerates the permitted phase/turn states.
type Phase string

const (
	PhaseDeployment Phase = "deployment"
	PhasePlayerTurn Phase = "player_turn"
	PhaseBotTurn    Phase = "bot_turn"
	PhaseCompleted  Phase = "completed"
)

// Facing enumerates the six facing directions. It is a separate set
// from hexgrid.Direction, which names East and West rather than N and S.
type Facing string

const (
	FacingN  Facing = "N"
	FacingNE Facing = "NE"
	FacingSE Facing = "SE"
	FacingS  Facing = "S"
	FacingSW Facing = "SW"
	FacingNW Facing = "NW"
)

// TurnFlags are the per-unit, per-turn action flags, cleared at each
// faction's turn start.
type TurnFlags struct {
	MovementPointsUsed int
	AttacksUsed        int
	RetaliationsUsed   int
	IsRushing          bool
}

// Unit is one on-map (or reserved) unit instance.
type Unit struct {
	UnitID     string
	Faction    Faction
	TypeKey    string
	Hex        hexgrid.Hex
	Strength   int
	Experience int
	Ammo       int
	Fuel       int
	Entrench   int
	Facing     Facing

	// AllocationKey and Sprite travel with the unit across the
	// deploy/recall round trip: deployReserveEntry copies them onto the
	// placed Unit, and RecallUnit reads them back off to rebuild the
	// original ReserveEntry.
	AllocationKey string
	Sprite        string

	Flags TurnFlags
}

// IsAlive reports whether the unit still has strength.
func (u *Unit) IsAlive() bool { return u.Strength > 0 }

// ReserveEntry is one queued reserve unit.
type ReserveEntry struct {
	Unit           Unit
	AllocationKey  string
	Sprite         string
}

// CommanderBonuses are independent per-faction scalars, applied only at
// the well-defined points spec.md names: budget compute, upkeep
// scaling, and resolver inputs — never as global mutators.
type CommanderBonuses struct {
	MoveScalar     float64
	SupplyBonusPct float64
	AccuracyPct    float64
	DamagePct      float64
}

// DefaultCommanderBonuses returns neutral (no-op) bonuses.
func DefaultCommanderBonuses() CommanderBonuses {
	return CommanderBonuses{MoveScalar: 1, SupplyBonusPct: 0, AccuracyPct: 0, DamagePct: 0}
}

// factionState groups everything the engine tracks per faction.
type factionState struct {
	placements      map[string]*Unit // hex key -> unit
	reserves        []ReserveEntry
	airborneReserve []ReserveEntry

	supply *supply.State

	ammoPools map[string]*airmission.AmmoPool // squadron id -> pool
	locks     map[string]string               // squadron id -> mission id
	refits    []*airmission.RefitTimer

	commander CommanderBonuses

	baseCampHex    hexgrid.Hex
	hasBaseCamp    bool
	hqHex          hexgrid.Hex
	hasHQ          bool
}

func newFactionState(ledgerLimit int) *factionState {
	return &factionState{
		placements: make(map[string]*Unit),
		ammoPools:  make(map[string]*airmission.AmmoPool),
		locks:      make(map[string]string),
		supply:     supply.NewState(ledgerLimit),
		commander:  DefaultCommanderBonuses(),
	}
}

// Catalogs bundles the external, read-only collaborators the engine
// consumes.
type Catalogs struct {
	Units   catalog.UnitCatalog
	Terrain catalog.TerrainOracle
}
