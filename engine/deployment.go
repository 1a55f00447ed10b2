package engine

import (
	"fmt"

	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/hexgrid"
)

// BeginDeployment resets the engine to the deployment phase. It is only
// meaningful before anything has been deployed; callers that need a
// fresh battle should prefer New.
func (b *Battle) BeginDeployment() error {
	if b.phase == PhaseCompleted {
		return fmt.Errorf("begin deployment: %w", cerrs.ErrPhaseInvalid)
	}
	b.phase = PhaseDeployment
	b.invalidate()
	return nil
}

// SetFactionHQ designates faction f's HQ and base-camp hex: a supply
// source for the BFS connectivity both factions rely on. Only the
// Player's base camp additionally rearms on end_turn — that part of
// spec.md is explicitly Player-only — but the HQ/base-camp hex itself,
// and the supply connectivity it anchors, is a per-faction concept.
// Only valid during deployment.
func (b *Battle) SetFactionHQ(f Faction, h hexgrid.Hex) error {
	if b.phase != PhaseDeployment {
		return fmt.Errorf("set faction hq: %w", cerrs.ErrPhaseInvalid)
	}
	if !b.catalogs.Terrain.InBounds(h) {
		return fmt.Errorf("set faction hq: %w", cerrs.ErrOutOfBounds)
	}
	fs := b.faction(f)
	fs.baseCampHex = h
	fs.hasBaseCamp = true
	fs.hqHex = h
	fs.hasHQ = true
	if f == Player {
		b.baseCampSet = true
	}
	b.invalidate()
	return nil
}

// SetBaseCamp is the Player-specific shortcut spec.md's deployment
// operation list names. A scenario loader that wants the Bot to have
// its own supply-connectivity source (so it isn't attrited as
// permanently out of supply) should call SetFactionHQ(Bot, ...).
func (b *Battle) SetBaseCamp(h hexgrid.Hex) error {
	return b.SetFactionHQ(Player, h)
}

// AddToReserves appends a unit definition to faction f's reserve queue,
// minting a stable unit id. This is how a scenario loader seeds the
// pre-deployment roster; it is not named in spec.md's operation list
// but is required for deploy_unit(reserve_index) to have anything to
// draw from.
func (b *Battle) AddToReserves(f Faction, typeKey string, allocationKey, sprite string) (string, error) {
	if b.phase != PhaseDeployment {
		return "", fmt.Errorf("add to reserves: %w", cerrs.ErrPhaseInvalid)
	}
	ut, ok := b.unitType(typeKey)
	if !ok {
		return "", fmt.Errorf("add to reserves: %w", cerrs.ErrUnknownUnitType)
	}
	id := b.newUnitID()
	fs := b.faction(f)
	fs.reserves = append(fs.reserves, ReserveEntry{
		Unit: Unit{
			UnitID: id, Faction: f, TypeKey: typeKey, Strength: 100,
			Ammo: ut.BaseAmmo, Fuel: ut.BaseFuel,
			AllocationKey: allocationKey, Sprite: sprite,
		},
		AllocationKey: allocationKey,
		Sprite:        sprite,
	})
	b.invalidate()
	return id, nil
}

// DeployUnit deploys faction f's reserve at reserveIndex to hex h.
func (b *Battle) DeployUnit(f Faction, h hexgrid.Hex, reserveIndex int) error {
	if b.phase != PhaseDeployment {
		return fmt.Errorf("deploy unit: %w", cerrs.ErrPhaseInvalid)
	}
	fs := b.faction(f)
	if reserveIndex < 0 || reserveIndex >= len(fs.reserves) {
		return fmt.Errorf("deploy unit: %w", cerrs.ErrReserveIndexInvalid)
	}
	return b.deployReserveEntry(f, h, reserveIndex)
}

// DeployUnitByKey deploys by stable unit id rather than reserve index,
// the form the serialized-state upgrade path and UI both prefer.
func (b *Battle) DeployUnitByKey(f Faction, h hexgrid.Hex, unitKey string) error {
	if b.phase != PhaseDeployment {
		return fmt.Errorf("deploy unit by key: %w", cerrs.ErrPhaseInvalid)
	}
	fs := b.faction(f)
	idx := -1
	for i, r := range fs.reserves {
		if r.Unit.UnitID == unitKey {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("deploy unit by key: %w", cerrs.ErrUnknownAllocation)
	}
	return b.deployReserveEntry(f, h, idx)
}

func (b *Battle) deployReserveEntry(f Faction, h hexgrid.Hex, idx int) error {
	if !b.catalogs.Terrain.InBounds(h) {
		return fmt.Errorf("deploy unit: %w", cerrs.ErrOutOfBounds)
	}
	if _, occupied := b.anyUnitAt(h); occupied {
		return fmt.Errorf("deploy unit: %w", cerrs.ErrOccupied)
	}
	fs := b.faction(f)
	entry := fs.reserves[idx]
	u := entry.Unit
	u.Hex = h
	fs.placements[h.Key()] = &u
	fs.reserves = append(fs.reserves[:idx], fs.reserves[idx+1:]...)
	b.invalidate()
	return nil
}

// RecallUnit pulls a deployed unit back into reserves, preserving its
// allocation key — the round-trip law spec.md names (deploy then
// recall leaves reserves identical to initial).
func (b *Battle) RecallUnit(f Faction, h hexgrid.Hex) error {
	if b.phase != PhaseDeployment {
		return fmt.Errorf("recall unit: %w", cerrs.ErrPhaseInvalid)
	}
	fs := b.faction(f)
	u, ok := fs.unitAt(h)
	if !ok {
		return fmt.Errorf("recall unit: %w", cerrs.ErrNoUnitAtHex)
	}
	delete(fs.placements, h.Key())
	moved := *u
	moved.Hex = hexgrid.Hex{}
	fs.reserves = append(fs.reserves, ReserveEntry{
		Unit:          moved,
		AllocationKey: moved.AllocationKey,
		Sprite:        moved.Sprite,
	})
	b.invalidate()
	return nil
}

// MoveToReserves is an alias for RecallUnit kept distinct in the
// external interface per spec.md's naming; some callers recall a
// specific faction's unit without knowing which faction owns it.
func (b *Battle) MoveToReserves(h hexgrid.Hex) error {
	for _, f := range []Faction{Player, Bot} {
		if _, ok := b.faction(f).unitAt(h); ok {
			return b.RecallUnit(f, h)
		}
	}
	return fmt.Errorf("move to reserves: %w", cerrs.ErrNoUnitAtHex)
}

// FinalizeDeployment closes deployment bookkeeping and returns the
// Player's remaining (undeployed) reserve list. It does not itself
// transition the phase; start_player_turn_phase does, mirroring the
// two-call sequence spec.md's transition table names.
func (b *Battle) FinalizeDeployment() ([]ReserveEntry, error) {
	if b.phase != PhaseDeployment {
		return nil, fmt.Errorf("finalize deployment: %w", cerrs.ErrPhaseInvalid)
	}
	if !b.faction(Player).hasBaseCamp {
		return nil, fmt.Errorf("finalize deployment: %w", cerrs.ErrNoBaseCampSet)
	}
	out := append([]ReserveEntry(nil), b.faction(Player).reserves...)
	return out, nil
}

// StartPlayerTurnPhase transitions deployment -> player_turn.
func (b *Battle) StartPlayerTurnPhase() error {
	if b.phase != PhaseDeployment {
		return fmt.Errorf("start player turn phase: %w", cerrs.ErrPhaseInvalid)
	}
	if !b.faction(Player).hasBaseCamp {
		return fmt.Errorf("start player turn phase: %w", cerrs.ErrNoBaseCampSet)
	}
	b.phase = PhasePlayerTurn
	b.activeFaction = Player
	b.invalidate()
	return nil
}
