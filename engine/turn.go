package engine

import (
	"fmt"
	"math"

	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/hexgrid"
	"github.com/ironveil/tactics-core/supply"
)

// baseAttritionProfile is the out-of-supply attrition applied before
// commander scaling. spec.md names the mechanism (ammo/fuel/entrench/
// strength losses scaled by the commander supply scalar) but not the
// magnitudes; these are the regression-fit constants, mirroring the
// combat resolver's Open Question in spec.md §9.
var baseAttritionProfile = supply.AttritionProfile{Ammo: 1, Fuel: 1, Entrench: 1, Strength: 2}

// EndTurn ends the Player's turn: runs the Player's air-mission step,
// refits, and supply tick; flips to bot_turn; runs the bot driver
// synchronously; runs the Bot's air-mission step, refits, and supply
// tick; then flips back to player_turn with turn_number incremented.
func (b *Battle) EndTurn() (*SupplyTickReport, error) {
	if b.phase != PhasePlayerTurn {
		return nil, fmt.Errorf("end turn: %w", cerrs.ErrPhaseInvalid)
	}
	log := b.cfg.Log()
	log.Info("turn ending", "turn", b.turnNumber, "phase", b.phase)

	playerReport := b.runFactionTurnEnd(Player)

	b.phase = PhaseBotTurn
	b.activeFaction = Bot
	b.clearTurnFlags(Bot)
	b.invalidate()
	log.Debug("phase transition", "phase", b.phase, "activeFaction", b.activeFaction)

	b.runBotTurn()

	b.runFactionTurnEnd(Bot)

	b.phase = PhasePlayerTurn
	b.activeFaction = Player
	b.turnNumber++
	b.clearTurnFlags(Player)
	b.invalidate()
	log.Info("turn started", "turn", b.turnNumber, "phase", b.phase)

	return playerReport, nil
}

// clearTurnFlags resets every unit's per-turn action flags for faction
// f, per spec.md's "cleared at each faction's turn start".
func (b *Battle) clearTurnFlags(f Faction) {
	for _, u := range b.faction(f).placements {
		u.Flags = TurnFlags{}
	}
}

// runFactionTurnEnd runs faction f's air-mission lifecycle step,
// refit ticks (folded into airMissionLifecycleTick), base-camp
// rearming, and supply tick, in that fixed order.
func (b *Battle) runFactionTurnEnd(f Faction) *SupplyTickReport {
	b.airMissionLifecycleTick(f)
	if f == Player {
		b.baseCampRearm()
	} else {
		b.botAutoRearm()
	}
	return b.supplyTick(f)
}

// baseCampRearm restores ammo and repairs strength for any Player
// aircraft sitting on the base camp hex with zero movement used this
// turn.
func (b *Battle) baseCampRearm() {
	fs := b.faction(Player)
	if !fs.hasBaseCamp {
		return
	}
	u, ok := fs.unitAt(fs.baseCampHex)
	if !ok || u.Flags.MovementPointsUsed != 0 {
		return
	}
	ut, ok := b.unitType(u.TypeKey)
	if !ok || ut.AirSupport == nil {
		return
	}
	fs.ammoPools[u.UnitID] = newAircraftAmmoPool(b.cfg)
	u.Strength = min100(u.Strength + 10)
}

// botAutoRearm restores every Bot aircraft's ammo pool to baseline
// between turns, per spec.md's "Bot aircraft rearm automatically".
func (b *Battle) botAutoRearm() {
	fs := b.faction(Bot)
	for _, u := range fs.placements {
		ut, ok := b.unitType(u.TypeKey)
		if !ok || ut.AirSupport == nil {
			continue
		}
		fs.ammoPools[u.UnitID] = newAircraftAmmoPool(b.cfg)
	}
}

func min100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

// supplyTick delivers pending shipments, credits production, then
// draws upkeep (depot-first, onboard fallback) for every connected
// unit and applies out-of-supply attrition to every disconnected one.
func (b *Battle) supplyTick(f Faction) *SupplyTickReport {
	fs := b.faction(f)
	fs.supply.DeliverShipments(b.turnNumber)
	fs.supply.CreditProduction(b.turnNumber)

	connected := b.connectivityFor(f)

	scalar := 1.0
	if f == Player {
		scalar = supply.CommanderScalar(fs.commander.SupplyBonusPct)
	}

	var attritioned []string
	var destroyed []hexgrid.Hex
	for _, u := range fs.placements {
		ut, ok := b.unitType(u.TypeKey)
		if !ok {
			continue
		}
		if connected[u.Hex.Key()] {
			b.drawUnitUpkeep(fs, u, ut)
			continue
		}
		scaled := supply.ScaledAttrition(baseAttritionProfile, scalar)
		u.Ammo = clampNonNeg(u.Ammo - int(math.Round(scaled.Ammo)))
		u.Fuel = clampNonNeg(u.Fuel - int(math.Round(scaled.Fuel)))
		u.Entrench = clampNonNeg(u.Entrench - int(math.Round(scaled.Entrench)))
		u.Strength -= int(math.Round(scaled.Strength))
		attritioned = append(attritioned, u.UnitID)
		if u.Strength <= 0 {
			destroyed = append(destroyed, u.Hex)
		}
	}
	for _, h := range destroyed {
		delete(fs.placements, h.Key())
	}
	if len(attritioned) > 0 {
		b.cfg.Log().Info("out-of-supply attrition applied", "faction", f, "turn", b.turnNumber,
			"unitsAttritioned", len(attritioned), "unitsDestroyed", len(destroyed))
	}

	return &SupplyTickReport{Faction: f, ProductionCredited: true, UnitsAttritioned: attritioned}
}

func (b *Battle) drawUnitUpkeep(fs *factionState, u *Unit, ut catalog.UnitType) {
	if unmet := fs.supply.DrawUpkeep(b.turnNumber, supply.ResourceAmmo, ut.UpkeepAmmo, "unit upkeep"); unmet > 0 {
		u.Ammo = clampNonNeg(u.Ammo - int(math.Ceil(unmet)))
	}
	if unmet := fs.supply.DrawUpkeep(b.turnNumber, supply.ResourceFuel, ut.UpkeepFuel, "unit upkeep"); unmet > 0 {
		u.Fuel = clampNonNeg(u.Fuel - int(math.Ceil(unmet)))
	}
	fs.supply.DrawUpkeep(b.turnNumber, supply.ResourceRations, ut.UpkeepRations, "unit upkeep")
	fs.supply.DrawUpkeep(b.turnNumber, supply.ResourceParts, ut.UpkeepParts, "unit upkeep")
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
