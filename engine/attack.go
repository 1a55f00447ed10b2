package engine

import (
	"fmt"

	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/combat"
	"github.com/ironveil/tactics-core/hexgrid"
)

// lineOfFire reports whether attacker (faction af, unit au, at hex ah)
// has a line of fire to defender hex dh: either direct LOS, or a
// friendly spotter with LOS and (for ground spotters) the target within
// vision. Returns (hasFire, spottedOnly).
func (b *Battle) lineOfFire(af Faction, au *Unit, ah, dh hexgrid.Hex) (bool, bool) {
	aut, _ := b.unitType(au.TypeKey)
	advanced := aut.Class == catalog.ClassAir
	if hexgrid.HasLOS(b.catalogs.Terrain, ah, dh, advanced) {
		return true, false
	}
	fs := b.faction(af)
	for _, spotter := range fs.placements {
		if spotter.Hex == ah {
			continue
		}
		sut, ok := b.unitType(spotter.TypeKey)
		if !ok {
			continue
		}
		spotterAdvanced := sut.Class == catalog.ClassAir
		if !hexgrid.HasLOS(b.catalogs.Terrain, spotter.Hex, dh, spotterAdvanced) {
			continue
		}
		if sut.Class != catalog.ClassAir {
			if hexgrid.Distance(spotter.Hex, dh) > sut.Vision {
				continue
			}
		}
		return true, true
	}
	return false, false
}

func unitIsAir(ut catalog.UnitType) bool { return ut.Class == catalog.ClassAir }

func (b *Battle) combatAttackerState(au *Unit, aut catalog.UnitType) combat.AttackerState {
	return combat.AttackerState{
		Class:      aut.Class,
		Strength:   au.Strength,
		Experience: au.Experience,
		Ammo:       au.Ammo,
		RangeMin:   aut.RangeMin,
		RangeMax:   aut.RangeMax,
		IsBomber:   catalog.IsBomber(aut),
		IsFighter:  catalog.IsFighter(aut),
		IsAA:       catalog.IsExplicitAA(aut),
	}
}

func (b *Battle) combatDefenderState(du *Unit, dut catalog.UnitType) combat.DefenderState {
	return combat.DefenderState{
		Class:    dut.Class,
		Strength: du.Strength,
		Entrench: du.Entrench,
		IsBomber: catalog.IsBomber(dut),
		IsFighter: catalog.IsFighter(dut),
	}
}

// canTarget enforces the ground-vs-air and bomber-vs-air targeting
// restrictions: ground units (except explicit AA) cannot target
// aircraft; bombers may only engage aircraft on retaliation.
func canTarget(aut, dut catalog.UnitType, isRetaliation bool) error {
	if unitIsAir(dut) {
		if !unitIsAir(aut) && !catalog.IsExplicitAA(aut) {
			return cerrs.ErrGroundCannotTargetAir
		}
		if catalog.IsBomber(aut) && !isRetaliation {
			return cerrs.ErrBomberRetaliationOnly
		}
	}
	return nil
}

// AttackUnit resolves a primary attack and, if conditions allow, a
// retaliation strike, appending a combat report entry.
func (b *Battle) AttackUnit(attackerHex, defenderHex hexgrid.Hex) AttackResolution {
	if b.phase != PhasePlayerTurn && b.phase != PhaseBotTurn {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrPhaseInvalid)}
	}
	af, au, err := b.findUnit(attackerHex)
	if err != nil {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", err)}
	}
	if af != b.activeFaction {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrNotYourTurn)}
	}
	df, du, err := b.findUnit(defenderHex)
	if err != nil {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", err)}
	}
	if df == af {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrNoUnitAtHex)}
	}
	aut, _ := b.unitType(au.TypeKey)
	dut, _ := b.unitType(du.TypeKey)

	if !unitIsAir(aut) {
		base := b.baseMovementBudget(af, au)
		if au.Flags.MovementPointsUsed*2 > base {
			return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrMovedTooFarToAttack)}
		}
	}

	dist := hexgrid.Distance(attackerHex, defenderHex)
	if dist < aut.RangeMin || dist > aut.RangeMax {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrOutOfRangeAttack)}
	}
	if err := canTarget(aut, dut, false); err != nil {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", err)}
	}
	hasFire, spottedOnly := b.lineOfFire(af, au, attackerHex, defenderHex)
	if !hasFire {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrNoLineOfFire)}
	}
	if au.Ammo <= 0 {
		return AttackResolution{Err: fmt.Errorf("attack unit: %w", cerrs.ErrAmmoExhausted)}
	}

	exp := combat.Resolve(b.cfg.Combat, b.combatAttackerState(au, aut), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(af).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(af).commander.DamagePct,
		IsRushing:            au.Flags.IsRushing,
	}, b.combatDefenderState(du, dut), combat.DefenderContext{
		TerrainDefenseBonus: b.catalogs.Terrain.DefenseBonus(defenderHex),
		FacingAttacker:      false,
		IsRushing:           du.Flags.IsRushing,
		SpottedOnly:         spottedOnly,
	})

	kind := combat.ClassifyPostMultiplier(b.combatAttackerState(au, aut), unitIsAir(dut))
	damage, _ := combat.AppliedDamage(kind, exp)

	result := AttackResolution{OK: true}
	du.Strength -= damage
	if du.Strength < 0 {
		du.Strength = 0
	}
	result.DamageDealt = damage

	au.Ammo--
	if unitIsAir(aut) {
		b.spendAircraftSalvo(af, au, unitIsAir(dut))
	}

	defenderDestroyed := du.Strength <= 0
	if defenderDestroyed {
		result.DefenderDestroyed = true
		delete(b.faction(df).placements, defenderHex.Key())
	}

	if !defenderDestroyed {
		retaliated, rdamage, attackerDestroyed, note := b.resolveRetaliation(df, du, dut, af, au, aut, defenderHex, attackerHex)
		result.Retaliated = retaliated
		result.RetaliationDamage = rdamage
		result.AttackerDestroyed = attackerDestroyed
		result.RetaliationNote = note
	} else {
		result.RetaliationNote = "defender destroyed; no retaliation"
	}

	au.Flags.AttacksUsed++
	maneuverCost := 0
	if unitIsAir(aut) {
		if unitIsAir(dut) {
			maneuverCost = 2
		} else {
			maneuverCost = 1
		}
	}
	au.Flags.MovementPointsUsed += maneuverCost

	b.combatReports = append(b.combatReports, CombatReportEntry{
		Turn:              b.turnNumber,
		AttackerUnitID:    au.UnitID,
		DefenderUnitID:    du.UnitID,
		AttackerHexKey:    attackerHex.Key(),
		DefenderHexKey:    defenderHex.Key(),
		DamageDealt:       result.DamageDealt,
		DefenderDestroyed: result.DefenderDestroyed,
		Retaliated:        result.Retaliated,
		RetaliationDamage: result.RetaliationDamage,
		AttackerDestroyed: result.AttackerDestroyed,
		RetaliationNote:   result.RetaliationNote,
	})
	b.trimCombatReports()
	b.invalidate()
	return result
}

func (b *Battle) resolveRetaliation(df Faction, du *Unit, dut catalog.UnitType, af Faction, au *Unit, aut catalog.UnitType, defenderHex, attackerHex hexgrid.Hex) (retaliated bool, damage int, attackerDestroyed bool, note string) {
	if du.Flags.RetaliationsUsed > 0 {
		return false, 0, false, "retaliation already used this turn"
	}
	if err := canTarget(dut, aut, true); err != nil {
		return false, 0, false, err.Error()
	}
	effectiveMax := dut.RangeMax
	if catalog.IsBomber(dut) && unitIsAir(aut) {
		effectiveMax++
	}
	dist := hexgrid.Distance(defenderHex, attackerHex)
	if dist < dut.RangeMin || dist > effectiveMax {
		return false, 0, false, "attacker out of retaliation range"
	}
	if du.Ammo <= 0 {
		return false, 0, false, "defender has no ammunition to retaliate"
	}
	hasFire, spottedOnly := b.lineOfFire(df, du, defenderHex, attackerHex)
	if !hasFire {
		return false, 0, false, "no line of fire for retaliation"
	}

	exp := combat.Resolve(b.cfg.Combat, b.combatAttackerState(du, dut), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(df).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(df).commander.DamagePct,
		IsRushing:            du.Flags.IsRushing,
	}, b.combatDefenderState(au, aut), combat.DefenderContext{
		TerrainDefenseBonus: b.catalogs.Terrain.DefenseBonus(attackerHex),
		FacingAttacker:      false,
		IsRushing:           au.Flags.IsRushing,
		SpottedOnly:         spottedOnly,
	})
	kind := combat.ClassifyRetaliation(b.combatDefenderState(du, dut), unitIsAir(aut))
	dmg := combat.AppliedRetaliationDamage(kind, exp)

	du.Ammo--
	if unitIsAir(dut) {
		b.spendAircraftSalvo(df, du, unitIsAir(aut))
	}
	du.Flags.RetaliationsUsed++

	au.Strength -= dmg
	if au.Strength < 0 {
		au.Strength = 0
	}
	if au.Strength <= 0 {
		delete(b.faction(af).placements, attackerHex.Key())
		return true, dmg, true, ""
	}
	return true, dmg, false, ""
}

// spendAircraftSalvo debits one salvo from the attacking aircraft's
// pool matching the target class (air target -> air salvo, otherwise
// ground salvo), setting needs_rearm on exhaustion.
func (b *Battle) spendAircraftSalvo(f Faction, u *Unit, targetIsAir bool) {
	fs := b.faction(f)
	pool, ok := fs.ammoPools[u.UnitID]
	if !ok {
		pool = &airmission.AmmoPool{Air: b.cfg.Air.BaseAirSalvos, Ground: b.cfg.Air.BaseGroundSalvos}
		fs.ammoPools[u.UnitID] = pool
	}
	if targetIsAir {
		pool.SpendAir()
	} else {
		pool.SpendGround()
	}
}

// GetAttackableTargets returns the hex keys of every enemy unit the
// unit at attackerHex may currently target.
func (b *Battle) GetAttackableTargets(attackerHex hexgrid.Hex) ([]string, error) {
	af, au, err := b.findUnit(attackerHex)
	if err != nil {
		return nil, err
	}
	aut, ok := b.unitType(au.TypeKey)
	if !ok {
		return nil, fmt.Errorf("get attackable targets: %w", cerrs.ErrUnknownUnitType)
	}
	var out []string
	opp := b.opponent(af)
	for key, du := range b.faction(opp).placements {
		dh := du.Hex
		dut, _ := b.unitType(du.TypeKey)
		dist := hexgrid.Distance(attackerHex, dh)
		if dist < aut.RangeMin || dist > aut.RangeMax {
			continue
		}
		if canTarget(aut, dut, false) != nil {
			continue
		}
		if hasFire, _ := b.lineOfFire(af, au, attackerHex, dh); !hasFire {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

// PreviewAttack computes the same expectation record AttackUnit would
// without mutating any state.
func (b *Battle) PreviewAttack(attackerHex, defenderHex hexgrid.Hex) CombatPreview {
	af, au, err := b.findUnit(attackerHex)
	if err != nil {
		return CombatPreview{Err: err}
	}
	df, du, err := b.findUnit(defenderHex)
	if err != nil {
		return CombatPreview{Err: err}
	}
	aut, _ := b.unitType(au.TypeKey)
	dut, _ := b.unitType(du.TypeKey)
	dist := hexgrid.Distance(attackerHex, defenderHex)
	inRange := dist >= aut.RangeMin && dist <= aut.RangeMax
	hasFire, spottedOnly := b.lineOfFire(af, au, attackerHex, defenderHex)

	exp := combat.Resolve(b.cfg.Combat, b.combatAttackerState(au, aut), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(af).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(af).commander.DamagePct,
		IsRushing:            au.Flags.IsRushing,
	}, b.combatDefenderState(du, dut), combat.DefenderContext{
		TerrainDefenseBonus: b.catalogs.Terrain.DefenseBonus(defenderHex),
		IsRushing:           du.Flags.IsRushing,
		SpottedOnly:         spottedOnly,
	})
	retaliation := combat.Resolve(b.cfg.Combat, b.combatAttackerState(du, dut), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(df).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(df).commander.DamagePct,
		IsRushing:            du.Flags.IsRushing,
	}, b.combatDefenderState(au, aut), combat.DefenderContext{
		TerrainDefenseBonus: b.catalogs.Terrain.DefenseBonus(attackerHex),
		IsRushing:           au.Flags.IsRushing,
	})

	return CombatPreview{
		OK:                  true,
		ExpectedDamage:      exp.ExpectedDamage,
		ExpectedRetaliation: retaliation.ExpectedDamage,
		Accuracy:            exp.Accuracy,
		InRange:             inRange,
		HasLineOfFire:       hasFire,
	}
}

func (b *Battle) trimCombatReports() {
	limit := b.cfg.Reports.CombatReportLimit
	if limit > 0 && len(b.combatReports) > limit {
		b.combatReports = b.combatReports[len(b.combatReports)-limit:]
	}
}
