// Package combat implements the engine's expectation-based attack
// resolver: no sampling, a single deterministic expectation record per
// attack, built the way galaxyCore/ships/formation_combat.go composes a
// CombatContext (base stat -> modifier stack -> positional multiplier
// -> final number), generalized from "formation counter" to
// "terrain defense + facing + experience + commander scalars" per the
// explicit regression-fit Open Question in spec.md (there is no single
// canonical formula to reproduce; this is the tunable surface an
// implementer regresses against recorded combat reports).
package combat

import (
	"math"

	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/engineconfig"
)

// AttackerState is the resolver's view of the attacking unit.
type AttackerState struct {
	Class      catalog.Class
	Strength   int
	Experience int
	Ammo       int
	RangeMin   int
	RangeMax   int
	IsBomber   bool
	IsFighter  bool
	IsAA       bool
}

// AttackerContext carries per-attack, non-stat inputs for the attacker.
type AttackerContext struct {
	CommanderAccuracyPct float64
	CommanderDamagePct   float64
	IsRushing            bool
}

// DefenderState is the resolver's view of the defending unit.
type DefenderState struct {
	Class      catalog.Class
	Strength   int
	Entrench   int
	IsBomber   bool
	IsFighter  bool
}

// DefenderContext carries per-attack, non-stat inputs for the defender.
type DefenderContext struct {
	TerrainDefenseBonus float64
	FacingAttacker      bool // defender's facing directly opposes the attack
	IsRushing           bool
	SpottedOnly         bool // engaged via a spotter, not the attacker's own LOS
}

// Expectation is the resolver's output: a deterministic expectation
// record, never a sampled outcome.
type Expectation struct {
	DamagePerHit        float64
	ExpectedDamage       float64
	ExpectedSuppression  float64
	Accuracy             float64
}

const baseDamagePerHit = 10.0

// Resolve computes the expectation record for a single attack. The
// engine applies post-multipliers (bomber/fighter/other bands) and
// rounding on top of this; Resolve itself never rounds.
func Resolve(cfg engineconfig.CombatConfig, attacker AttackerState, attackerCtx AttackerContext, defender DefenderState, defenderCtx DefenderContext) Expectation {
	accuracy := cfg.BaseAccuracy
	accuracy += float64(attacker.Experience) * cfg.ExperienceAccuracyStep
	accuracy += attackerCtx.CommanderAccuracyPct
	if defenderCtx.SpottedOnly {
		accuracy -= 0.15
	}
	if defenderCtx.FacingAttacker {
		accuracy -= 0.05
	}
	if attackerCtx.IsRushing {
		accuracy -= 0.10
	}
	accuracy = clamp01(accuracy)

	damagePerHit := Apply(baseDamagePerHit*float64(attacker.Strength)/100.0, attackerCtx.CommanderDamagePct)

	defenseMultiplier := 1.0 + defenderCtx.TerrainDefenseBonus + cfg.EntrenchDefenseStep*float64(defender.Entrench)
	if defenderCtx.IsRushing {
		defenseMultiplier -= 0.10
	}
	if defenseMultiplier < 0.1 {
		defenseMultiplier = 0.1
	}

	expectedDamage := (damagePerHit * accuracy) / defenseMultiplier
	expectedSuppression := expectedDamage * 0.5

	return Expectation{
		DamagePerHit:        damagePerHit,
		ExpectedDamage:       expectedDamage,
		ExpectedSuppression:  expectedSuppression,
		Accuracy:             accuracy,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PostMultiplierKind selects which of the three post-multiplier bands
// applies to a resolved attack.
type PostMultiplierKind int

const (
	// KindOther is the default band: x1 damage/suppression, round().
	KindOther PostMultiplierKind = iota
	// KindBomberVsNonAir: x10 damage/suppression, damage uses ceil().
	KindBomberVsNonAir
	// KindFighterVsAir: x4 damage/suppression, damage uses round().
	KindFighterVsAir
)

// ClassifyPostMultiplier selects the post-multiplier band for an
// attacker/defender pair per spec.md's three named bands.
func ClassifyPostMultiplier(attacker AttackerState, defenderIsAir bool) PostMultiplierKind {
	if attacker.IsBomber && !defenderIsAir {
		return KindBomberVsNonAir
	}
	if attacker.IsFighter && defenderIsAir {
		return KindFighterVsAir
	}
	return KindOther
}

// AppliedDamage applies the post-multiplier band to an expectation and
// returns the integer damage to inflict plus the suppression value
// (suppression is not rounded; it is a soft, internal quantity).
func AppliedDamage(kind PostMultiplierKind, exp Expectation) (damage int, suppression float64) {
	switch kind {
	case KindBomberVsNonAir:
		return int(math.Ceil(exp.ExpectedDamage * 10)), exp.ExpectedSuppression * 10
	case KindFighterVsAir:
		return int(math.Round(exp.ExpectedDamage * 4)), exp.ExpectedSuppression * 4
	default:
		return int(math.Round(exp.ExpectedDamage)), exp.ExpectedSuppression
	}
}

// RetaliationMultiplierKind selects the retaliation-specific damage band.
type RetaliationMultiplierKind int

const (
	RetaliationOther RetaliationMultiplierKind = iota
	RetaliationBomberVsAircraft
	RetaliationFighterVsFighter
)

// ClassifyRetaliation selects the retaliation band: bomber defending vs
// aircraft x2, fighter vs fighter x4, else x1.
func ClassifyRetaliation(defender DefenderState, attackerIsAir bool) RetaliationMultiplierKind {
	if defender.IsBomber && attackerIsAir {
		return RetaliationBomberVsAircraft
	}
	if defender.IsFighter && attackerIsAir {
		return RetaliationFighterVsFighter
	}
	return RetaliationOther
}

// AppliedRetaliationDamage applies the retaliation band's multiplier.
func AppliedRetaliationDamage(kind RetaliationMultiplierKind, exp Expectation) int {
	switch kind {
	case RetaliationBomberVsAircraft:
		return int(math.Round(exp.ExpectedDamage * 2))
	case RetaliationFighterVsFighter:
		return int(math.Round(exp.ExpectedDamage * 4))
	default:
		return int(math.Round(exp.ExpectedDamage))
	}
}
