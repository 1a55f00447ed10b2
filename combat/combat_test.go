package combat

import (
	"testing"

	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/engineconfig"
)

func TestApplyFloorsAtZero(t *testing.T) {
	if got := Apply(10, -2); got != 0 {
		t.Errorf("Apply(10, -2) = %v, want 0", got)
	}
	if got := Apply(10, 0.5); got != 15 {
		t.Errorf("Apply(10, 0.5) = %v, want 15", got)
	}
}

func TestStatModsAddSumsFields(t *testing.T) {
	a := StatMods{AccuracyPct: 0.25, DamagePct: 0.2}
	b := StatMods{AccuracyPct: 0.5, DefensePct: 0.3}
	got := a.Add(b)
	want := StatMods{AccuracyPct: 0.75, DamagePct: 0.2, DefensePct: 0.3}
	if got != want {
		t.Errorf("Add = %+v, want %+v", got, want)
	}
}

func defaultCfg() engineconfig.CombatConfig {
	return engineconfig.Default().Combat
}

func TestResolveHigherExperienceRaisesAccuracy(t *testing.T) {
	cfg := defaultCfg()
	base := AttackerState{Strength: 100}
	low := Resolve(cfg, base, AttackerContext{}, DefenderState{}, DefenderContext{})
	base.Experience = 5
	high := Resolve(cfg, base, AttackerContext{}, DefenderState{}, DefenderContext{})
	if high.Accuracy <= low.Accuracy {
		t.Errorf("higher experience accuracy = %v, want > %v", high.Accuracy, low.Accuracy)
	}
}

func TestResolveSpottedOnlyReducesAccuracy(t *testing.T) {
	cfg := defaultCfg()
	attacker := AttackerState{Strength: 100}
	direct := Resolve(cfg, attacker, AttackerContext{}, DefenderState{}, DefenderContext{})
	spotted := Resolve(cfg, attacker, AttackerContext{}, DefenderState{}, DefenderContext{SpottedOnly: true})
	if spotted.Accuracy >= direct.Accuracy {
		t.Errorf("spotted-only accuracy = %v, want < %v", spotted.Accuracy, direct.Accuracy)
	}
}

func TestResolveEntrenchmentReducesExpectedDamage(t *testing.T) {
	cfg := defaultCfg()
	attacker := AttackerState{Strength: 100}
	unentrenched := Resolve(cfg, attacker, AttackerContext{}, DefenderState{Entrench: 0}, DefenderContext{})
	entrenched := Resolve(cfg, attacker, AttackerContext{}, DefenderState{Entrench: 4}, DefenderContext{})
	if entrenched.ExpectedDamage >= unentrenched.ExpectedDamage {
		t.Errorf("entrenched expected damage = %v, want < %v", entrenched.ExpectedDamage, unentrenched.ExpectedDamage)
	}
}

func TestResolveAccuracyClampedToUnitRange(t *testing.T) {
	cfg := defaultCfg()
	attacker := AttackerState{Strength: 100, Experience: 1000}
	got := Resolve(cfg, attacker, AttackerContext{CommanderAccuracyPct: 5}, DefenderState{}, DefenderContext{})
	if got.Accuracy != 1 {
		t.Errorf("Accuracy = %v, want clamped to 1", got.Accuracy)
	}
}

func TestClassifyPostMultiplierBomberVsGround(t *testing.T) {
	bomber := AttackerState{IsBomber: true}
	if got := ClassifyPostMultiplier(bomber, false); got != KindBomberVsNonAir {
		t.Errorf("ClassifyPostMultiplier(bomber, ground) = %v, want KindBomberVsNonAir", got)
	}
}

func TestClassifyPostMultiplierBomberVsAirIsOther(t *testing.T) {
	bomber := AttackerState{IsBomber: true}
	if got := ClassifyPostMultiplier(bomber, true); got != KindOther {
		t.Errorf("ClassifyPostMultiplier(bomber, air) = %v, want KindOther", got)
	}
}

func TestClassifyPostMultiplierFighterVsAir(t *testing.T) {
	fighter := AttackerState{IsFighter: true}
	if got := ClassifyPostMultiplier(fighter, true); got != KindFighterVsAir {
		t.Errorf("ClassifyPostMultiplier(fighter, air) = %v, want KindFighterVsAir", got)
	}
}

func TestAppliedDamageBandsScaleDistinctly(t *testing.T) {
	exp := Expectation{ExpectedDamage: 1.0, ExpectedSuppression: 0.5}
	other, _ := AppliedDamage(KindOther, exp)
	bomber, _ := AppliedDamage(KindBomberVsNonAir, exp)
	fighter, _ := AppliedDamage(KindFighterVsAir, exp)
	if other != 1 {
		t.Errorf("KindOther damage = %d, want 1", other)
	}
	if bomber != 10 {
		t.Errorf("KindBomberVsNonAir damage = %d, want 10 (x10, ceil)", bomber)
	}
	if fighter != 4 {
		t.Errorf("KindFighterVsAir damage = %d, want 4 (x4, round)", fighter)
	}
}

func TestClassifyRetaliationBands(t *testing.T) {
	bomberDefender := DefenderState{IsBomber: true, Class: catalog.ClassAir}
	if got := ClassifyRetaliation(bomberDefender, true); got != RetaliationBomberVsAircraft {
		t.Errorf("ClassifyRetaliation(bomber, air attacker) = %v, want RetaliationBomberVsAircraft", got)
	}
	fighterDefender := DefenderState{IsFighter: true, Class: catalog.ClassAir}
	if got := ClassifyRetaliation(fighterDefender, true); got != RetaliationFighterVsFighter {
		t.Errorf("ClassifyRetaliation(fighter, air attacker) = %v, want RetaliationFighterVsFighter", got)
	}
	ground := DefenderState{Class: catalog.ClassInfantry}
	if got := ClassifyRetaliation(ground, false); got != RetaliationOther {
		t.Errorf("ClassifyRetaliation(ground, ground attacker) = %v, want RetaliationOther", got)
	}
}

func TestAppliedRetaliationDamageBands(t *testing.T) {
	exp := Expectation{ExpectedDamage: 2.5}
	if got := AppliedRetaliationDamage(RetaliationOther, exp); got != 3 {
		t.Errorf("RetaliationOther = %d, want 3 (round-half-away-from-zero of 2.5)", got)
	}
	if got := AppliedRetaliationDamage(RetaliationBomberVsAircraft, exp); got != 5 {
		t.Errorf("RetaliationBomberVsAircraft = %d, want 5", got)
	}
	if got := AppliedRetaliationDamage(RetaliationFighterVsFighter, exp); got != 10 {
		t.Errorf("RetaliationFighterVsFighter = %d, want 10", got)
	}
}
