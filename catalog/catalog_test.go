package catalog

import "testing"

func TestMapUnitCatalogLookup(t *testing.T) {
	c := MapUnitCatalog{
		"inf": {Key: "inf", Class: ClassInfantry},
	}
	got, ok := c.Lookup("inf")
	if !ok || got.Key != "inf" {
		t.Errorf("Lookup(inf) = %v, %v", got, ok)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Error("Lookup(missing) = true, want false")
	}
}

func TestAirSupportProfileHasRole(t *testing.T) {
	p := AirSupportProfile{Roles: []AirRole{RoleStrike, RoleEscort}}
	if !p.HasRole(RoleStrike) {
		t.Error("HasRole(strike) = false, want true")
	}
	if p.HasRole(RoleCAP) {
		t.Error("HasRole(cap) = true, want false")
	}
}

func TestUnitTypeHasTrait(t *testing.T) {
	u := UnitType{Traits: []string{"carpet", "aa"}}
	if !u.HasTrait("carpet") {
		t.Error("HasTrait(carpet) = false, want true")
	}
	if u.HasTrait("flak") {
		t.Error("HasTrait(flak) = true, want false")
	}
}

func TestIsBomberRequiresAirClassAndCarpetTrait(t *testing.T) {
	bomber := UnitType{Class: ClassAir, Traits: []string{"carpet"}}
	if !IsBomber(bomber) {
		t.Error("IsBomber(carpet air) = false, want true")
	}
	groundCarpet := UnitType{Class: ClassInfantry, Traits: []string{"carpet"}}
	if IsBomber(groundCarpet) {
		t.Error("IsBomber(ground with carpet) = true, want false")
	}
	plainAir := UnitType{Class: ClassAir}
	if IsBomber(plainAir) {
		t.Error("IsBomber(plain air) = true, want false")
	}
}

func TestIsFighterExcludesBombersAndNonAir(t *testing.T) {
	fighter := UnitType{Class: ClassAir, AirSupport: &AirSupportProfile{Roles: []AirRole{RoleEscort}}}
	if !IsFighter(fighter) {
		t.Error("IsFighter(escort air) = false, want true")
	}
	capFighter := UnitType{Class: ClassAir, AirSupport: &AirSupportProfile{Roles: []AirRole{RoleCAP}}}
	if !IsFighter(capFighter) {
		t.Error("IsFighter(cap air) = false, want true")
	}
	bomber := UnitType{Class: ClassAir, Traits: []string{"carpet"}, AirSupport: &AirSupportProfile{Roles: []AirRole{RoleEscort}}}
	if IsFighter(bomber) {
		t.Error("IsFighter(bomber with escort role) = true, want false")
	}
	transportOnly := UnitType{Class: ClassAir, AirSupport: &AirSupportProfile{Roles: []AirRole{RoleTransport}}}
	if IsFighter(transportOnly) {
		t.Error("IsFighter(transport-only air) = true, want false")
	}
	ground := UnitType{Class: ClassInfantry}
	if IsFighter(ground) {
		t.Error("IsFighter(ground) = true, want false")
	}
}

func TestIsExplicitAA(t *testing.T) {
	flak := UnitType{Class: ClassArtillery, Traits: []string{"aa"}}
	if !IsExplicitAA(flak) {
		t.Error("IsExplicitAA(flak) = false, want true")
	}
	plain := UnitType{Class: ClassArtillery}
	if IsExplicitAA(plain) {
		t.Error("IsExplicitAA(plain) = true, want false")
	}
}
