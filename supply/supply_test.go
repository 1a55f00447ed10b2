package supply

import "testing"

func TestDeliverShipmentsOnlyDeliversDueEntries(t *testing.T) {
	s := NewState(50)
	s.ScheduleShipment(Shipment{Resource: ResourceAmmo, Amount: 10, ETATurn: 3})
	s.ScheduleShipment(Shipment{Resource: ResourceFuel, Amount: 5, ETATurn: 1})

	s.DeliverShipments(2)

	if got := s.Inventory[ResourceFuel].Current; got != 5 {
		t.Errorf("fuel delivered = %v, want 5", got)
	}
	if got := s.Inventory[ResourceAmmo].Current; got != 0 {
		t.Errorf("ammo delivered early = %v, want 0", got)
	}
	if len(s.Pending) != 1 {
		t.Fatalf("pending len = %d, want 1", len(s.Pending))
	}

	s.DeliverShipments(3)
	if got := s.Inventory[ResourceAmmo].Current; got != 10 {
		t.Errorf("ammo delivered = %v, want 10", got)
	}
	if len(s.Pending) != 0 {
		t.Errorf("pending len = %d, want 0", len(s.Pending))
	}
}

func TestCreditProductionAccruesByElapsedTurns(t *testing.T) {
	s := NewState(50)
	s.ProductionRates[ResourceParts] = 4
	s.LastUpdatedTurn = 1

	s.CreditProduction(4)

	if got := s.Inventory[ResourceParts].Current; got != 12 {
		t.Errorf("parts = %v, want 12", got)
	}
	if s.LastUpdatedTurn != 4 {
		t.Errorf("LastUpdatedTurn = %d, want 4", s.LastUpdatedTurn)
	}
}

func TestDrawUpkeepReturnsUnmetPortion(t *testing.T) {
	s := NewState(50)
	s.Inventory[ResourceFuel].Current = 3

	unmet := s.DrawUpkeep(1, ResourceFuel, 5, "upkeep")

	if unmet != 2 {
		t.Errorf("unmet = %v, want 2", unmet)
	}
	if s.Inventory[ResourceFuel].Current != 0 {
		t.Errorf("fuel current = %v, want 0", s.Inventory[ResourceFuel].Current)
	}
}

func TestLedgerTrimsToLimitFIFO(t *testing.T) {
	s := NewState(2)
	s.log(1, ResourceAmmo, 1, "a")
	s.log(2, ResourceAmmo, 1, "b")
	s.log(3, ResourceAmmo, 1, "c")

	if len(s.Ledger) != 2 {
		t.Fatalf("ledger len = %d, want 2", len(s.Ledger))
	}
	if s.Ledger[0].Reason != "b" || s.Ledger[1].Reason != "c" {
		t.Errorf("ledger kept wrong entries: %+v", s.Ledger)
	}
}

func TestScaledAttritionAppliesCommanderScalarAndRounds(t *testing.T) {
	profile := AttritionProfile{Ammo: 1.005, Fuel: 2, Entrench: 0.5, Strength: 3}
	scalar := CommanderScalar(20) // 1 - 20/100 = 0.8

	got := ScaledAttrition(profile, scalar)

	want := AttritionProfile{Ammo: 0.8, Fuel: 1.6, Entrench: 0.4, Strength: 2.4}
	if got != want {
		t.Errorf("ScaledAttrition = %+v, want %+v", got, want)
	}
}
