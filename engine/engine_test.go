package engine

import (
	"errors"
	"testing"

	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/engineconfig"
	"github.com/ironveil/tactics-core/hexgrid"
)

// openField is a flat, unbounded-within-radius terrain oracle: every
// hex costs 1 to enter, nothing blocks LOS, no defense bonus.
type openField struct{ radius int }

func (o openField) InBounds(h hexgrid.Hex) bool {
	return hexgrid.Distance(hexgrid.Hex{}, h) <= o.radius
}
func (o openField) MoveCost(_ catalog.MoveType, _ hexgrid.Hex) int { return 1 }
func (o openField) BlocksLOS(_ hexgrid.Hex) bool                   { return false }
func (o openField) DefenseBonus(_ hexgrid.Hex) float64             { return 0 }
func (o openField) Passable(_ hexgrid.Hex) bool                    { return true }
func (o openField) IsRoad(_ hexgrid.Hex) bool                      { return false }

func testCatalogs() Catalogs {
	units := catalog.MapUnitCatalog{
		"infantry": {
			Key: "infantry", Class: catalog.ClassInfantry, MoveType: catalog.MoveLeg,
			MovementPoints: 3, Vision: 3, RangeMin: 0, RangeMax: 1,
			BaseAmmo: 5, BaseFuel: 10, UpkeepAmmo: 1, UpkeepFuel: 1,
		},
		"artillery": {
			Key: "artillery", Class: catalog.ClassArtillery, MoveType: catalog.MoveWheel,
			MovementPoints: 2, Vision: 2, RangeMin: 1, RangeMax: 3,
			BaseAmmo: 5, BaseFuel: 10,
		},
	}
	return Catalogs{Units: units, Terrain: openField{radius: 20}}
}

func newTestBattle() *Battle {
	return New(engineconfig.Default(), testCatalogs())
}

func deployBoth(t *testing.T, b *Battle, playerHex, botHex hexgrid.Hex, typeKey string) {
	t.Helper()
	if err := b.SetBaseCamp(hexgrid.Hex{}); err != nil {
		t.Fatalf("SetBaseCamp: %v", err)
	}
	if err := b.SetFactionHQ(Bot, botHex); err != nil {
		t.Fatalf("SetFactionHQ(Bot): %v", err)
	}
	pid, err := b.AddToReserves(Player, typeKey, "p1", "")
	if err != nil {
		t.Fatalf("AddToReserves(Player): %v", err)
	}
	if err := b.DeployUnitByKey(Player, playerHex, pid); err != nil {
		t.Fatalf("DeployUnitByKey(Player): %v", err)
	}
	bid, err := b.AddToReserves(Bot, typeKey, "b1", "")
	if err != nil {
		t.Fatalf("AddToReserves(Bot): %v", err)
	}
	if err := b.DeployUnitByKey(Bot, botHex, bid); err != nil {
		t.Fatalf("DeployUnitByKey(Bot): %v", err)
	}
	if _, err := b.FinalizeDeployment(); err != nil {
		t.Fatalf("FinalizeDeployment: %v", err)
	}
	if err := b.StartPlayerTurnPhase(); err != nil {
		t.Fatalf("StartPlayerTurnPhase: %v", err)
	}
}

func TestDeploymentRequiresBaseCampBeforeFinalize(t *testing.T) {
	b := newTestBattle()
	if _, err := b.FinalizeDeployment(); !errors.Is(err, cerrs.ErrNoBaseCampSet) {
		t.Errorf("FinalizeDeployment without base camp = %v, want ErrNoBaseCampSet", err)
	}
}

func TestDeployUnitRejectsOccupiedHex(t *testing.T) {
	b := newTestBattle()
	if err := b.SetBaseCamp(hexgrid.Hex{}); err != nil {
		t.Fatalf("SetBaseCamp: %v", err)
	}
	id1, _ := b.AddToReserves(Player, "infantry", "a1", "")
	id2, _ := b.AddToReserves(Player, "infantry", "a2", "")
	target := hexgrid.Hex{Q: 2, R: 0}
	if err := b.DeployUnitByKey(Player, target, id1); err != nil {
		t.Fatalf("first deploy: %v", err)
	}
	if err := b.DeployUnitByKey(Player, target, id2); !errors.Is(err, cerrs.ErrOccupied) {
		t.Errorf("second deploy onto occupied hex = %v, want ErrOccupied", err)
	}
}

func TestRecallUnitReturnsItToReserves(t *testing.T) {
	b := newTestBattle()
	b.SetBaseCamp(hexgrid.Hex{})
	id, _ := b.AddToReserves(Player, "infantry", "a1", "sprite1")
	h := hexgrid.Hex{Q: 1, R: 0}
	b.DeployUnitByKey(Player, h, id)
	if err := b.RecallUnit(Player, h); err != nil {
		t.Fatalf("RecallUnit: %v", err)
	}
	if len(b.faction(Player).reserves) != 1 {
		t.Errorf("reserves len = %d, want 1", len(b.faction(Player).reserves))
	}
	if got := b.faction(Player).reserves[0]; got.AllocationKey != "a1" || got.Sprite != "sprite1" {
		t.Errorf("recalled entry = %+v, want AllocationKey=a1 Sprite=sprite1", got)
	}
	if _, ok := b.faction(Player).unitAt(h); ok {
		t.Error("unit still placed after recall")
	}
}

func TestMoveUnitChargesBudgetAndRejectsOutOfReach(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 10, R: 10}, "infantry")

	origin := hexgrid.Hex{Q: 0, R: 0}
	near := hexgrid.Hex{Q: 1, R: 0}
	res := b.MoveUnit(origin, near)
	if !res.OK {
		t.Fatalf("MoveUnit to neighbor failed: %v", res.Err)
	}
	if res.CostSpent != 1 {
		t.Errorf("CostSpent = %d, want 1", res.CostSpent)
	}

	far := hexgrid.Hex{Q: 10, R: -10}
	res2 := b.MoveUnit(near, far)
	if res2.OK || !errors.Is(res2.Err, cerrs.ErrNotReachable) {
		t.Errorf("MoveUnit out of budget = %+v, want ErrNotReachable", res2)
	}
}

func TestMoveUnitRejectsOffTurnFaction(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 10, R: 10}, "infantry")
	res := b.MoveUnit(hexgrid.Hex{Q: 10, R: 10}, hexgrid.Hex{Q: 9, R: 10})
	if res.OK || !errors.Is(res.Err, cerrs.ErrNotYourTurn) {
		t.Errorf("MoveUnit for inactive faction = %+v, want ErrNotYourTurn", res)
	}
}

func TestAttackUnitDealsDamageAndRecordsReport(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0}, "infantry")

	res := b.AttackUnit(hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0})
	if !res.OK {
		t.Fatalf("AttackUnit failed: %v", res.Err)
	}
	if res.DamageDealt <= 0 {
		t.Errorf("DamageDealt = %d, want > 0", res.DamageDealt)
	}
	reports := b.GetCombatReports()
	if len(reports) != 1 {
		t.Fatalf("combat reports len = %d, want 1", len(reports))
	}
	if reports[0].DamageDealt != res.DamageDealt {
		t.Errorf("report damage = %d, want %d", reports[0].DamageDealt, res.DamageDealt)
	}
}

func TestAttackUnitRejectsOutOfRange(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 5, R: 0}, "infantry")
	res := b.AttackUnit(hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 5, R: 0})
	if res.OK || !errors.Is(res.Err, cerrs.ErrOutOfRangeAttack) {
		t.Errorf("AttackUnit out of range = %+v, want ErrOutOfRangeAttack", res)
	}
}

func TestAttackUnitGroundCannotTargetAir(t *testing.T) {
	b := newTestBattle()
	units := catalog.MapUnitCatalog{
		"infantry": {Key: "infantry", Class: catalog.ClassInfantry, MoveType: catalog.MoveLeg, MovementPoints: 3, RangeMin: 0, RangeMax: 1, BaseAmmo: 5},
		"fighter": {
			Key: "fighter", Class: catalog.ClassAir, MoveType: catalog.MoveAir, MovementPoints: 6, RangeMin: 0, RangeMax: 1, BaseAmmo: 5,
			AirSupport: &catalog.AirSupportProfile{Roles: []catalog.AirRole{catalog.RoleCAP}},
		},
	}
	b.catalogs = Catalogs{Units: units, Terrain: openField{radius: 20}}
	b.SetBaseCamp(hexgrid.Hex{})
	pid, _ := b.AddToReserves(Player, "infantry", "p1", "")
	b.DeployUnitByKey(Player, hexgrid.Hex{Q: 0, R: 0}, pid)
	bid, _ := b.AddToReserves(Bot, "fighter", "b1", "")
	b.DeployUnitByKey(Bot, hexgrid.Hex{Q: 1, R: 0}, bid)
	b.FinalizeDeployment()
	b.StartPlayerTurnPhase()

	res := b.AttackUnit(hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0})
	if res.OK || !errors.Is(res.Err, cerrs.ErrGroundCannotTargetAir) {
		t.Errorf("ground attacking air = %+v, want ErrGroundCannotTargetAir", res)
	}
}

func TestEndTurnClearsFlagsAndRunsBotTurn(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 0, R: 3}, "infantry")

	u, _ := b.faction(Player).unitAt(hexgrid.Hex{Q: 0, R: 0})
	u.Flags.MovementPointsUsed = 2

	report, err := b.EndTurn()
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if report.Faction != Player {
		t.Errorf("report faction = %v, want Player", report.Faction)
	}
	if b.phase != PhasePlayerTurn {
		t.Errorf("phase after EndTurn = %v, want player_turn", b.phase)
	}
	if b.turnNumber != 2 {
		t.Errorf("turnNumber = %d, want 2", b.turnNumber)
	}
	if u.Flags.MovementPointsUsed != 0 {
		t.Errorf("player MovementPointsUsed after EndTurn = %d, want 0", u.Flags.MovementPointsUsed)
	}
	// The bot unit should have advanced toward the player unit under the
	// default heuristic planner.
	if _, stillAtStart := b.faction(Bot).unitAt(hexgrid.Hex{Q: 0, R: 3}); stillAtStart {
		t.Error("bot unit did not move during its turn")
	}
}

func TestEndTurnRejectsWrongPhase(t *testing.T) {
	b := newTestBattle()
	if _, err := b.EndTurn(); !errors.Is(err, cerrs.ErrPhaseInvalid) {
		t.Errorf("EndTurn during deployment = %v, want ErrPhaseInvalid", err)
	}
}

func TestSerializeHydrateRoundTrip(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0}, "infantry")
	b.AttackUnit(hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0})

	state := b.Serialize()
	restored, err := FromSerialized(engineconfig.Default(), testCatalogs(), state)
	if err != nil {
		t.Fatalf("FromSerialized: %v", err)
	}
	if restored.phase != b.phase {
		t.Errorf("restored phase = %v, want %v", restored.phase, b.phase)
	}
	if len(restored.GetCombatReports()) != len(b.GetCombatReports()) {
		t.Errorf("restored combat reports = %d, want %d", len(restored.GetCombatReports()), len(b.GetCombatReports()))
	}
	origRoster := b.GetRosterSnapshot()
	restoredRoster := restored.GetRosterSnapshot()
	if len(origRoster) != len(restoredRoster) {
		t.Fatalf("restored roster len = %d, want %d", len(restoredRoster), len(origRoster))
	}
}

func TestToBSONFromBSONBytesRoundTrip(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 1, R: 0}, "infantry")

	state := b.Serialize()
	data, err := state.ToBSON()
	if err != nil {
		t.Fatalf("ToBSON: %v", err)
	}
	restored, err := FromBSONBytes(data)
	if err != nil {
		t.Fatalf("FromBSONBytes: %v", err)
	}
	if restored.Phase != state.Phase || restored.TurnNumber != state.TurnNumber {
		t.Errorf("restored = %+v, want phase=%v turnNumber=%v", restored, state.Phase, state.TurnNumber)
	}
	if len(restored.Factions[Player].Placements) != len(state.Factions[Player].Placements) {
		t.Errorf("restored placements = %d, want %d",
			len(restored.Factions[Player].Placements), len(state.Factions[Player].Placements))
	}
}

func TestHydrateUpgradesLegacyHexKeyUnitIDs(t *testing.T) {
	b := newTestBattle()
	state := SerializedBattleState{
		Version: 1,
		Phase:   PhasePlayerTurn,
		Factions: map[Faction]SerializedFaction{
			Player: {
				Placements: []SerializedUnit{
					{UnitID: "3,-1", TypeKey: "infantry", HexKey: "3,-1", Strength: 100},
				},
			},
			Bot: {},
		},
	}
	if err := b.HydrateFromSerialized(state); err != nil {
		t.Fatalf("HydrateFromSerialized: %v", err)
	}
	u, ok := b.faction(Player).unitAt(hexgrid.Hex{Q: 3, R: -1})
	if !ok {
		t.Fatal("hydrated unit missing")
	}
	if u.UnitID == "3,-1" {
		t.Error("legacy hex-key id was not upgraded")
	}
	if len(u.UnitID) < 3 || u.UnitID[:2] != "u_" {
		t.Errorf("upgraded id = %q, want u_-prefixed", u.UnitID)
	}
}

func TestGetRosterSnapshotIsDefensiveCopy(t *testing.T) {
	b := newTestBattle()
	deployBoth(t, b, hexgrid.Hex{Q: 0, R: 0}, hexgrid.Hex{Q: 5, R: 5}, "infantry")
	snap := b.GetRosterSnapshot()
	snap[0].Strength = -999
	fresh := b.GetRosterSnapshot()
	for _, u := range fresh {
		if u.Strength == -999 {
			t.Error("mutating a returned snapshot affected the engine's live state")
		}
	}
}
