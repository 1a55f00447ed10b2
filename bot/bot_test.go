package bot

import (
	"testing"

	"github.com/ironveil/tactics-core/hexgrid"
)

func TestHeuristicMovesGroundUnitTowardNearestEnemy(t *testing.T) {
	in := Input{
		Own:   []UnitView{{UnitID: "g1", Hex: hexgrid.Hex{Q: 0, R: 0}}},
		Enemy: []UnitView{{UnitID: "e1", Hex: hexgrid.Hex{Q: 3, R: 0}}},
	}
	actions := Heuristic{}.Plan(in)
	if len(actions) != 1 {
		t.Fatalf("actions len = %d, want 1", len(actions))
	}
	a := actions[0]
	if a.Kind != ActionMove || a.UnitID != "g1" {
		t.Fatalf("action = %+v, want a move for g1", a)
	}
	if hexgrid.Distance(a.ToHex, in.Enemy[0].Hex) >= hexgrid.Distance(in.Own[0].Hex, in.Enemy[0].Hex) {
		t.Error("step did not reduce distance to the enemy")
	}
}

func TestHeuristicAttacksWhenAlreadyAdjacent(t *testing.T) {
	in := Input{
		Own:   []UnitView{{UnitID: "g1", Hex: hexgrid.Hex{Q: 0, R: 0}}},
		Enemy: []UnitView{{UnitID: "e1", Hex: hexgrid.Hex{Q: 1, R: 0}}},
	}
	actions := Heuristic{}.Plan(in)
	if len(actions) != 1 || actions[0].Kind != ActionAttack || actions[0].TargetUnit != "e1" {
		t.Fatalf("actions = %+v, want a single attack on e1", actions)
	}
}

func TestHeuristicSchedulesStrikeThenEscort(t *testing.T) {
	in := Input{
		Own: []UnitView{
			{UnitID: "bomber1", Hex: hexgrid.Hex{Q: 0, R: 0}, IsAir: true, IsBomber: true},
			{UnitID: "fighter1", Hex: hexgrid.Hex{Q: 0, R: 1}, IsAir: true, IsFighter: true},
		},
		Enemy: []UnitView{{UnitID: "tank1", Hex: hexgrid.Hex{Q: 5, R: 0}}},
	}
	actions := Heuristic{}.Plan(in)
	if len(actions) != 2 {
		t.Fatalf("actions len = %d, want 2", len(actions))
	}
	var sawStrike, sawEscort bool
	for _, a := range actions {
		switch a.Kind {
		case ActionStrike:
			sawStrike = true
			if a.TargetUnit != "tank1" {
				t.Errorf("strike target = %q, want tank1", a.TargetUnit)
			}
		case ActionEscort:
			sawEscort = true
			if a.EscortOf != "bomber1" {
				t.Errorf("escort target = %q, want bomber1", a.EscortOf)
			}
		}
	}
	if !sawStrike || !sawEscort {
		t.Errorf("actions = %+v, want one strike and one escort", actions)
	}
}

func TestHeuristicFighterFallsBackToCAPWithoutABomber(t *testing.T) {
	in := Input{
		Own:   []UnitView{{UnitID: "fighter1", Hex: hexgrid.Hex{Q: 2, R: 2}, IsAir: true, IsFighter: true}},
		Enemy: nil,
	}
	actions := Heuristic{}.Plan(in)
	if len(actions) != 1 || actions[0].Kind != ActionCAP {
		t.Fatalf("actions = %+v, want a single CAP action", actions)
	}
}

func TestHeuristicSkipsRefitNeedingAircraft(t *testing.T) {
	in := Input{
		Own:   []UnitView{{UnitID: "bomber1", Hex: hexgrid.Hex{Q: 0, R: 0}, IsAir: true, IsBomber: true, NeedsRefit: true}},
		Enemy: []UnitView{{UnitID: "tank1", Hex: hexgrid.Hex{Q: 5, R: 0}}},
	}
	actions := Heuristic{}.Plan(in)
	if len(actions) != 0 {
		t.Errorf("actions = %+v, want none (bomber needs refit)", actions)
	}
}

func TestStepTowardPicksCloserNeighbor(t *testing.T) {
	from := hexgrid.Hex{Q: 0, R: 0}
	to := hexgrid.Hex{Q: 5, R: 0}
	step := stepToward(from, to)
	if hexgrid.Distance(step, to) != hexgrid.Distance(from, to)-1 {
		t.Errorf("stepToward did not move one hex closer: step=%v", step)
	}
}
