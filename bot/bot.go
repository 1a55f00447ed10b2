// Package bot implements the pure-input heuristic the engine's
// synchronous bot turn consumes by default: ground units close on the
// nearest enemy and attack once adjacent, air units are scheduled with
// a fixed mission-kind priority. The shape — a planner that takes a
// snapshot of the world and returns a list of intents rather than
// mutating anything itself — is grounded on lab1702-netrek-web's
// bot_navigation.go/bot_combat.go split between "decide" and "act",
// translated from netrek's continuous coordinates to axial hexes.
package bot

import "github.com/ironveil/tactics-core/hexgrid"

// UnitView is the read-only projection of one unit a Planner reasons
// over.
type UnitView struct {
	UnitID     string
	TypeKey    string
	Hex        hexgrid.Hex
	Strength   int
	IsAir      bool
	IsBomber   bool
	IsFighter  bool
	NeedsRefit bool
}

// Input is the pure snapshot handed to a Planner: both rosters and a
// difficulty scalar. A Planner never mutates state
// directly; it only returns Actions for the engine to apply.
type Input struct {
	Own       []UnitView
	Enemy     []UnitView
	Difficulty float64
}

// ActionKind enumerates the intents a Planner may emit.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionAttack ActionKind = "attack"
	ActionStrike ActionKind = "strike"
	ActionEscort ActionKind = "escort"
	ActionCAP    ActionKind = "cap"
)

// Action is one intent: move/attack a ground unit, or schedule an air
// mission for a squadron.
type Action struct {
	Kind       ActionKind
	UnitID     string
	ToHex      hexgrid.Hex
	TargetHex  hexgrid.Hex
	TargetUnit string
	EscortOf   string
}

// Planner is the seam engine.Battle.SetPlanner accepts in place of the
// built-in heuristic.
type Planner interface {
	Plan(in Input) []Action
}

// Heuristic is the default planner; it does not read Input.Difficulty.
// Every ground
// unit steps toward its nearest living enemy and attacks if already
// adjacent; aircraft are scheduled strike first, then escort for the
// earliest unescorted strike, then CAP.
type Heuristic struct{}

// Plan implements Planner.
func (Heuristic) Plan(in Input) []Action {
	var actions []Action

	var groundUnits, airUnits []UnitView
	for _, u := range in.Own {
		if u.IsAir {
			airUnits = append(airUnits, u)
		} else {
			groundUnits = append(groundUnits, u)
		}
	}

	for _, u := range groundUnits {
		target, ok := nearestEnemy(u, in.Enemy)
		if !ok {
			continue
		}
		if hexgrid.Distance(u.Hex, target.Hex) <= 1 {
			actions = append(actions, Action{Kind: ActionAttack, UnitID: u.UnitID, TargetUnit: target.UnitID, TargetHex: target.Hex})
			continue
		}
		step := stepToward(u.Hex, target.Hex)
		actions = append(actions, Action{Kind: ActionMove, UnitID: u.UnitID, ToHex: step})
	}

	var strikeAssigned string
	for _, u := range airUnits {
		if u.NeedsRefit || !u.IsBomber {
			continue
		}
		nonAir := firstNonAir(in.Enemy)
		if nonAir == nil {
			continue
		}
		actions = append(actions, Action{Kind: ActionStrike, UnitID: u.UnitID, TargetUnit: nonAir.UnitID, TargetHex: nonAir.Hex})
		strikeAssigned = u.UnitID
		break
	}
	escorted := false
	for _, u := range airUnits {
		if u.NeedsRefit || !u.IsFighter || u.UnitID == strikeAssigned {
			continue
		}
		if strikeAssigned != "" && !escorted {
			actions = append(actions, Action{Kind: ActionEscort, UnitID: u.UnitID, EscortOf: strikeAssigned})
			escorted = true
		} else {
			actions = append(actions, Action{Kind: ActionCAP, UnitID: u.UnitID, ToHex: u.Hex})
		}
	}

	return actions
}

func nearestEnemy(from UnitView, enemies []UnitView) (UnitView, bool) {
	best := -1
	var bestU UnitView
	for _, e := range enemies {
		d := hexgrid.Distance(from.Hex, e.Hex)
		if best == -1 || d < best {
			best = d
			bestU = e
		}
	}
	return bestU, best != -1
}

func firstNonAir(units []UnitView) *UnitView {
	for i := range units {
		if !units[i].IsAir {
			return &units[i]
		}
	}
	return nil
}

// stepToward returns the neighbor of from that most reduces the
// distance to to.
func stepToward(from, to hexgrid.Hex) hexgrid.Hex {
	best := from
	bestDist := hexgrid.Distance(from, to)
	for _, n := range from.Neighbors() {
		if d := hexgrid.Distance(n, to); d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}
