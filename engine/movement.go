package engine

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/hexgrid"
)

// GetMovementBudget returns the remaining movement budget for the unit
// at h this turn: base*(commander scalar), ceil'd, floored at 1, plus
// the infantry rush bonus, halved (floored) after an attack for
// non-artillery, zeroed for artillery after an attack, minus points
// already spent.
func (b *Battle) GetMovementBudget(h hexgrid.Hex) (int, error) {
	f, u, err := b.findUnit(h)
	if err != nil {
		return 0, err
	}
	return b.movementBudget(f, u), nil
}

// baseMovementBudget returns budget B before the post-attack halving:
// max(1, ceil(base_movement*commander_move_scalar)) + rush_bonus. Both
// movementBudget and AttackUnit's pre-attack half-budget gate measure
// against this same base figure.
func (b *Battle) baseMovementBudget(f Faction, u *Unit) int {
	ut, ok := b.unitType(u.TypeKey)
	if !ok {
		return 0
	}
	scalar := b.faction(f).commander.MoveScalar
	total := int(math.Ceil(float64(ut.MovementPoints) * scalar))
	if total < 1 {
		total = 1
	}
	if u.Flags.IsRushing && ut.Class == catalog.ClassInfantry {
		total++
	}
	return total
}

func (b *Battle) movementBudget(f Faction, u *Unit) int {
	ut, ok := b.unitType(u.TypeKey)
	if !ok {
		return 0
	}
	total := b.baseMovementBudget(f, u)
	if u.Flags.AttacksUsed > 0 {
		if ut.Class == catalog.ClassArtillery {
			total = 0
		} else {
			total = total / 2
		}
	}
	remaining := total - u.Flags.MovementPointsUsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// findUnit locates the unit at h across both factions.
func (b *Battle) findUnit(h hexgrid.Hex) (Faction, *Unit, error) {
	for _, f := range []Faction{Player, Bot} {
		if u, ok := b.faction(f).unitAt(h); ok {
			return f, u, nil
		}
	}
	return "", nil, fmt.Errorf("find unit: %w", cerrs.ErrNoUnitAtHex)
}

type reachEntry struct {
	hex  hexgrid.Hex
	cost int
}

type reachHeap []reachEntry

func (h reachHeap) Len() int            { return len(h) }
func (h reachHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h reachHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *reachHeap) Push(x interface{}) { *h = append(*h, x.(reachEntry)) }
func (h *reachHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// GetReachableHexes returns every hex reachable from the unit at origin
// within its remaining movement budget, via Dijkstra over per-hex
// terrain move cost. Ground units may not path through hexes occupied
// by either faction; air units may overfly occupied hexes but the
// destination set still excludes landing on one.
func (b *Battle) GetReachableHexes(origin hexgrid.Hex) (map[string]int, error) {
	f, u, err := b.findUnit(origin)
	if err != nil {
		return nil, err
	}
	ut, ok := b.unitType(u.TypeKey)
	if !ok {
		return nil, fmt.Errorf("get reachable hexes: %w", cerrs.ErrUnknownUnitType)
	}
	budget := b.movementBudget(f, u)
	isAir := ut.MoveType == catalog.MoveAir

	dist := map[string]int{origin.Key(): 0}
	pq := &reachHeap{{hex: origin, cost: 0}}
	heap.Init(pq)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(reachEntry)
		if cur.cost > dist[cur.hex.Key()] {
			continue
		}
		for _, n := range cur.hex.Neighbors() {
			if !b.catalogs.Terrain.InBounds(n) {
				continue
			}
			if _, occupied := b.anyUnitAt(n); occupied && !isAir {
				continue
			}
			var stepCost int
			if isAir {
				stepCost = 1
			} else {
				stepCost = b.catalogs.Terrain.MoveCost(ut.MoveType, n)
			}
			if stepCost >= catalog.ImpassableCost {
				continue
			}
			nc := cur.cost + stepCost
			if nc > budget {
				continue
			}
			if prev, seen := dist[n.Key()]; !seen || nc < prev {
				dist[n.Key()] = nc
				heap.Push(pq, reachEntry{hex: n, cost: nc})
			}
		}
	}
	delete(dist, origin.Key())
	// Air may overfly occupied hexes en route, but landing on one is
	// still rejected: strip occupied destinations from the result set
	// regardless of move type.
	for k := range dist {
		h, _ := hexgrid.ParseKey(k)
		if _, occ := b.anyUnitAt(h); occ {
			delete(dist, k)
		}
	}
	return dist, nil
}

// MoveUnit moves the unit at from to to, charging the path cost against
// its remaining movement budget.
func (b *Battle) MoveUnit(from, to hexgrid.Hex) MoveResolution {
	f, u, err := b.findUnit(from)
	if err != nil {
		return MoveResolution{OK: false, Err: err, From: from, To: to}
	}
	if b.phase != PhasePlayerTurn && b.phase != PhaseBotTurn {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrPhaseInvalid), From: from, To: to}
	}
	if f != b.activeFaction {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrNotYourTurn), From: from, To: to}
	}
	ut, _ := b.unitType(u.TypeKey)
	if u.Flags.AttacksUsed > 0 && ut.Class == catalog.ClassArtillery {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrPostAttackRestriction), From: from, To: to}
	}
	if !b.catalogs.Terrain.InBounds(to) {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrOutOfBounds), From: from, To: to}
	}
	if _, occupied := b.anyUnitAt(to); occupied {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrOccupied), From: from, To: to}
	}
	reachable, err := b.GetReachableHexes(from)
	if err != nil {
		return MoveResolution{OK: false, Err: err, From: from, To: to}
	}
	cost, ok := reachable[to.Key()]
	if !ok {
		return MoveResolution{OK: false, Err: fmt.Errorf("move unit: %w", cerrs.ErrNotReachable), From: from, To: to}
	}

	fs := b.faction(f)
	delete(fs.placements, from.Key())
	u.Hex = to
	u.Flags.MovementPointsUsed += cost
	fs.placements[to.Key()] = u
	b.invalidate()

	return MoveResolution{
		OK:         true,
		From:       from,
		To:         to,
		CostSpent:  cost,
		BudgetLeft: b.movementBudget(f, u),
	}
}

// ToggleRushMode flips is_rushing for the unit at h and returns the new
// value. Rushing only benefits infantry (see movementBudget) but any
// unit may carry the flag.
func (b *Battle) ToggleRushMode(h hexgrid.Hex) (bool, error) {
	f, u, err := b.findUnit(h)
	if err != nil {
		return false, err
	}
	if f != b.activeFaction {
		return false, fmt.Errorf("toggle rush mode: %w", cerrs.ErrNotYourTurn)
	}
	u.Flags.IsRushing = !u.Flags.IsRushing
	b.invalidate()
	return u.Flags.IsRushing, nil
}
