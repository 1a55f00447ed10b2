// Package supply implements the per-faction supply ledger: inventory,
// pending shipments, production credit, upkeep draws, and out-of-supply
// attrition. The ETA-sorted shipment queue is grounded on
// galaxyCore/maps/queue.go's PlayerAction{Finised time.Time}
// ETA-gated queue, translated from wall-clock time to integer turn
// numbers since the engine's clock is the turn counter. The
// Current/Baseline/Bonus inventory split generalizes
// players.PlayerGameState's Energy/EnergyProduction pairing to four
// resources.
package supply

import "math"

// Resource enumerates the four supply resources.
type Resource string

const (
	ResourceAmmo    Resource = "ammo"
	ResourceFuel    Resource = "fuel"
	ResourceRations Resource = "rations"
	ResourceParts   Resource = "parts"
)

// AllResources is the fixed resource set, in a stable iteration order.
var AllResources = []Resource{ResourceAmmo, ResourceFuel, ResourceRations, ResourceParts}

// Inventory holds one resource's current, baseline, and bonus amounts.
type Inventory struct {
	Current  float64
	Baseline float64
	Bonus    float64
}

// Shipment is a pending delivery, ordered by ETA.
type Shipment struct {
	Resource Resource
	Amount   float64
	ETATurn  int
}

// LedgerEntry is one rolling log entry.
type LedgerEntry struct {
	Turn     int
	Resource Resource
	Delta    float64
	Reason   string
}

// State is one faction's supply state.
type State struct {
	Inventory       map[Resource]*Inventory
	Pending         []Shipment
	ProductionRates map[Resource]float64
	Ledger          []LedgerEntry
	LastUpdatedTurn int

	ledgerLimit int
}

// NewState returns an empty supply state with zeroed inventories.
func NewState(ledgerLimit int) *State {
	inv := make(map[Resource]*Inventory, len(AllResources))
	for _, r := range AllResources {
		inv[r] = &Inventory{}
	}
	return &State{
		Inventory:       inv,
		ProductionRates: make(map[Resource]float64, len(AllResources)),
		ledgerLimit:     ledgerLimit,
	}
}

// log appends a ledger entry, trimming the oldest on overflow (FIFO).
func (s *State) log(turn int, resource Resource, delta float64, reason string) {
	s.Ledger = append(s.Ledger, LedgerEntry{Turn: turn, Resource: resource, Delta: delta, Reason: reason})
	if s.ledgerLimit > 0 && len(s.Ledger) > s.ledgerLimit {
		s.Ledger = s.Ledger[len(s.Ledger)-s.ledgerLimit:]
	}
}

// ScheduleShipment enqueues a pending shipment, keeping Pending sorted
// by ETA.
func (s *State) ScheduleShipment(sh Shipment) {
	i := 0
	for i < len(s.Pending) && s.Pending[i].ETATurn <= sh.ETATurn {
		i++
	}
	s.Pending = append(s.Pending, Shipment{})
	copy(s.Pending[i+1:], s.Pending[i:])
	s.Pending[i] = sh
}

// DeliverShipments delivers every pending shipment whose ETA has
// arrived, crediting inventory and logging each delivery.
func (s *State) DeliverShipments(currentTurn int) {
	kept := s.Pending[:0]
	for _, sh := range s.Pending {
		if sh.ETATurn <= currentTurn {
			inv := s.Inventory[sh.Resource]
			inv.Current += sh.Amount
			s.log(currentTurn, sh.Resource, sh.Amount, "shipment delivered")
		} else {
			kept = append(kept, sh)
		}
	}
	s.Pending = kept
}

// CreditProduction credits rate*(currentTurn-LastUpdatedTurn) for every
// resource with a nonzero production rate, then advances
// LastUpdatedTurn.
func (s *State) CreditProduction(currentTurn int) {
	elapsed := currentTurn - s.LastUpdatedTurn
	if elapsed > 0 {
		for _, r := range AllResources {
			rate := s.ProductionRates[r]
			if rate == 0 {
				continue
			}
			amount := rate * float64(elapsed)
			s.Inventory[r].Current += amount
			s.log(currentTurn, r, amount, "production credited")
		}
	}
	s.LastUpdatedTurn = currentTurn
}

// DrawUpkeep draws amount of resource from the depot first; any unmet
// portion is returned so the caller can drain it from onboard reserves.
// Whatever is taken from the depot is logged, whether or not it covers
// the whole amount; nothing is logged when the depot is empty.
func (s *State) DrawUpkeep(currentTurn int, resource Resource, amount float64, reason string) (unmet float64) {
	if amount <= 0 {
		return 0
	}
	inv := s.Inventory[resource]
	if inv.Current >= amount {
		inv.Current -= amount
		s.log(currentTurn, resource, -amount, reason)
		return 0
	}
	unmet = amount - inv.Current
	if inv.Current > 0 {
		s.log(currentTurn, resource, -inv.Current, reason)
	}
	inv.Current = 0
	return unmet
}

// Round2 rounds a scaled attrition amount to two decimals, as spec.md
// requires for commander-scalar-scaled attrition amounts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
