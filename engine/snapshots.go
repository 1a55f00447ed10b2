package engine

import (
	"github.com/ironveil/tactics-core/hexgrid"
	"github.com/ironveil/tactics-core/supply"
)

// RosterUnit is one read-only roster row.
type RosterUnit struct {
	UnitID     string
	Faction    Faction
	TypeKey    string
	HexKey     string
	Strength   int
	Experience int
	Ammo       int
	Fuel       int
	Entrench   int
}

// SupportEntry is one squadron's air-support bookkeeping row.
type SupportEntry struct {
	UnitID     string
	Faction    Faction
	AirPool    int
	GroundPool int
	NeedsRearm bool
	NeedsRefit bool
	RefitTurnsLeft int
}

// SupplySnapshot is a read-only projection of one faction's ledger.
type SupplySnapshot struct {
	Faction   Faction
	Inventory map[supply.Resource]supply.Inventory
	Pending   []supply.Shipment
}

// LogisticsEntry records whether one placed unit is currently connected
// to its faction's supply network.
type LogisticsEntry struct {
	UnitID    string
	HexKey    string
	Connected bool
}

// snapshotCache holds lazily-rebuilt, defensively-copied projections,
// invalidated as a single group by Battle.invalidate per spec.md's
// design note (rather than scattered per-field cache-busting).
type snapshotCache struct {
	rosterValid bool
	roster      []RosterUnit

	supportValid bool
	support      []SupportEntry

	combatValid bool
	combat      []CombatReportEntry
}

// GetRosterSnapshot returns a defensive copy of every placed unit
// across both factions.
func (b *Battle) GetRosterSnapshot() []RosterUnit {
	if !b.snap.rosterValid {
		var out []RosterUnit
		for _, f := range []Faction{Player, Bot} {
			for _, u := range b.faction(f).placements {
				out = append(out, RosterUnit{
					UnitID: u.UnitID, Faction: f, TypeKey: u.TypeKey, HexKey: u.Hex.Key(),
					Strength: u.Strength, Experience: u.Experience, Ammo: u.Ammo,
					Fuel: u.Fuel, Entrench: u.Entrench,
				})
			}
		}
		b.snap.roster = out
		b.snap.rosterValid = true
	}
	return append([]RosterUnit(nil), b.snap.roster...)
}

// GetSupportSnapshot returns a defensive copy of every squadron's
// air-support bookkeeping (ammo pool, refit status) across both
// factions.
func (b *Battle) GetSupportSnapshot() []SupportEntry {
	if !b.snap.supportValid {
		var out []SupportEntry
		for _, f := range []Faction{Player, Bot} {
			fs := b.faction(f)
			for id, pool := range fs.ammoPools {
				entry := SupportEntry{
					UnitID: id, Faction: f, AirPool: pool.Air, GroundPool: pool.Ground,
					NeedsRearm: pool.NeedsRearm,
				}
				for _, t := range fs.refits {
					if t.UnitKey == id {
						entry.NeedsRefit = true
						entry.RefitTurnsLeft = t.RemainingTurns
					}
				}
				out = append(out, entry)
			}
		}
		b.snap.support = out
		b.snap.supportValid = true
	}
	return append([]SupportEntry(nil), b.snap.support...)
}

// GetSupplySnapshot returns a defensive copy of faction f's current
// inventory and pending shipment queue.
func (b *Battle) GetSupplySnapshot(f Faction) SupplySnapshot {
	fs := b.faction(f)
	inv := make(map[supply.Resource]supply.Inventory, len(fs.supply.Inventory))
	for r, v := range fs.supply.Inventory {
		inv[r] = *v
	}
	return SupplySnapshot{
		Faction:   f,
		Inventory: inv,
		Pending:   append([]supply.Shipment(nil), fs.supply.Pending...),
	}
}

// GetSupplyHistory returns a defensive copy of faction f's bounded
// ledger log.
func (b *Battle) GetSupplyHistory(f Faction) []supply.LedgerEntry {
	return append([]supply.LedgerEntry(nil), b.faction(f).supply.Ledger...)
}

// GetLogisticsSnapshot reports supply-network connectivity for every
// placed unit of faction f.
func (b *Battle) GetLogisticsSnapshot(f Faction) []LogisticsEntry {
	fs := b.faction(f)
	connected := b.connectivityFor(f)
	var out []LogisticsEntry
	for _, u := range fs.placements {
		out = append(out, LogisticsEntry{UnitID: u.UnitID, HexKey: u.Hex.Key(), Connected: connected[u.Hex.Key()]})
	}
	return out
}

// GetCombatReports returns a defensive copy of the bounded combat
// report buffer.
func (b *Battle) GetCombatReports() []CombatReportEntry {
	if !b.snap.combatValid {
		b.snap.combat = append([]CombatReportEntry(nil), b.combatReports...)
		b.snap.combatValid = true
	}
	return append([]CombatReportEntry(nil), b.snap.combat...)
}

func (b *Battle) connectivityFor(f Faction) map[string]bool {
	fs := b.faction(f)
	var sources []hexgrid.Hex
	if fs.hasHQ {
		sources = append(sources, fs.hqHex)
	}
	if fs.hasBaseCamp && (!fs.hasHQ || fs.baseCampHex != fs.hqHex) {
		sources = append(sources, fs.baseCampHex)
	}
	return supply.ConnectedHexes(b.catalogs.Terrain, sources)
}
