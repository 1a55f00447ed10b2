package engine

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/engineconfig"
	"github.com/ironveil/tactics-core/hexgrid"
	"github.com/ironveil/tactics-core/supply"
)

// SerializedBattleState is the wire/persistence shape of a Battle. Both
// json and bson tags are carried so the same struct serves an HTTP API
// response and a MongoDB document, the dual-tag convention
// ships/formation_persistence.go uses for FormationWithSlots.
type SerializedBattleState struct {
	Version       int                          `json:"version" bson:"version"`
	Phase         Phase                        `json:"phase" bson:"phase"`
	ActiveFaction Faction                      `json:"activeFaction" bson:"activeFaction"`
	TurnNumber    int                          `json:"turnNumber" bson:"turnNumber"`
	Factions      map[Faction]SerializedFaction `json:"factions" bson:"factions"`
	Missions      []SerializedMission          `json:"missions" bson:"missions"`
	CombatReports []CombatReportEntry          `json:"combatReports" bson:"combatReports"`
	AirReports    []AirMissionReportEntry      `json:"airMissionReports" bson:"airMissionReports"`
	MissionSeq    int                          `json:"missionSeq" bson:"missionSeq"`
	UnitSeq       int                          `json:"unitSeq" bson:"unitSeq"`
}

// currentSerializationVersion is bumped whenever SerializedBattleState's
// shape changes in a way HydrateFromSerialized must branch on.
const currentSerializationVersion = 2

// SerializedUnit is one unit's wire form.
type SerializedUnit struct {
	MongoID       bson.ObjectID `json:"-" bson:"_id,omitempty"`
	UnitID        string    `json:"unitId" bson:"unitId"`
	TypeKey       string    `json:"typeKey" bson:"typeKey"`
	HexKey        string    `json:"hexKey" bson:"hexKey"`
	Strength      int       `json:"strength" bson:"strength"`
	Experience    int       `json:"experience" bson:"experience"`
	Ammo          int       `json:"ammo" bson:"ammo"`
	Fuel          int       `json:"fuel" bson:"fuel"`
	Entrench      int       `json:"entrench" bson:"entrench"`
	Facing        Facing    `json:"facing" bson:"facing"`
	AllocationKey string    `json:"allocationKey,omitempty" bson:"allocationKey,omitempty"`
	Sprite        string    `json:"sprite,omitempty" bson:"sprite,omitempty"`
	Flags         TurnFlags `json:"flags" bson:"flags"`
}

// SerializedReserveEntry is one queued reserve unit's wire form.
type SerializedReserveEntry struct {
	Unit          SerializedUnit `json:"unit" bson:"unit"`
	AllocationKey string         `json:"allocationKey" bson:"allocationKey"`
	Sprite        string         `json:"sprite" bson:"sprite"`
}

// SerializedFaction is one faction's complete wire state.
type SerializedFaction struct {
	Placements      []SerializedUnit         `json:"placements" bson:"placements"`
	Reserves        []SerializedReserveEntry `json:"reserves" bson:"reserves"`
	AirborneReserve []SerializedReserveEntry `json:"airborneReserve" bson:"airborneReserve"`

	Supply supply.State `json:"supply" bson:"supply"`

	AmmoPools map[string]airmission.AmmoPool `json:"ammoPools" bson:"ammoPools"`
	Locks     map[string]string              `json:"locks" bson:"locks"`
	Refits    []airmission.RefitTimer        `json:"refits" bson:"refits"`

	Commander CommanderBonuses `json:"commander" bson:"commander"`

	BaseCampHexKey string `json:"baseCampHexKey,omitempty" bson:"baseCampHexKey,omitempty"`
	HasBaseCamp    bool   `json:"hasBaseCamp" bson:"hasBaseCamp"`
	HQHexKey       string `json:"hqHexKey,omitempty" bson:"hqHexKey,omitempty"`
	HasHQ          bool   `json:"hasHQ" bson:"hasHQ"`
}

// SerializedMission is a scheduled/in-flight air mission's wire form.
type SerializedMission struct {
	ID                  string          `json:"id" bson:"id"`
	TemplateKind        airmission.Kind `json:"templateKind" bson:"templateKind"`
	Faction             string          `json:"faction" bson:"faction"`
	UnitKey             string          `json:"unitKey" bson:"unitKey"`
	OriginHexKey        string          `json:"originHexKey" bson:"originHexKey"`
	UnitType            string          `json:"unitType" bson:"unitType"`
	Status              airmission.Status `json:"status" bson:"status"`
	LaunchTurn          int             `json:"launchTurn" bson:"launchTurn"`
	TurnsRemaining      int             `json:"turnsRemaining" bson:"turnsRemaining"`
	TargetHexKey        string          `json:"targetHexKey,omitempty" bson:"targetHexKey,omitempty"`
	HasTarget           bool            `json:"hasTarget" bson:"hasTarget"`
	TargetUnitKey       string          `json:"targetUnitKey,omitempty" bson:"targetUnitKey,omitempty"`
	HasTargetUnit       bool            `json:"hasTargetUnit" bson:"hasTargetUnit"`
	EscortTargetUnitKey string          `json:"escortTargetUnitKey,omitempty" bson:"escortTargetUnitKey,omitempty"`
	HasEscortTarget     bool            `json:"hasEscortTarget" bson:"hasEscortTarget"`
	Interceptions       int             `json:"interceptions" bson:"interceptions"`
	Outcome             *airmission.Outcome `json:"outcome,omitempty" bson:"outcome,omitempty"`
}

// Serialize snapshots the full battle into its wire form.
func (b *Battle) Serialize() SerializedBattleState {
	out := SerializedBattleState{
		Version:       currentSerializationVersion,
		Phase:         b.phase,
		ActiveFaction: b.activeFaction,
		TurnNumber:    b.turnNumber,
		Factions:      make(map[Faction]SerializedFaction, len(b.factions)),
		CombatReports: append([]CombatReportEntry(nil), b.combatReports...),
		AirReports:    append([]AirMissionReportEntry(nil), b.airMissionReports...),
		MissionSeq:    b.missionSeq,
		UnitSeq:       b.unitSeq,
	}
	for _, m := range b.missions {
		out.Missions = append(out.Missions, serializeMission(m))
	}
	for f, fs := range b.factions {
		out.Factions[f] = serializeFaction(fs)
	}
	return out
}

func serializeUnit(u *Unit) SerializedUnit {
	return SerializedUnit{
		MongoID: bsonObjectIDFor(u.UnitID),
		UnitID: u.UnitID, TypeKey: u.TypeKey, HexKey: u.Hex.Key(), Strength: u.Strength,
		Experience: u.Experience, Ammo: u.Ammo, Fuel: u.Fuel, Entrench: u.Entrench,
		Facing: u.Facing, AllocationKey: u.AllocationKey, Sprite: u.Sprite, Flags: u.Flags,
	}
}

func serializeReserve(r ReserveEntry) SerializedReserveEntry {
	return SerializedReserveEntry{
		Unit:          serializeUnit(&r.Unit),
		AllocationKey: r.AllocationKey,
		Sprite:        r.Sprite,
	}
}

func serializeFaction(fs *factionState) SerializedFaction {
	out := SerializedFaction{
		AmmoPools: make(map[string]airmission.AmmoPool, len(fs.ammoPools)),
		Locks:     make(map[string]string, len(fs.locks)),
		Commander: fs.commander,
		HasBaseCamp: fs.hasBaseCamp,
		HasHQ:       fs.hasHQ,
	}
	for _, u := range fs.placements {
		out.Placements = append(out.Placements, serializeUnit(u))
	}
	for _, r := range fs.reserves {
		out.Reserves = append(out.Reserves, serializeReserve(r))
	}
	for _, r := range fs.airborneReserve {
		out.AirborneReserve = append(out.AirborneReserve, serializeReserve(r))
	}
	out.Supply = *fs.supply
	for id, pool := range fs.ammoPools {
		out.AmmoPools[id] = *pool
	}
	for id, mid := range fs.locks {
		out.Locks[id] = mid
	}
	for _, t := range fs.refits {
		out.Refits = append(out.Refits, *t)
	}
	if fs.hasBaseCamp {
		out.BaseCampHexKey = fs.baseCampHex.Key()
	}
	if fs.hasHQ {
		out.HQHexKey = fs.hqHex.Key()
	}
	return out
}

func serializeMission(m *airmission.Mission) SerializedMission {
	return SerializedMission{
		ID: m.ID, TemplateKind: m.TemplateKind, Faction: m.Faction, UnitKey: m.UnitKey,
		OriginHexKey: m.OriginHexKey, UnitType: m.UnitType, Status: m.Status,
		LaunchTurn: m.LaunchTurn, TurnsRemaining: m.TurnsRemaining,
		TargetHexKey: m.TargetHexKey, HasTarget: m.HasTarget,
		TargetUnitKey: m.TargetUnitKey, HasTargetUnit: m.HasTargetUnit,
		EscortTargetUnitKey: m.EscortTargetUnitKey, HasEscortTarget: m.HasEscortTarget,
		Interceptions: m.Interceptions, Outcome: m.Outcome,
	}
}

// FromSerialized rebuilds a Battle from its wire form, using cfg and
// catalogs as the fresh external collaborators (these are never
// persisted — they are supplied at load time, same as a fresh New).
func FromSerialized(cfg engineconfig.Config, catalogs Catalogs, state SerializedBattleState) (*Battle, error) {
	b := New(cfg, catalogs)
	if err := b.HydrateFromSerialized(state); err != nil {
		return nil, err
	}
	return b, nil
}

// HydrateFromSerialized replaces b's mutable state in place from a
// previously-Serialize'd snapshot. Any unit whose stored id lacks the
// "u_" stable-id prefix and contains a comma is taken to be from a
// legacy save that keyed units by their hex string (e.g. "12,-4") and
// is reassigned a fresh stable id; other ids are kept as stored.
func (b *Battle) HydrateFromSerialized(state SerializedBattleState) error {
	b.phase = state.Phase
	b.activeFaction = state.ActiveFaction
	b.turnNumber = state.TurnNumber
	b.missionSeq = state.MissionSeq
	b.unitSeq = state.UnitSeq

	b.factions = make(map[Faction]*factionState, len(state.Factions))
	for f, sfs := range state.Factions {
		fs := newFactionState(b.cfg.Supply.LedgerLimit)
		for _, su := range sfs.Placements {
			u, err := hydrateUnit(su, b)
			if err != nil {
				return err
			}
			fs.placements[u.Hex.Key()] = u
		}
		for _, sr := range sfs.Reserves {
			r, err := hydrateReserve(sr, b)
			if err != nil {
				return err
			}
			fs.reserves = append(fs.reserves, r)
		}
		for _, sr := range sfs.AirborneReserve {
			r, err := hydrateReserve(sr, b)
			if err != nil {
				return err
			}
			fs.airborneReserve = append(fs.airborneReserve, r)
		}
		supplyCopy := sfs.Supply
		fs.supply = &supplyCopy
		for id, pool := range sfs.AmmoPools {
			p := pool
			fs.ammoPools[id] = &p
		}
		for id, mid := range sfs.Locks {
			fs.locks[id] = mid
		}
		for _, t := range sfs.Refits {
			timer := t
			fs.refits = append(fs.refits, &timer)
		}
		fs.commander = sfs.Commander
		if sfs.HasBaseCamp {
			hex, err := hexgrid.ParseKey(sfs.BaseCampHexKey)
			if err != nil {
				return err
			}
			fs.baseCampHex, fs.hasBaseCamp = hex, true
		}
		if sfs.HasHQ {
			hex, err := hexgrid.ParseKey(sfs.HQHexKey)
			if err != nil {
				return err
			}
			fs.hqHex, fs.hasHQ = hex, true
		}
		b.factions[f] = fs
	}

	b.missions = nil
	for _, sm := range state.Missions {
		m := &airmission.Mission{
			ID: sm.ID, TemplateKind: sm.TemplateKind, Faction: sm.Faction, UnitKey: sm.UnitKey,
			OriginHexKey: sm.OriginHexKey, UnitType: sm.UnitType, Status: sm.Status,
			LaunchTurn: sm.LaunchTurn, TurnsRemaining: sm.TurnsRemaining,
			TargetHexKey: sm.TargetHexKey, HasTarget: sm.HasTarget,
			TargetUnitKey: sm.TargetUnitKey, HasTargetUnit: sm.HasTargetUnit,
			EscortTargetUnitKey: sm.EscortTargetUnitKey, HasEscortTarget: sm.HasEscortTarget,
			Interceptions: sm.Interceptions, Outcome: sm.Outcome,
		}
		b.missions = append(b.missions, m)
	}

	b.combatReports = append([]CombatReportEntry(nil), state.CombatReports...)
	b.airMissionReports = append([]AirMissionReportEntry(nil), state.AirReports...)
	b.invalidate()
	return nil
}

// hydrateUnit converts a wire unit back to an engine Unit, minting a
// fresh stable id in place of any legacy hex-key-shaped id.
func hydrateUnit(su SerializedUnit, b *Battle) (*Unit, error) {
	hex, err := hexgrid.ParseKey(su.HexKey)
	if err != nil {
		return nil, err
	}
	id := su.UnitID
	if isLegacyUnitID(id) {
		id = b.newUnitID()
	}
	return &Unit{
		UnitID: id, TypeKey: su.TypeKey, Hex: hex, Strength: su.Strength,
		Experience: su.Experience, Ammo: su.Ammo, Fuel: su.Fuel, Entrench: su.Entrench,
		Facing: su.Facing, AllocationKey: su.AllocationKey, Sprite: su.Sprite, Flags: su.Flags,
	}, nil
}

func hydrateReserve(sr SerializedReserveEntry, b *Battle) (ReserveEntry, error) {
	hex := hexgrid.Hex{}
	if sr.Unit.HexKey != "" {
		h, err := hexgrid.ParseKey(sr.Unit.HexKey)
		if err != nil {
			return ReserveEntry{}, err
		}
		hex = h
	}
	id := sr.Unit.UnitID
	if isLegacyUnitID(id) {
		id = b.newUnitID()
	}
	return ReserveEntry{
		Unit: Unit{
			UnitID: id, TypeKey: sr.Unit.TypeKey, Hex: hex, Strength: sr.Unit.Strength,
			Experience: sr.Unit.Experience, Ammo: sr.Unit.Ammo, Fuel: sr.Unit.Fuel,
			Entrench: sr.Unit.Entrench, Facing: sr.Unit.Facing,
			AllocationKey: sr.AllocationKey, Sprite: sr.Sprite, Flags: sr.Unit.Flags,
		},
		AllocationKey: sr.AllocationKey,
		Sprite:        sr.Sprite,
	}, nil
}

// isLegacyUnitID reports whether id is shaped like a pre-upgrade hex
// key ("q,r") rather than a stable "u_"-prefixed id.
func isLegacyUnitID(id string) bool {
	return !strings.HasPrefix(id, "u_") && strings.Contains(id, ",")
}

// bsonObjectIDFor derives a stable, deterministic bson.ObjectID from a
// unit id for documents that need one as a Mongo primary key, without
// minting a second identity scheme alongside the engine's own stable
// ids.
func bsonObjectIDFor(unitID string) bson.ObjectID {
	sum := bson.ObjectID{}
	copy(sum[:], []byte(strings.TrimPrefix(unitID, "u_")))
	return sum
}

// ToBSON encodes the battle state as a BSON document, using the same
// bson tags Serialize's json form carries, for callers that persist a
// Battle straight to a Mongo collection rather than through the HTTP
// JSON surface.
func (s SerializedBattleState) ToBSON() ([]byte, error) {
	return bson.Marshal(s)
}

// FromBSONBytes decodes a BSON document produced by ToBSON back into a
// SerializedBattleState, for HydrateFromSerialized to consume.
func FromBSONBytes(data []byte) (SerializedBattleState, error) {
	var s SerializedBattleState
	if err := bson.Unmarshal(data, &s); err != nil {
		return SerializedBattleState{}, err
	}
	return s, nil
}
