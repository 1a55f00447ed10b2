package engine

import "github.com/ironveil/tactics-core/hexgrid"

// AirMissionArrival is emitted once, the turn a mission promotes from
// queued to in_flight.
type AirMissionArrival struct {
	MissionID           string
	Faction              Faction
	UnitKey               string
	OriginHexKey          string
	UnitType              string
	Kind                  string
	TargetHexKey          string
	HasTarget             bool
	TargetUnitKey         string
	HasTargetUnit         bool
	EscortTargetUnitKey   string
	HasEscortTarget       bool
}

// AirEngagementEvent records one air_to_air interception engagement.
type AirEngagementEvent struct {
	Type         string // always "airToAir"
	LocationKey  string
	Bomber       string
	Interceptors []string
	Escorts      []string
}

// CombatReportEntry records one resolved attack (including interception
// attacks and bomb runs), in the order damage was applied.
type CombatReportEntry struct {
	Turn             int
	AttackerUnitID   string
	DefenderUnitID   string
	AttackerHexKey   string
	DefenderHexKey   string
	DamageDealt      int
	DefenderDestroyed bool
	Retaliated       bool
	RetaliationDamage int
	AttackerDestroyed bool
	RetaliationNote   string
}

// AirMissionReportEntry records one resolved, refit-started, or
// refit-completed air-mission lifecycle event.
type AirMissionReportEntry struct {
	ID              string
	MissionID       string
	TurnResolved    int
	Faction         Faction
	UnitType        string
	UnitKey         string
	Kind            string
	Outcome         string
	Event           string // "resolved" | "refitStarted" | "refitCompleted"
	Interceptions   int
	Kills           []string
	BomberAttrition int
	Notes           string
}

// MoveResolution is the tagged result of move_unit.
type MoveResolution struct {
	OK          bool
	Err         error
	From        hexgrid.Hex
	To          hexgrid.Hex
	CostSpent   int
	BudgetLeft  int
}

// AttackResolution is the tagged result of attack_unit.
type AttackResolution struct {
	OK                bool
	Err               error
	DamageDealt       int
	DefenderDestroyed bool
	Retaliated        bool
	RetaliationDamage int
	AttackerDestroyed bool
	RetaliationNote   string
}

// CombatPreview is the read-only projection returned by preview_attack.
type CombatPreview struct {
	OK                bool
	Err               error
	ExpectedDamage     float64
	ExpectedRetaliation float64
	Accuracy            float64
	InRange             bool
	HasLineOfFire       bool
}

// SupplyTickReport summarizes one faction's turn-start supply tick,
// returned by end_turn for the faction whose turn just ended.
type SupplyTickReport struct {
	Faction        Faction
	Delivered      []string
	ProductionCredited bool
	UnitsAttritioned   []string
}
