// Package airmission implements the air-mission scheduler, lifecycle
// tick, interception arbitration, and refit timers — the hardest
// sub-core named by spec.md. Mission kinds echo galaxyCore's ShipType
// role vocabulary (Fighter/Bomber/Carrier in ships/stack.go); the
// status+optional-outcome shape is grounded on
// ships/battle_report.go's BattleStatus/BattleOutcome pairing (a status
// enum with an outcome payload attached only at the terminal
// transition).
package airmission

import "github.com/ironveil/tactics-core/catalog"

// Kind enumerates mission kinds. The fixed resolution order
// [strike, escort, transport, air_cover] is load-bearing: it is the
// order KindsInResolutionOrder lists them in.
type Kind string

const (
	KindStrike    Kind = "strike"
	KindEscort    Kind = "escort"
	KindTransport Kind = "transport"
	KindAirCover  Kind = "air_cover" // CAP
)

// KindsInResolutionOrder is the fixed per-tick resolution order.
var KindsInResolutionOrder = []Kind{KindStrike, KindEscort, KindTransport, KindAirCover}

// Status enumerates the mission lifecycle states. Transitions only ever
// go queued -> in_flight -> resolving -> completed.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusInFlight  Status = "in_flight"
	StatusResolving Status = "resolving"
	StatusCompleted Status = "completed"
)

// Template is an external, read-only mission-kind definition.
type Template struct {
	Kind                         Kind
	AllowedRoles                 []catalog.AirRole
	RequiresTarget               bool
	RequiresFriendlyEscortTarget bool
	DurationTurns                int
}

func (t Template) roleFor() catalog.AirRole {
	switch t.Kind {
	case KindStrike:
		return catalog.RoleStrike
	case KindEscort:
		return catalog.RoleEscort
	case KindTransport:
		return catalog.RoleTransport
	case KindAirCover:
		return catalog.RoleCAP
	}
	return ""
}

// DefaultTemplates returns the built-in mission-kind catalog.
func DefaultTemplates() map[Kind]Template {
	return map[Kind]Template{
		KindStrike: {
			Kind:           KindStrike,
			AllowedRoles:   []catalog.AirRole{catalog.RoleStrike},
			RequiresTarget: true,
			DurationTurns:  1,
		},
		KindEscort: {
			Kind:                         KindEscort,
			AllowedRoles:                 []catalog.AirRole{catalog.RoleEscort},
			RequiresFriendlyEscortTarget: true,
			DurationTurns:                1,
		},
		KindTransport: {
			Kind:           KindTransport,
			AllowedRoles:   []catalog.AirRole{catalog.RoleTransport},
			RequiresTarget: true,
			DurationTurns:  1,
		},
		KindAirCover: {
			Kind:           KindAirCover,
			AllowedRoles:   []catalog.AirRole{catalog.RoleCAP},
			RequiresTarget: true,
			DurationTurns:  1,
		},
	}
}

// Outcome is the terminal result recorded on a completed mission.
type Outcome struct {
	Result        string // "success", "aborted", "no_target"
	RefitRequired bool
	Notes         string
}

// Mission is a scheduled air mission.
type Mission struct {
	ID                  string
	TemplateKind        Kind
	Faction             string
	UnitKey             string // stable squadron id
	OriginHexKey        string
	UnitType            string
	Status              Status
	LaunchTurn          int
	TurnsRemaining      int
	TargetHexKey        string
	HasTarget           bool
	TargetUnitKey       string
	HasTargetUnit       bool
	EscortTargetUnitKey string
	HasEscortTarget     bool
	Interceptions       int
	Outcome             *Outcome
}

// AmmoPool is a squadron's remaining air/ground salvos.
type AmmoPool struct {
	Air        int
	Ground     int
	NeedsRearm bool
}

// SpendAir decrements the air pool by one, setting NeedsRearm if it
// reaches zero.
func (p *AmmoPool) SpendAir() {
	if p.Air > 0 {
		p.Air--
	}
	if p.Air == 0 {
		p.NeedsRearm = true
	}
}

// SpendGround decrements the ground pool by one, setting NeedsRearm if
// it reaches zero.
func (p *AmmoPool) SpendGround() {
	if p.Ground > 0 {
		p.Ground--
	}
	if p.Ground == 0 {
		p.NeedsRearm = true
	}
}

// RefitTimer tracks a squadron's countdown to refit completion.
type RefitTimer struct {
	MissionID      string
	Faction        string
	UnitKey        string
	RemainingTurns int
}
