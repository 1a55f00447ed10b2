package airmission

import (
	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/hexgrid"
)

// ScheduleErrorCode enumerates the exhaustive set of air-scheduling
// error codes from spec.md §4.5.
type ScheduleErrorCode string

const (
	ErrPhaseInvalid               ScheduleErrorCode = "PhaseInvalid"
	ErrWrongFaction               ScheduleErrorCode = "WrongFaction"
	ErrNoUnitAtHex                ScheduleErrorCode = "NoUnitAtHex"
	ErrNotAircraft                ScheduleErrorCode = "NotAircraft"
	ErrNoAirSupportProfile        ScheduleErrorCode = "NoAirSupportProfile"
	ErrRoleNotEligible            ScheduleErrorCode = "RoleNotEligible"
	ErrAlreadyAssigned            ScheduleErrorCode = "AlreadyAssigned"
	ErrNeedsRefit                 ScheduleErrorCode = "NeedsRefit"
	ErrTargetRequired             ScheduleErrorCode = "TargetRequired"
	ErrEscortTargetRequired       ScheduleErrorCode = "EscortTargetRequired"
	ErrOutOfRange                 ScheduleErrorCode = "OutOfRange"
	ErrEscortTargetMissing        ScheduleErrorCode = "EscortTargetMissing"
	ErrEscortTargetInFlight       ScheduleErrorCode = "EscortTargetInFlight"
	ErrAirbaseCapacityExceeded    ScheduleErrorCode = "AirbaseCapacityExceeded"
)

// Request is a schedule-air-mission request.
type Request struct {
	Kind               Kind
	Faction            string
	OriginHex          hexgrid.Hex
	TargetHex          hexgrid.Hex
	HasTarget          bool
	EscortTargetHex    hexgrid.Hex
	HasEscortTarget    bool
	EscortTargetUnit   string // squadron id of the mission being escorted, if known
}

// Candidate is one aircraft the scheduler may pick for a mission,
// gathered by the engine from placements (deployed first) and, for
// Player, reserves.
type Candidate struct {
	UnitKey    string
	UnitType   string
	Profile    catalog.AirSupportProfile
	Deployed   bool
	AmmoPool   AmmoPool
	NeedsRefit bool
}

// ScheduleOutcome is the result of a TrySchedule call: never an error, always a
// tagged outcome per spec.md §7's policy for try_schedule_air_mission.
type ScheduleOutcome struct {
	OK            bool
	MissionID     string
	ChosenUnitKey string
	Code          ScheduleErrorCode
	Reason        string
}

func fail(code ScheduleErrorCode, reason string) ScheduleOutcome {
	return ScheduleOutcome{OK: false, Code: code, Reason: reason}
}

// TrySchedule validates a schedule request and, if valid, returns an OK
// outcome describing the chosen candidate's unit key — the caller
// (engine) is responsible for actually constructing and storing the
// Mission value, since only it owns mission-id generation and storage.
//
// candidates must already be filtered to the given origin hex, in
// selection-priority order (deployed first, then reserves for Player).
// For escort requests, escortTargetExists reports whether the named
// escort target was found (EscortTargetMissing otherwise) and
// escortTargetInFlight whether its mission is active (EscortTargetInFlight
// otherwise); the engine counts queued and in-flight missions as active.
func TrySchedule(
	req Request,
	phaseAllowsScheduling bool,
	unitExistsAtOrigin bool,
	candidates []Candidate,
	locks map[string]string, // squadron id -> mission id
	templates map[Kind]Template,
	kmPerHex float64,
	airbaseCap int, // 0 means unlimited
	airbaseQueuedDepartures int,
	escortTargetExists bool,
	escortTargetInFlight bool,
) ScheduleOutcome {
	if !phaseAllowsScheduling {
		return fail(ErrPhaseInvalid, "air missions may only be scheduled during a turn phase")
	}
	tmpl, ok := templates[req.Kind]
	if !ok {
		return fail(ErrRoleNotEligible, "unknown mission kind")
	}
	if tmpl.RequiresTarget && !req.HasTarget {
		return fail(ErrTargetRequired, "this mission kind requires a target hex")
	}
	if tmpl.RequiresFriendlyEscortTarget && !req.HasEscortTarget {
		return fail(ErrEscortTargetRequired, "escort missions require an escort target hex")
	}
	if !unitExistsAtOrigin {
		return fail(ErrNoUnitAtHex, "no unit at origin hex")
	}
	if len(candidates) == 0 {
		return fail(ErrNotAircraft, "no aircraft at origin hex")
	}

	role := tmpl.roleFor()
	var chosen *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Profile.Roles == nil {
			continue
		}
		if !c.Profile.HasRole(role) {
			continue
		}
		if _, locked := locks[c.UnitKey]; locked {
			continue
		}
		if c.NeedsRefit {
			continue
		}
		chosen = c
		break
	}
	if chosen == nil {
		// Distinguish the reasons in priority order matching the spec's
		// enumerated codes: not aircraft / no profile / role mismatch /
		// already assigned / needs refit.
		anyAircraftWithProfile := false
		anyRoleMatch := false
		anyUnlocked := false
		anyRefitReady := false
		for _, c := range candidates {
			if c.Profile.Roles != nil {
				anyAircraftWithProfile = true
				if c.Profile.HasRole(role) {
					anyRoleMatch = true
					if _, locked := locks[c.UnitKey]; !locked {
						anyUnlocked = true
						if !c.NeedsRefit {
							anyRefitReady = true
						}
					}
				}
			}
		}
		switch {
		case !anyAircraftWithProfile:
			return fail(ErrNoAirSupportProfile, "no candidate aircraft has an air-support profile")
		case !anyRoleMatch:
			return fail(ErrRoleNotEligible, "no candidate aircraft is eligible for this role")
		case !anyUnlocked:
			return fail(ErrAlreadyAssigned, "candidate squadron already has an active mission")
		case !anyRefitReady:
			return fail(ErrNeedsRefit, "candidate squadron needs refit")
		default:
			return fail(ErrNotAircraft, "no aircraft at origin hex")
		}
	}

	if req.HasTarget {
		dist := hexgrid.Distance(req.OriginHex, req.TargetHex)
		if float64(dist)*kmPerHex > chosen.Profile.CombatRadiusKm {
			return fail(ErrOutOfRange, "target is beyond combat radius")
		}
	}
	if req.HasEscortTarget {
		dist := hexgrid.Distance(req.OriginHex, req.EscortTargetHex)
		if float64(dist)*kmPerHex > chosen.Profile.CombatRadiusKm {
			return fail(ErrOutOfRange, "escort target is beyond combat radius")
		}
		if !escortTargetExists {
			return fail(ErrEscortTargetMissing, "escort target squadron not found")
		}
		if !escortTargetInFlight {
			return fail(ErrEscortTargetInFlight, "escort target mission is not in flight")
		}
	}
	if airbaseCap > 0 && airbaseQueuedDepartures >= airbaseCap {
		return fail(ErrAirbaseCapacityExceeded, "airbase capacity exceeded for this hex")
	}

	return ScheduleOutcome{OK: true, ChosenUnitKey: chosen.UnitKey}
}
