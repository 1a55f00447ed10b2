package engine

import (
	"fmt"
	"math/rand"

	"github.com/ironveil/tactics-core/airmission"
	"github.com/ironveil/tactics-core/catalog"
	"github.com/ironveil/tactics-core/cerrs"
	"github.com/ironveil/tactics-core/combat"
	"github.com/ironveil/tactics-core/engineconfig"
	"github.com/ironveil/tactics-core/hexgrid"
)

// ListAirMissionTemplates returns the built-in mission-kind catalog.
func (b *Battle) ListAirMissionTemplates() map[airmission.Kind]airmission.Template {
	out := make(map[airmission.Kind]airmission.Template, len(b.templates))
	for k, v := range b.templates {
		out[k] = v
	}
	return out
}

func (b *Battle) findUnitByID(f Faction, id string) (*Unit, bool) {
	fs := b.faction(f)
	for _, u := range fs.placements {
		if u.UnitID == id {
			return u, true
		}
	}
	for _, r := range fs.reserves {
		if r.Unit.UnitID == id {
			u := r.Unit
			return &u, true
		}
	}
	return nil, false
}

func (b *Battle) squadronProfile(f Faction, unitKey string) (catalog.AirSupportProfile, bool) {
	u, ok := b.findUnitByID(f, unitKey)
	if !ok {
		return catalog.AirSupportProfile{}, false
	}
	ut, ok := b.unitType(u.TypeKey)
	if !ok || ut.AirSupport == nil {
		return catalog.AirSupportProfile{}, false
	}
	return *ut.AirSupport, true
}

func (b *Battle) needsRefit(f Faction, unitKey string) bool {
	for _, t := range b.faction(f).refits {
		if t.UnitKey == unitKey {
			return true
		}
	}
	return false
}

// gatherCandidates builds the scheduler's candidate list for faction f
// launching from originHex: the deployed squadron there first, then
// (Player only, when origin is the base camp) reserve aircraft.
func (b *Battle) gatherCandidates(f Faction, originHex hexgrid.Hex) ([]airmission.Candidate, bool) {
	var candidates []airmission.Candidate
	unitExists := false

	fs := b.faction(f)
	if u, ok := fs.unitAt(originHex); ok {
		unitExists = true
		if ut, ok := b.unitType(u.TypeKey); ok && ut.AirSupport != nil {
			pool := fs.ammoPools[u.UnitID]
			candidates = append(candidates, airmission.Candidate{
				UnitKey:    u.UnitID,
				UnitType:   u.TypeKey,
				Profile:    *ut.AirSupport,
				Deployed:   true,
				AmmoPool:   poolOrDefault(pool, b.cfg),
				NeedsRefit: b.needsRefit(f, u.UnitID),
			})
		}
	}
	if f == Player && fs.hasBaseCamp && fs.baseCampHex == originHex {
		if !unitExists {
			unitExists = len(fs.reserves) > 0
		}
		for _, r := range fs.reserves {
			ut, ok := b.unitType(r.Unit.TypeKey)
			if !ok || ut.AirSupport == nil {
				continue
			}
			pool := fs.ammoPools[r.Unit.UnitID]
			candidates = append(candidates, airmission.Candidate{
				UnitKey:    r.Unit.UnitID,
				UnitType:   r.Unit.TypeKey,
				Profile:    *ut.AirSupport,
				Deployed:   false,
				AmmoPool:   poolOrDefault(pool, b.cfg),
				NeedsRefit: b.needsRefit(f, r.Unit.UnitID),
			})
		}
	}
	return candidates, unitExists
}

func poolOrDefault(p *airmission.AmmoPool, cfg engineconfig.Config) airmission.AmmoPool {
	if p != nil {
		return *p
	}
	return airmission.AmmoPool{Air: cfg.Air.BaseAirSalvos, Ground: cfg.Air.BaseGroundSalvos}
}

// newAircraftAmmoPool returns a freshly baselined ammo pool.
func newAircraftAmmoPool(cfg engineconfig.Config) *airmission.AmmoPool {
	return &airmission.AmmoPool{Air: cfg.Air.BaseAirSalvos, Ground: cfg.Air.BaseGroundSalvos}
}

// TryScheduleAirMission validates and, on success, creates a queued
// mission and locks its chosen squadron. It never errors; failures
// come back as a ScheduleOutcome with OK=false, per spec.md's contract
// for the non-raising form.
func (b *Battle) TryScheduleAirMission(f Faction, req airmission.Request) airmission.ScheduleOutcome {
	phaseOK := b.phase == PhasePlayerTurn || b.phase == PhaseBotTurn
	if phaseOK && f != b.activeFaction {
		return airmission.ScheduleOutcome{Code: airmission.ErrWrongFaction, Reason: "scheduling faction does not hold the active turn"}
	}
	candidates, unitExists := b.gatherCandidates(f, req.OriginHex)

	escortTargetExists := false
	escortTargetInFlight := false
	if req.HasEscortTarget {
		for _, m := range b.missions {
			if m.Faction == string(f) && m.UnitKey == req.EscortTargetUnit {
				escortTargetExists = true
				escortTargetInFlight = m.Status == airmission.StatusInFlight || m.Status == airmission.StatusQueued
			}
		}
	}

	fs := b.faction(f)
	airbaseDepartures := 0
	for _, m := range b.missions {
		if m.Faction == string(f) && m.OriginHexKey == req.OriginHex.Key() &&
			(m.Status == airmission.StatusQueued || m.Status == airmission.StatusInFlight) {
			airbaseDepartures++
		}
	}

	out := airmission.TrySchedule(req, phaseOK, unitExists, candidates, fs.locks, b.templates, b.cfg.Hex.KmPerHex, 0, airbaseDepartures, escortTargetExists, escortTargetInFlight)
	if !out.OK {
		return out
	}

	u, _ := b.findUnitByID(f, out.ChosenUnitKey)
	id := b.newMissionID()
	m := &airmission.Mission{
		ID:                  id,
		TemplateKind:        req.Kind,
		Faction:             string(f),
		UnitKey:             out.ChosenUnitKey,
		OriginHexKey:        req.OriginHex.Key(),
		UnitType:            u.TypeKey,
		Status:              airmission.StatusQueued,
		TargetHexKey:        req.TargetHex.Key(),
		HasTarget:           req.HasTarget,
		EscortTargetUnitKey: req.EscortTargetUnit,
		HasEscortTarget:     req.HasEscortTarget,
	}
	b.missions = append(b.missions, m)
	fs.locks[out.ChosenUnitKey] = id
	out.MissionID = id
	b.invalidate()
	return out
}

// scheduleErrSentinel maps an airmission.ScheduleErrorCode onto its
// matching cerrs.ErrSched* sentinel, so callers of ScheduleAirMission
// can errors.Is against a distinct sentinel per taxonomy kind rather
// than parsing out.Code/out.Reason themselves.
func scheduleErrSentinel(code airmission.ScheduleErrorCode) error {
	switch code {
	case airmission.ErrPhaseInvalid:
		return cerrs.ErrSchedPhaseInvalid
	case airmission.ErrWrongFaction:
		return cerrs.ErrSchedWrongFaction
	case airmission.ErrNoUnitAtHex:
		return cerrs.ErrSchedNoUnitAtHex
	case airmission.ErrNotAircraft:
		return cerrs.ErrSchedNotAircraft
	case airmission.ErrNoAirSupportProfile:
		return cerrs.ErrSchedNoAirSupportProfile
	case airmission.ErrRoleNotEligible:
		return cerrs.ErrSchedRoleNotEligible
	case airmission.ErrAlreadyAssigned:
		return cerrs.ErrSchedAlreadyAssigned
	case airmission.ErrNeedsRefit:
		return cerrs.ErrSchedNeedsRefit
	case airmission.ErrTargetRequired:
		return cerrs.ErrSchedTargetRequired
	case airmission.ErrEscortTargetRequired:
		return cerrs.ErrSchedEscortTargetRequired
	case airmission.ErrOutOfRange:
		return cerrs.ErrSchedOutOfRange
	case airmission.ErrEscortTargetMissing:
		return cerrs.ErrSchedEscortTargetMissing
	case airmission.ErrEscortTargetInFlight:
		return cerrs.ErrSchedEscortTargetInFlight
	case airmission.ErrAirbaseCapacityExceeded:
		return cerrs.ErrSchedAirbaseCapacityExceeded
	default:
		return cerrs.ErrSchedPhaseInvalid
	}
}

// ScheduleAirMission is the convenience form that raises on the same
// conditions TryScheduleAirMission reports as a failed outcome.
func (b *Battle) ScheduleAirMission(f Faction, req airmission.Request) (string, error) {
	out := b.TryScheduleAirMission(f, req)
	if !out.OK {
		return "", fmt.Errorf("schedule air mission: %s: %w", out.Reason, scheduleErrSentinel(out.Code))
	}
	return out.MissionID, nil
}

// CancelQueuedAirMission cancels a mission that has not yet promoted to
// in_flight, clearing its assignment lock.
func (b *Battle) CancelQueuedAirMission(id string) error {
	for i, m := range b.missions {
		if m.ID != id {
			continue
		}
		if m.Status != airmission.StatusQueued {
			return fmt.Errorf("cancel queued air mission: %w", cerrs.ErrPhaseInvalid)
		}
		delete(b.faction(Faction(m.Faction)).locks, m.UnitKey)
		b.missions = append(b.missions[:i], b.missions[i+1:]...)
		b.invalidate()
		return nil
	}
	return fmt.Errorf("cancel queued air mission: mission not found")
}

// GetScheduledAirMissions returns a defensive copy of every mission,
// optionally filtered by faction.
func (b *Battle) GetScheduledAirMissions(f *Faction) []airmission.Mission {
	var out []airmission.Mission
	for _, m := range b.missions {
		if f != nil && m.Faction != string(*f) {
			continue
		}
		out = append(out, *m)
	}
	return out
}

// GetAirMissionReports returns a defensive copy of the bounded report
// buffer.
func (b *Battle) GetAirMissionReports() []AirMissionReportEntry {
	return append([]AirMissionReportEntry(nil), b.airMissionReports...)
}

// ConsumeAirMissionArrivals atomically drains the one-shot arrival
// queue. A second call before any new arrival returns empty.
func (b *Battle) ConsumeAirMissionArrivals() []AirMissionArrival {
	out := b.arrivals
	b.arrivals = nil
	return out
}

// ConsumeAirEngagements atomically drains the one-shot interception
// engagement queue.
func (b *Battle) ConsumeAirEngagements() []AirEngagementEvent {
	out := b.engagements
	b.engagements = nil
	return out
}

// GetAircraftCombatRadiusHex returns the combat radius, in hexes, of
// the aircraft at origin, derived from its catalog profile and
// km_per_hex.
func (b *Battle) GetAircraftCombatRadiusHex(origin hexgrid.Hex) (int, error) {
	_, u, err := b.findUnit(origin)
	if err != nil {
		return 0, err
	}
	ut, ok := b.unitType(u.TypeKey)
	if !ok || ut.AirSupport == nil {
		return 0, fmt.Errorf("get aircraft combat radius: %w", cerrs.ErrUnknownUnitType)
	}
	return int(ut.AirSupport.CombatRadiusKm / b.cfg.Hex.KmPerHex), nil
}

// GetAircraftRefitTurns returns the configured refit duration for the
// aircraft at origin.
func (b *Battle) GetAircraftRefitTurns(origin hexgrid.Hex) (int, error) {
	_, u, err := b.findUnit(origin)
	if err != nil {
		return 0, err
	}
	ut, ok := b.unitType(u.TypeKey)
	if !ok || ut.AirSupport == nil {
		return 0, fmt.Errorf("get aircraft refit turns: %w", cerrs.ErrUnknownUnitType)
	}
	return ut.AirSupport.RefitTurns, nil
}

// airMissionLifecycleTick runs the three-phase promote/decrement/resolve
// sequence for one faction, then ticks its refit timers. Called from
// end_turn, strictly before the faction's base-camp rearm and supply tick.
func (b *Battle) airMissionLifecycleTick(f Faction) {
	log := b.cfg.Log()
	promoted := airmission.Promote(b.missions, string(f), b.templates, b.turnNumber)
	justPromoted := make(map[string]bool, len(promoted))
	for _, m := range promoted {
		log.Debug("air mission promoted to in_flight", "faction", f, "missionId", m.ID, "kind", m.TemplateKind)
		justPromoted[m.ID] = true
		b.arrivals = append(b.arrivals, AirMissionArrival{
			MissionID:           m.ID,
			Faction:             f,
			UnitKey:             m.UnitKey,
			OriginHexKey:        m.OriginHexKey,
			UnitType:            m.UnitType,
			Kind:                string(m.TemplateKind),
			TargetHexKey:        m.TargetHexKey,
			HasTarget:           m.HasTarget,
			TargetUnitKey:       m.TargetUnitKey,
			HasTargetUnit:       m.HasTargetUnit,
			EscortTargetUnitKey: m.EscortTargetUnitKey,
			HasEscortTarget:     m.HasEscortTarget,
		})
	}
	airmission.DecrementInFlight(b.missions, string(f), justPromoted)

	for _, kind := range airmission.KindsInResolutionOrder {
		due := airmission.DueForResolution(b.missions, string(f), kind)
		for _, m := range due {
			log.Info("air mission resolving", "faction", f, "missionId", m.ID, "kind", m.TemplateKind)
			b.resolveMission(f, m)
		}
	}

	fs := b.faction(f)
	completed, active := airmission.TickRefits(fs.refits, string(f))
	fs.refits = active
	for _, t := range completed {
		log.Debug("squadron refit completed", "faction", f, "unitKey", t.UnitKey)
		b.completeRefit(f, t)
	}
	b.invalidate()
}

func (b *Battle) completeRefit(f Faction, t *airmission.RefitTimer) {
	fs := b.faction(f)
	u, ok := b.findUnitByID(f, t.UnitKey)
	if ok {
		u.Strength = airmission.RefitStrength(u.Strength, b.cfg.Air.RefitStrengthFactor)
	}
	fs.ammoPools[t.UnitKey] = &airmission.AmmoPool{Air: b.cfg.Air.BaseAirSalvos, Ground: b.cfg.Air.BaseGroundSalvos}
	delete(fs.locks, t.UnitKey)
	b.appendAirMissionReport(AirMissionReportEntry{
		MissionID:    t.MissionID,
		TurnResolved: b.turnNumber,
		Faction:      f,
		UnitKey:      t.UnitKey,
		Event:        "refitCompleted",
	})
}

func (b *Battle) appendAirMissionReport(e AirMissionReportEntry) {
	b.airMissionReports = append(b.airMissionReports, e)
	limit := b.cfg.Reports.AirMissionReportLimit
	if limit > 0 && len(b.airMissionReports) > limit {
		b.airMissionReports = b.airMissionReports[len(b.airMissionReports)-limit:]
	}
}

// resolveMission dispatches one due mission to its kind-specific
// resolution and records the completion report.
func (b *Battle) resolveMission(f Faction, m *airmission.Mission) {
	switch m.TemplateKind {
	case airmission.KindStrike:
		b.resolveStrike(f, m)
	case airmission.KindTransport:
		b.resolveTransport(f, m)
	default: // escort, air_cover: passive missions, complete cleanly
		airmission.Complete(m, airmission.Outcome{Result: "success"})
		b.appendAirMissionReport(AirMissionReportEntry{
			MissionID: m.ID, TurnResolved: b.turnNumber, Faction: f,
			UnitType: m.UnitType, UnitKey: m.UnitKey, Kind: string(m.TemplateKind),
			Outcome: "success", Event: "resolved",
		})
	}
	// A squadron sent to refit keeps its lock until completeRefit clears it.
	if m.Outcome == nil || !m.Outcome.RefitRequired {
		delete(b.faction(f).locks, m.UnitKey)
	}
}

// resolveStrike runs target-refresh, interception, and the bomb run.
func (b *Battle) resolveStrike(f Faction, m *airmission.Mission) {
	bomber, ok := b.findUnitByID(f, m.UnitKey)
	if !ok || !bomber.IsAlive() {
		airmission.Complete(m, airmission.Outcome{Result: "aborted", Notes: "squadron destroyed before strike"})
		b.reportMissionResolved(f, m)
		return
	}
	but, _ := b.unitType(bomber.TypeKey)
	targetHex, _ := hexgrid.ParseKey(m.TargetHexKey)

	if m.HasTargetUnit {
		if tgt, ok := b.findUnitByID(b.opponent(f), m.TargetUnitKey); ok && tgt.IsAlive() {
			if hexgrid.Distance(targetHex, tgt.Hex) <= 2 {
				dist := hexgrid.Distance(bomber.Hex, tgt.Hex)
				if but.AirSupport != nil && float64(dist)*b.cfg.Hex.KmPerHex <= but.AirSupport.CombatRadiusKm {
					targetHex = tgt.Hex
					m.TargetHexKey = targetHex.Key()
				}
			}
		}
	}

	interception := b.runInterceptionAgainst(f, bomber, targetHex)
	if interception.BomberDestroyed {
		airmission.Complete(m, airmission.Outcome{Result: "aborted", Notes: "bomber destroyed by CAP"})
		b.reportMissionResolved(f, m)
		b.appendAirMissionReport(AirMissionReportEntry{
			MissionID: m.ID, TurnResolved: b.turnNumber, Faction: f, UnitKey: m.UnitKey,
			Kind: string(m.TemplateKind), Event: "resolved", BomberAttrition: 100,
			Notes: "bomber lost to interception",
		})
		return
	}

	refitRequired := b.runBombRun(f, bomber, but, targetHex)
	outcome := airmission.Outcome{Result: "success", RefitRequired: refitRequired}
	airmission.Complete(m, outcome)
	if refitRequired {
		b.startRefit(f, m)
	}
	b.reportMissionResolved(f, m)
}

func (b *Battle) reportMissionResolved(f Faction, m *airmission.Mission) {
	var outcome string
	if m.Outcome != nil {
		outcome = m.Outcome.Result
	}
	b.appendAirMissionReport(AirMissionReportEntry{
		MissionID: m.ID, TurnResolved: b.turnNumber, Faction: f,
		UnitType: m.UnitType, UnitKey: m.UnitKey, Kind: string(m.TemplateKind),
		Outcome: outcome, Event: "resolved", Interceptions: m.Interceptions,
	})
}

func (b *Battle) startRefit(f Faction, m *airmission.Mission) {
	ut, _ := b.unitType(m.UnitType)
	refitTurns := 1
	if ut.AirSupport != nil && ut.AirSupport.RefitTurns > 0 {
		refitTurns = ut.AirSupport.RefitTurns
	}
	fs := b.faction(f)
	fs.refits = append(fs.refits, &airmission.RefitTimer{
		MissionID: m.ID, Faction: string(f), UnitKey: m.UnitKey, RemainingTurns: refitTurns,
	})
	fs.locks[m.UnitKey] = m.ID
	b.appendAirMissionReport(AirMissionReportEntry{
		MissionID: m.ID, TurnResolved: b.turnNumber, Faction: f, UnitKey: m.UnitKey,
		Kind: string(m.TemplateKind), Event: "refitStarted",
	})
}

// runInterceptionAgainst gathers CAP and escort interceptors for one
// strike and runs the two-step interception sequence, wiring the
// combat package's fighter-vs-fighter and fighter-vs-bomber bands.
func (b *Battle) runInterceptionAgainst(f Faction, bomber *Unit, targetHex hexgrid.Hex) airmission.InterceptionOutcome {
	opp := b.opponent(f)
	oppFS := b.faction(opp)
	ownFS := b.faction(f)

	var capInterceptors []airmission.Interceptor
	for _, m := range b.missions {
		if m.Faction != string(opp) || m.TemplateKind != airmission.KindAirCover || m.Status != airmission.StatusInFlight {
			continue
		}
		if m.Interceptions >= 1 {
			continue
		}
		center, err := hexgrid.ParseKey(m.TargetHexKey)
		if err != nil || hexgrid.Distance(center, targetHex) > b.cfg.Air.CAPPatrolRadiusHexes {
			continue
		}
		u, ok := b.findUnitByID(opp, m.UnitKey)
		if !ok || !u.IsAlive() {
			continue
		}
		profile, _ := b.squadronProfile(opp, m.UnitKey)
		if float64(hexgrid.Distance(u.Hex, targetHex))*b.cfg.Hex.KmPerHex > profile.CombatRadiusKm {
			continue
		}
		pool, ok := oppFS.ammoPools[m.UnitKey]
		if !ok {
			pool = newAircraftAmmoPool(b.cfg)
			oppFS.ammoPools[m.UnitKey] = pool
		}
		capInterceptors = append(capInterceptors, airmission.Interceptor{Mission: m, AmmoPool: pool})
	}

	var escInterceptors []airmission.Interceptor
	for _, m := range b.missions {
		if m.Faction != string(f) || m.TemplateKind != airmission.KindEscort || m.Status != airmission.StatusInFlight {
			continue
		}
		if m.Interceptions >= 1 || m.EscortTargetUnitKey != bomber.UnitID {
			continue
		}
		pool, ok := ownFS.ammoPools[m.UnitKey]
		if !ok {
			pool = newAircraftAmmoPool(b.cfg)
			ownFS.ammoPools[m.UnitKey] = pool
		}
		escInterceptors = append(escInterceptors, airmission.Interceptor{Mission: m, AmmoPool: pool})
	}

	if len(capInterceptors) == 0 {
		return airmission.InterceptionOutcome{}
	}

	b.engagements = append(b.engagements, AirEngagementEvent{
		Type:        "airToAir",
		LocationKey: targetHex.Key(),
		Bomber:      bomber.UnitID,
	})

	out := airmission.RunInterception(capInterceptors, escInterceptors,
		func(escort, cap *airmission.Interceptor) airmission.AttackResult {
			return b.resolveInterceptionAttack(opp, cap.Mission.UnitKey, f, escort.Mission.UnitKey)
		},
		func(cap *airmission.Interceptor) airmission.AttackResult {
			return b.resolveInterceptionAttack(f, bomber.UnitID, opp, cap.Mission.UnitKey)
		},
	)
	return out
}

// resolveInterceptionAttack resolves one attacker->defender air-to-air
// attack (escort vs CAP, or CAP vs bomber) via the combat package,
// applying the resolver and the appropriate post-multiplier band, and
// mutating defender strength.
func (b *Battle) resolveInterceptionAttack(defenderFaction Faction, defenderKey string, attackerFaction Faction, attackerKey string) airmission.AttackResult {
	attacker, aok := b.findUnitByID(attackerFaction, attackerKey)
	defender, dok := b.findUnitByID(defenderFaction, defenderKey)
	if !aok || !dok || !attacker.IsAlive() || !defender.IsAlive() {
		return airmission.AttackResult{}
	}
	aut, _ := b.unitType(attacker.TypeKey)
	dut, _ := b.unitType(defender.TypeKey)

	exp := combat.Resolve(b.cfg.Combat, b.combatAttackerState(attacker, aut), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(attackerFaction).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(attackerFaction).commander.DamagePct,
	}, b.combatDefenderState(defender, dut), combat.DefenderContext{})

	kind := combat.ClassifyPostMultiplier(b.combatAttackerState(attacker, aut), true)
	damage, _ := combat.AppliedDamage(kind, exp)

	defender.Strength -= damage
	destroyed := false
	if defender.Strength <= 0 {
		defender.Strength = 0
		destroyed = true
		delete(b.faction(defenderFaction).placements, defender.Hex.Key())
	}
	b.combatReports = append(b.combatReports, CombatReportEntry{
		Turn: b.turnNumber, AttackerUnitID: attacker.UnitID, DefenderUnitID: defender.UnitID,
		DamageDealt: damage, DefenderDestroyed: destroyed,
	})
	b.trimCombatReports()
	return airmission.AttackResult{DamageDealt: damage, DefenderDestroyed: destroyed}
}

// runBombRun performs the bomber's attack against its refreshed target
// hex, returning whether the bomb run exhausted a salvo pool (refit
// required).
func (b *Battle) runBombRun(f Faction, bomber *Unit, but catalog.UnitType, targetHex hexgrid.Hex) (refitRequired bool) {
	target, ok := b.anyUnitAt(targetHex)
	if !ok {
		return false
	}
	tut, _ := b.unitType(target.TypeKey)
	targetFaction := b.opponent(f)

	exp := combat.Resolve(b.cfg.Combat, b.combatAttackerState(bomber, but), combat.AttackerContext{
		CommanderAccuracyPct: b.faction(f).commander.AccuracyPct,
		CommanderDamagePct:   b.faction(f).commander.DamagePct,
	}, b.combatDefenderState(target, tut), combat.DefenderContext{
		TerrainDefenseBonus: b.catalogs.Terrain.DefenseBonus(targetHex),
	})
	kind := combat.ClassifyPostMultiplier(b.combatAttackerState(bomber, but), unitIsAir(tut))
	damage, _ := combat.AppliedDamage(kind, exp)

	target.Strength -= damage
	destroyed := target.Strength <= 0
	if destroyed {
		target.Strength = 0
		delete(b.faction(targetFaction).placements, targetHex.Key())
	}
	b.combatReports = append(b.combatReports, CombatReportEntry{
		Turn: b.turnNumber, AttackerUnitID: bomber.UnitID, DefenderUnitID: target.UnitID,
		DamageDealt: damage, DefenderDestroyed: destroyed,
	})
	b.trimCombatReports()

	fs := b.faction(f)
	pool, ok := fs.ammoPools[bomber.UnitID]
	if !ok {
		pool = &airmission.AmmoPool{Air: b.cfg.Air.BaseAirSalvos, Ground: b.cfg.Air.BaseGroundSalvos}
		fs.ammoPools[bomber.UnitID] = pool
	}
	if unitIsAir(tut) {
		pool.SpendAir()
	} else {
		pool.SpendGround()
	}
	return pool.NeedsRearm
}

// resolveTransport drops an airborne reserve onto the mission's target
// hex, scattering to a nearby unoccupied hex when the primary
// destination is occupied.
func (b *Battle) resolveTransport(f Faction, m *airmission.Mission) {
	fs := b.faction(f)
	idx := -1
	for i, r := range fs.airborneReserve {
		if r.AllocationKey == airmission.AirborneReserveKey || r.Unit.TypeKey == airmission.ParatrooperTypeKey {
			idx = i
			break
		}
	}
	if idx == -1 {
		airmission.Complete(m, airmission.Outcome{Result: "no_target", Notes: "no airborne reserve available"})
		b.reportMissionResolved(f, m)
		return
	}
	targetHex, _ := hexgrid.ParseKey(m.TargetHexKey)
	dest := targetHex
	if _, occ := b.anyUnitAt(dest); occ {
		found := false
		rng := rand.New(rand.NewSource(int64(b.turnNumber)*1000 + int64(m.LaunchTurn)))
		for _, cand := range airmission.ScatterCandidates(rng, targetHex, b.cfg.Air.ScatterRadiusHexes) {
			if !b.catalogs.Terrain.InBounds(cand) {
				continue
			}
			if _, occ := b.anyUnitAt(cand); occ {
				continue
			}
			dest = cand
			found = true
			break
		}
		if !found {
			airmission.Complete(m, airmission.Outcome{Result: "no_target", Notes: "no unoccupied hex found to scatter to"})
			b.reportMissionResolved(f, m)
			return
		}
	}

	dropped := fs.airborneReserve[idx].Unit
	dropped.Hex = dest
	fs.placements[dest.Key()] = &dropped
	fs.airborneReserve = append(fs.airborneReserve[:idx], fs.airborneReserve[idx+1:]...)

	airmission.Complete(m, airmission.Outcome{Result: "success"})
	b.reportMissionResolved(f, m)
}
