package airmission

// Promote transitions every queued mission of faction to in_flight,
// sets turns_remaining to its template's duration, and returns the
// missions that were promoted (the engine uses this to append arrival
// events). This is lifecycle-tick phase 1.
func Promote(missions []*Mission, faction string, templates map[Kind]Template, currentTurn int) []*Mission {
	var promoted []*Mission
	for _, m := range missions {
		if m.Faction != faction || m.Status != StatusQueued {
			continue
		}
		tmpl := templates[m.TemplateKind]
		m.Status = StatusInFlight
		m.TurnsRemaining = tmpl.DurationTurns
		m.LaunchTurn = currentTurn
		promoted = append(promoted, m)
	}
	return promoted
}

// DecrementInFlight decrements turns_remaining on every in-flight
// mission of faction that was NOT in the justPromoted set. This is
// lifecycle-tick phase 2.
func DecrementInFlight(missions []*Mission, faction string, justPromoted map[string]bool) {
	for _, m := range missions {
		if m.Faction != faction || m.Status != StatusInFlight {
			continue
		}
		if justPromoted[m.ID] {
			continue
		}
		if m.TurnsRemaining > 0 {
			m.TurnsRemaining--
		}
	}
}

// DueForResolution returns, for one kind, every in-flight mission of
// faction whose turns_remaining has reached zero, transitioning each to
// resolving. This is lifecycle-tick phase 3, called once per kind in
// KindsInResolutionOrder.
func DueForResolution(missions []*Mission, faction string, kind Kind) []*Mission {
	var due []*Mission
	for _, m := range missions {
		if m.Faction != faction || m.TemplateKind != kind {
			continue
		}
		if m.Status == StatusInFlight && m.TurnsRemaining == 0 {
			m.Status = StatusResolving
			due = append(due, m)
		}
	}
	return due
}

// Complete finalizes a resolving mission with an outcome.
func Complete(m *Mission, outcome Outcome) {
	m.Outcome = &outcome
	m.Status = StatusCompleted
}

// TickRefits decrements every refit timer belonging to faction,
// returning the ones that completed this tick (RemainingTurns reached
// zero) for the engine to apply restoration effects to and remove from
// the active timer set.
func TickRefits(timers []*RefitTimer, faction string) (completed []*RefitTimer, stillActive []*RefitTimer) {
	for _, t := range timers {
		if t.Faction != faction {
			stillActive = append(stillActive, t)
			continue
		}
		if t.RemainingTurns > 0 {
			t.RemainingTurns--
		}
		if t.RemainingTurns <= 0 {
			completed = append(completed, t)
		} else {
			stillActive = append(stillActive, t)
		}
	}
	return completed, stillActive
}
