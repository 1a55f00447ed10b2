package airmission

// AttackResult is what one interception attack (escort->CAP, or
// CAP->bomber) produced. The engine computes this via the combat
// package (which owns unit stats and the post-multiplier bands) and
// hands the result back so airmission can drive the two-step ordering
// spec.md requires without itself knowing about unit stats.
type AttackResult struct {
	DamageDealt       int
	DefenderDestroyed bool
}

// Interceptor is one squadron available to intercept, wrapping the
// owning mission and the ammo pool the engine debits from.
type Interceptor struct {
	Mission  *Mission
	AmmoPool *AmmoPool
}

// InterceptionOutcome records what happened during one strike's
// pre-bomb-run interception phase.
type InterceptionOutcome struct {
	Engaged          bool // an air_to_air event occurred
	BomberDestroyed  bool
	CAPKills         []string // squadron ids of destroyed CAP
	EscortsUsed      []string // squadron ids of escorts that fired
	CAPEngaged       []string // squadron ids of CAP that engaged the bomber
}

// RunInterception executes the two-step interception sequence against
// one bomber:
//
//  1. Escorts attrit CAP: each CAP is paired with one unused escort (by
//     iteration order); escort -> CAP fighter-vs-fighter attack;
//     a CAP destroyed by its escort has its Interceptions consumed.
//  2. Surviving CAP (Interceptions < 1, still alive) engages the
//     bomber, one attack each; CAP.Interceptions set to 1. If the
//     bomber is destroyed, interception stops immediately and the
//     strike is aborted.
//
// attackEscortVsCAP and attackCAPVsBomber are supplied by the engine,
// which alone knows unit stats and applies the combat package's
// multiplier bands.
func RunInterception(
	cap []Interceptor,
	esc []Interceptor,
	attackEscortVsCAP func(escort, capUnit *Interceptor) AttackResult,
	attackCAPVsBomber func(cap *Interceptor) AttackResult,
) InterceptionOutcome {
	var out InterceptionOutcome
	if len(cap) == 0 {
		return out
	}
	out.Engaged = true

	// Step 1: escorts attrit CAP, paired by iteration order.
	escIdx := 0
	for _, c := range cap {
		if c.Mission.Interceptions >= 1 {
			continue
		}
		if escIdx >= len(esc) {
			break
		}
		escort := &esc[escIdx]
		if escort.Mission.Interceptions >= 1 {
			escIdx++
			continue
		}
		result := attackEscortVsCAP(escort, &c)
		escort.AmmoPool.SpendAir()
		escort.Mission.Interceptions = 1
		out.EscortsUsed = append(out.EscortsUsed, escort.Mission.UnitKey)
		if result.DefenderDestroyed {
			c.Mission.Interceptions = 1 // consumed even though the CAP is gone
			out.CAPKills = append(out.CAPKills, c.Mission.UnitKey)
		}
		escIdx++
	}

	// Step 2: surviving CAP (interceptions < 1, still alive) engages
	// the bomber.
	killed := make(map[string]bool, len(out.CAPKills))
	for _, k := range out.CAPKills {
		killed[k] = true
	}
	for _, c := range cap {
		if c.Mission.Interceptions >= 1 || killed[c.Mission.UnitKey] {
			continue
		}
		result := attackCAPVsBomber(&c)
		c.AmmoPool.SpendAir()
		c.Mission.Interceptions = 1
		out.CAPEngaged = append(out.CAPEngaged, c.Mission.UnitKey)
		if result.DefenderDestroyed {
			out.BomberDestroyed = true
			break
		}
	}
	return out
}
