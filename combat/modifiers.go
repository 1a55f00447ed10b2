package combat

// StatMods are additive percentage modifiers applied to a combat
// calculation. Positive values favor the side they're attached to.
// Add composes them additively; Apply scales a base value as
// base * (1 + pct). Resolve does not take a StatMods value: it adds its
// accuracy terms directly and uses Apply only for the commander damage
// bonus.
type StatMods struct {
	AccuracyPct  float64
	DamagePct    float64
	DefensePct   float64
	SuppressPct  float64
}

// Add composes two StatMods by summing each field.
func (m StatMods) Add(o StatMods) StatMods {
	return StatMods{
		AccuracyPct: m.AccuracyPct + o.AccuracyPct,
		DamagePct:   m.DamagePct + o.DamagePct,
		DefensePct:  m.DefensePct + o.DefensePct,
		SuppressPct: m.SuppressPct + o.SuppressPct,
	}
}

// Apply multiplies base by (1 + pct), floored at zero.
func Apply(base, pct float64) float64 {
	v := base * (1 + pct)
	if v < 0 {
		return 0
	}
	return v
}
