package supply

// AttritionProfile describes the per-resource/per-stat losses applied to
// a unit that is out of supply for a turn, before commander scaling.
type AttritionProfile struct {
	Ammo     float64
	Fuel     float64
	Entrench float64
	Strength float64
}

// CommanderScalar returns max(0, 1 - supplyBonusPct/100), the Player
// commander's supply scalar; Bot always uses 1.
func CommanderScalar(supplyBonusPct float64) float64 {
	s := 1 - supplyBonusPct/100
	if s < 0 {
		return 0
	}
	return s
}

// ScaledAttrition applies the commander scalar to a profile and rounds
// every field to two decimals, as spec.md requires.
func ScaledAttrition(profile AttritionProfile, scalar float64) AttritionProfile {
	return AttritionProfile{
		Ammo:     Round2(profile.Ammo * scalar),
		Fuel:     Round2(profile.Fuel * scalar),
		Entrench: Round2(profile.Entrench * scalar),
		Strength: Round2(profile.Strength * scalar),
	}
}
