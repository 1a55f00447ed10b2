package airmission

import "math"

// RefitStrength computes the onboard strength restored by a completed
// refit: min(100, round(strength * factor)). factor is
// engineconfig.AirConfig.RefitStrengthFactor (spec.md's x1.1, applied to
// all refitted aircraft per the Open Question in spec.md §9).
func RefitStrength(strength int, factor float64) int {
	restored := int(math.Round(float64(strength) * factor))
	if restored > 100 {
		return 100
	}
	return restored
}

// RefitAmmoPool returns a freshly restored ammo pool at baseline values.
func RefitAmmoPool(baseAir, baseGround int) AmmoPool {
	return AmmoPool{Air: baseAir, Ground: baseGround, NeedsRearm: false}
}
