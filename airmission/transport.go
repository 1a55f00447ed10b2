package airmission

import (
	"math/rand"

	"github.com/ironveil/tactics-core/hexgrid"
)

// AirborneReserveKey is the reserve allocation key transport missions
// consume when the dropped unit has no more specific type key.
const AirborneReserveKey = "airborneDetachment"

// ParatrooperTypeKey is the unit type key transport missions also accept
// as an airborne reserve.
const ParatrooperTypeKey = "Paratrooper"

// ScatterCandidates returns every hex within radius of center except
// center itself, in a
// deterministic order shuffled by rng — the only place in the engine a
// seeded PRNG drives placement, per spec.md's carve-out for scatter.
// The caller filters this list down to the first in-bounds, unoccupied
// hex.
func ScatterCandidates(rng *rand.Rand, center hexgrid.Hex, radius int) []hexgrid.Hex {
	hexes := hexgrid.WithinRadius(center, radius)
	if len(hexes) <= 1 {
		return hexes
	}
	// Exclude the center itself; the whole point of scattering is that
	// center was occupied.
	candidates := append([]hexgrid.Hex(nil), hexes[1:]...)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates
}
