package supply

import "github.com/ironveil/tactics-core/hexgrid"

// terrainOracle is the minimal terrain query the supply BFS needs.
// catalog.TerrainOracle satisfies this structurally.
type terrainOracle interface {
	InBounds(h hexgrid.Hex) bool
	Passable(h hexgrid.Hex) bool
	IsRoad(h hexgrid.Hex) bool
}

// ConnectedHexes returns the set of hexes reachable from sources (faction
// HQ ∪ base camp) by breadth-first search over passable tiles, with road
// tiles visited first at each frontier so the traversal order is
// deterministic and prefers roads as spec.md names.
func ConnectedHexes(oracle terrainOracle, sources []hexgrid.Hex) map[string]bool {
	visited := make(map[string]bool)
	var roadFrontier, plainFrontier []hexgrid.Hex
	for _, s := range sources {
		if !oracle.InBounds(s) || visited[s.Key()] {
			continue
		}
		visited[s.Key()] = true
		if oracle.IsRoad(s) {
			roadFrontier = append(roadFrontier, s)
		} else {
			plainFrontier = append(plainFrontier, s)
		}
	}
	frontier := append(roadFrontier, plainFrontier...)
	for len(frontier) > 0 {
		var nextRoad, nextPlain []hexgrid.Hex
		for _, h := range frontier {
			for _, n := range h.Neighbors() {
				if visited[n.Key()] || !oracle.InBounds(n) || !oracle.Passable(n) {
					continue
				}
				visited[n.Key()] = true
				if oracle.IsRoad(n) {
					nextRoad = append(nextRoad, n)
				} else {
					nextPlain = append(nextPlain, n)
				}
			}
		}
		frontier = append(nextRoad, nextPlain...)
	}
	return visited
}
