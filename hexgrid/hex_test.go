package hexgrid

import "testing"

func TestKeyRoundTripsThroughParseKey(t *testing.T) {
	h := Hex{Q: 3, R: -5}
	got, err := ParseKey(h.Key())
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if got != h {
		t.Errorf("ParseKey(%q) = %v, want %v", h.Key(), got, h)
	}
}

func TestParseKeyRejectsMalformedInput(t *testing.T) {
	for _, key := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		if _, err := ParseKey(key); err == nil {
			t.Errorf("ParseKey(%q) = nil error, want error", key)
		}
	}
}

func TestNeighborsAreAllDistanceOne(t *testing.T) {
	center := Hex{Q: 0, R: 0}
	for _, n := range center.Neighbors() {
		if d := Distance(center, n); d != 1 {
			t.Errorf("Distance(center, %v) = %d, want 1", n, d)
		}
	}
}

func TestDistanceIsSymmetricAndZeroAtSelf(t *testing.T) {
	a := Hex{Q: 2, R: -3}
	b := Hex{Q: -1, R: 4}
	if Distance(a, a) != 0 {
		t.Errorf("Distance(a, a) = %d, want 0", Distance(a, a))
	}
	if Distance(a, b) != Distance(b, a) {
		t.Errorf("Distance not symmetric: %d vs %d", Distance(a, b), Distance(b, a))
	}
}

func TestRingRadiusZeroIsJustCenter(t *testing.T) {
	center := Hex{Q: 1, R: 1}
	ring := Ring(center, 0)
	if len(ring) != 1 || ring[0] != center {
		t.Errorf("Ring(center, 0) = %v, want [center]", ring)
	}
}

func TestRingMembersAreAllAtExactRadius(t *testing.T) {
	center := Hex{Q: 0, R: 0}
	for _, radius := range []int{1, 2, 3} {
		ring := Ring(center, radius)
		if len(ring) != 6*radius {
			t.Fatalf("Ring(center, %d) len = %d, want %d", radius, len(ring), 6*radius)
		}
		for _, h := range ring {
			if d := Distance(center, h); d != radius {
				t.Errorf("Ring(center, %d) member %v at distance %d", radius, h, d)
			}
		}
	}
}

func TestWithinRadiusIncludesCenterAndEveryRing(t *testing.T) {
	center := Hex{Q: 0, R: 0}
	got := WithinRadius(center, 2)
	want := 1 + 6*1 + 6*2
	if len(got) != want {
		t.Errorf("WithinRadius(center, 2) len = %d, want %d", len(got), want)
	}
	if got[0] != center {
		t.Errorf("WithinRadius first element = %v, want center", got[0])
	}
}

func TestOddQRoundTrip(t *testing.T) {
	for _, h := range []Hex{{0, 0}, {3, -2}, {-4, 5}, {1, 1}} {
		if got := h.ToOddQ().ToHex(); got != h {
			t.Errorf("ToOddQ/ToHex round trip for %v = %v", h, got)
		}
	}
}

func TestLineEndpointsMatchInputs(t *testing.T) {
	a := Hex{Q: 0, R: 0}
	b := Hex{Q: 3, R: -2}
	line := Line(a, b)
	if line[0] != a {
		t.Errorf("Line first = %v, want %v", line[0], a)
	}
	if line[len(line)-1] != b {
		t.Errorf("Line last = %v, want %v", line[len(line)-1], b)
	}
	if len(line) != Distance(a, b)+1 {
		t.Errorf("Line len = %d, want %d", len(line), Distance(a, b)+1)
	}
}

func TestLineSameHexIsSingleElement(t *testing.T) {
	h := Hex{Q: 2, R: 2}
	line := Line(h, h)
	if len(line) != 1 || line[0] != h {
		t.Errorf("Line(h, h) = %v, want [h]", line)
	}
}

type blockerSet map[Hex]bool

func (b blockerSet) BlocksLOS(h Hex) bool { return b[h] }

func TestHasLOSClearWhenNothingBlocks(t *testing.T) {
	a, b := Hex{0, 0}, Hex{4, 0}
	if !HasLOS(blockerSet{}, a, b, false) {
		t.Error("HasLOS with no blockers = false, want true")
	}
}

func TestHasLOSBlockedByIntermediateHex(t *testing.T) {
	a, b := Hex{0, 0}, Hex{4, 0}
	mid := Line(a, b)[2]
	blockers := blockerSet{mid: true}
	if HasLOS(blockers, a, b, false) {
		t.Error("HasLOS with blocker on line = true, want false")
	}
}

func TestHasLOSIgnoresEndpointBlockers(t *testing.T) {
	a, b := Hex{0, 0}, Hex{4, 0}
	blockers := blockerSet{a: true, b: true}
	if !HasLOS(blockers, a, b, false) {
		t.Error("HasLOS with only endpoints blocking = false, want true")
	}
}

func TestHasLOSAdvancedAirAttackerIgnoresBlockers(t *testing.T) {
	a, b := Hex{0, 0}, Hex{4, 0}
	mid := Line(a, b)[2]
	blockers := blockerSet{mid: true}
	if !HasLOS(blockers, a, b, true) {
		t.Error("HasLOS advanced air attacker = false, want true (should ignore terrain)")
	}
}
