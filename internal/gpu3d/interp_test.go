package gpu3d

import "testing"

func TestRgba5ToRgba6Endpoints(t *testing.T) {
	// Channel 0 -> 0 and 31 -> 63
	if got := rgba5ToRgba6(0); got != 0 {
		t.Fatalf("rgba5ToRgba6(0) = %#x, want 0", got)
	}
	white := rgba5ToRgba6((0x1F << 15) | (0x1F << 10) | (0x1F << 5) | 0x1F)
	want := uint32((0x3F << 18) | (0x3F << 12) | (0x3F << 6) | 0x3F)
	if white != want {
		t.Fatalf("rgba5ToRgba6(white) = %#x, want %#x", white, want)
	}
}

func TestRgba5ToRgba6Monotone(t *testing.T) {
	prev := uint32(0)
	for c5 := uint32(0); c5 < 32; c5++ {
		c6 := rgba5ToRgba6(c5) & 0x3F
		if c5 > 0 && c6 <= prev {
			t.Fatalf("channel expansion not monotone: c5=%d -> %d, previous %d", c5, c6, prev)
		}
		prev = c6
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	if got := interpolate(100, 900, 10, 10, 50); got != 100 {
		t.Errorf("interpolate at x1 = %d, want 100", got)
	}
	if got := interpolate(100, 900, 10, 50, 50); got != 900 {
		t.Errorf("interpolate at x2 = %d, want 900", got)
	}
	// Midpoint of an even range is exact
	if got := interpolate(0, 100, 0, 50, 100); got != 50 {
		t.Errorf("interpolate midpoint = %d, want 50", got)
	}
}

func TestInterpolateNegativeValues(t *testing.T) {
	// Truncation toward zero, matching the integer division semantics
	if got := interpolate(-100, 100, 0, 25, 100); got != -50 {
		t.Errorf("interpolate(-100,100 @25/100) = %d, want -50", got)
	}
}

func TestInterpolatePerspEndpoints(t *testing.T) {
	if got := interpolatePersp(7, 900, 0, 0, 64, 0x1000, 0x200); got != 7 {
		t.Errorf("perspective interpolate at x1 = %d, want 7", got)
	}
	if got := interpolatePersp(7, 900, 0, 64, 64, 0x1000, 0x200); got != 900 {
		t.Errorf("perspective interpolate at x2 = %d, want 900", got)
	}
	// Equal W's reduce to linear interpolation
	if got := interpolatePersp(0, 100, 0, 50, 100, 0x1000, 0x1000); got != 50 {
		t.Errorf("perspective interpolate equal W = %d, want 50", got)
	}
}

func TestInterpolateWEndpoints(t *testing.T) {
	if got := interpolateW(0x1000, 0x200, 0, 0, 64); got != 0x1000 {
		t.Errorf("interpolateW at x1 = %#x, want 0x1000", got)
	}
	if got := interpolateW(0x1000, 0x200, 0, 64, 64); got != 0x200 {
		t.Errorf("interpolateW at x2 = %#x, want 0x200", got)
	}
	if got := interpolateW(0x1000, 0x1000, 0, 13, 64); got != 0x1000 {
		t.Errorf("interpolateW equal W = %#x, want 0x1000", got)
	}
}

func TestInterpolateColorAlphaIsMax(t *testing.T) {
	c1 := uint32(0x10<<18 | 0x3F)      // alpha 0x10, red 0x3F
	c2 := uint32(0x30<<18 | 0x3F<<12)  // alpha 0x30, blue 0x3F
	for _, x := range []int{0, 16, 48, 63} {
		got := interpolateColor(c1, c2, 0, x, 63) >> 18
		if got != 0x30 {
			t.Errorf("alpha at x=%d is %#x, want max 0x30", x, got)
		}
		got = interpolateColorPersp(c1, c2, 0, x, 63, 0x1000, 0x800) >> 18
		if got != 0x30 {
			t.Errorf("perspective alpha at x=%d is %#x, want max 0x30", x, got)
		}
	}
}

func TestInterpolateColorChannels(t *testing.T) {
	red := uint32(0x3F<<18 | 0x3F)
	blue := uint32(0x3F<<18 | 0x3F<<12)
	mid := interpolateColor(red, blue, 0, 31, 63)
	if r := mid & 0x3F; r != 32 {
		t.Errorf("red at midpoint = %d, want 32", r)
	}
	if b := (mid >> 12) & 0x3F; b != 31 {
		t.Errorf("blue at midpoint = %d, want 31", b)
	}
	if g := (mid >> 6) & 0x3F; g != 0 {
		t.Errorf("green at midpoint = %d, want 0", g)
	}
}
