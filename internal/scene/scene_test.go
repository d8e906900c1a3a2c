package scene

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/DSEmulator/internal/gpu3d"
)

func TestAllScenesHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All() {
		if s.Name() == "" {
			t.Fatalf("scene %T has an empty name", s)
		}
		if seen[s.Name()] {
			t.Fatalf("duplicate scene name %q", s.Name())
		}
		seen[s.Name()] = true
	}
}

func TestByName(t *testing.T) {
	if s := ByName("shadow"); s == nil {
		t.Fatal("shadow scene not found")
	}
	if s := ByName("no-such-scene"); s != nil {
		t.Fatalf("unexpected scene %q", s.Name())
	}
}

func TestScenesRenderThreeFrames(t *testing.T) {
	for _, s := range All() {
		r := gpu3d.New()
		s.Setup(r)
		for frame := 0; frame < 3; frame++ {
			r.InstallPolygons(s.Polygons(frame))
			for line := 0; line < gpu3d.ScreenHeight; line++ {
				r.DrawScanline(line)
			}
		}
		r.Close()
	}
}

func TestPolygonsStayOnScreen(t *testing.T) {
	for _, s := range All() {
		for _, frame := range []int{0, 97, 511} {
			for i, p := range s.Polygons(frame) {
				for _, v := range p.Vertices[:p.Size] {
					if v.X < 0 || v.X > gpu3d.ScreenWidth || v.Y < 0 || v.Y > gpu3d.ScreenHeight {
						t.Errorf("%s polygon %d vertex (%d,%d) off screen at frame %d",
							s.Name(), i, v.X, v.Y, frame)
					}
				}
			}
		}
	}
}

func TestBounce(t *testing.T) {
	if got := bounce(0, 10); got != 0 {
		t.Errorf("bounce(0) = %d, want 0", got)
	}
	if got := bounce(10, 10); got != 10 {
		t.Errorf("bounce(10) = %d, want 10", got)
	}
	if got := bounce(15, 10); got != 5 {
		t.Errorf("bounce(15) = %d, want 5", got)
	}
	if got := bounce(20, 10); got != 0 {
		t.Errorf("bounce(20) = %d, want 0", got)
	}
}
