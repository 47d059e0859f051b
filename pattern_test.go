package coverstudio

import (
	"math/rand"
	"testing"
)

// --- tileStep ---

func TestTileStep(t *testing.T) {
	l := testLayer(100, 50)
	l.Fill.Spacing = 20
	sx, sy := tileStep(l)
	assertNear(t, "stepX", sx, 120)
	assertNear(t, "stepY", sy, 70)

	l.Scale = 0.5
	sx, sy = tileStep(l)
	assertNear(t, "scaled stepX", sx, 70)
	assertNear(t, "scaled stepY", sy, 45)
}

func TestTileStepNeverStalls(t *testing.T) {
	// A large negative spacing must not produce a zero or negative step.
	l := testLayer(40, 40)
	l.Fill.Spacing = -1000
	sx, sy := tileStep(l)
	if sx < 1 || sy < 1 {
		t.Errorf("tileStep = (%v, %v), want at least 1 each", sx, sy)
	}
}

// --- scatter ---

func TestScatterCountFloor(t *testing.T) {
	// One huge tile on a small canvas still gets the minimum count.
	l := testLayer(800, 800)
	if got := scatterCount(l, 200, 200); got != minScatterCount {
		t.Errorf("scatterCount = %d, want floor %d", got, minScatterCount)
	}
}

func TestScatterCountGrowsWithCanvas(t *testing.T) {
	l := testLayer(50, 50)
	small := scatterCount(l, 500, 500)
	large := scatterCount(l, 1500, 600)
	if small <= minScatterCount {
		t.Errorf("expected more than the floor for a 500x500 canvas, got %d", small)
	}
	if large <= small {
		t.Errorf("larger canvas must get more placements: %d <= %d", large, small)
	}
}

func TestComputeScatterRandom(t *testing.T) {
	l := testLayer(60, 60)
	l.Fill.Kind = PatternRandom
	rng := rand.New(rand.NewSource(1))

	entries := computeScatter(rng, l, 1080, 1080)
	if len(entries) < minScatterCount {
		t.Fatalf("got %d entries, want at least %d", len(entries), minScatterCount)
	}
	for i, e := range entries {
		// Positions stay within the canvas padded by one tile per side.
		if e.Offset.X < -60 || e.Offset.X > 1140 || e.Offset.Y < -60 || e.Offset.Y > 1140 {
			t.Fatalf("entry %d offset %v outside the padded canvas", i, e.Offset)
		}
		if e.Rotation < 0 || e.Rotation >= 360 {
			t.Fatalf("entry %d rotation %v outside [0, 360)", i, e.Rotation)
		}
		if e.Scale != 1 {
			t.Fatalf("random scatter has no scale jitter, entry %d has %v", i, e.Scale)
		}
	}
}

func TestComputeScatterSpread(t *testing.T) {
	l := testLayer(60, 60)
	l.Fill.Kind = PatternSpread
	rng := rand.New(rand.NewSource(2))

	for i, e := range computeScatter(rng, l, 1080, 1080) {
		if e.Rotation < -spreadMaxRotation || e.Rotation > spreadMaxRotation {
			t.Fatalf("entry %d rotation %v outside spread bounds", i, e.Rotation)
		}
		if e.Scale < spreadMinScale || e.Scale > spreadMaxScale {
			t.Fatalf("entry %d scale %v outside spread bounds", i, e.Scale)
		}
	}
}

func TestComputeScatterDeterministicPerSeed(t *testing.T) {
	l := testLayer(60, 60)
	l.Fill.Kind = PatternRandom

	a := computeScatter(rand.New(rand.NewSource(7)), l, 500, 500)
	b := computeScatter(rand.New(rand.NewSource(7)), l, 500, 500)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs across identical seeds", i)
		}
	}
}

func TestComputeScatterNilForTilePatterns(t *testing.T) {
	l := testLayer(60, 60)
	for _, kind := range []PatternKind{PatternNone, PatternGrid, PatternBrick, PatternDiamonds, PatternMirror} {
		l.Fill.Kind = kind
		if got := computeScatter(rand.New(rand.NewSource(1)), l, 500, 500); got != nil {
			t.Errorf("computeScatter for %v = %d entries, want nil", kind, len(got))
		}
	}
}

// --- tileAdjust ---

func TestTileAdjust(t *testing.T) {
	tests := []struct {
		name    string
		kind    PatternKind
		col     int
		row     int
		wantDx  float64
		wantRot float64
	}{
		{"grid even row", PatternGrid, 0, 0, 0, 0},
		{"grid odd row", PatternGrid, 0, 1, 0, 0},
		{"brick even row", PatternBrick, 2, 0, 0, 0},
		{"brick odd row", PatternBrick, 2, 1, 50, 0},
		{"brick negative odd row", PatternBrick, 0, -1, 50, 0},
		{"diamonds any cell", PatternDiamonds, 3, 4, 0, 45},
		{"mirror even row", PatternMirror, 1, 2, 0, 0},
		{"mirror odd row", PatternMirror, 1, 3, 0, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, rot := tileAdjust(tt.kind, tt.col, tt.row, 100)
			assertNear(t, "dx", dx, tt.wantDx)
			assertNear(t, "rotation", rot, tt.wantRot)
		})
	}
}
