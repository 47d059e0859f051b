package coverstudio

import (
	"testing"

	"github.com/google/uuid"
)

// --- newLayer fit scale ---

func TestNewLayerFitScale(t *testing.T) {
	tests := []struct {
		name      string
		imgW      int
		imgH      int
		wantScale float64
	}{
		{"smaller than canvas keeps 1", 400, 300, 1},
		{"exact fit keeps 1", 1000, 800, 1},
		{"too wide shrinks by width", 2000, 400, 0.5},
		{"too tall shrinks by height", 400, 1600, 0.5},
		{"both too big shrinks by worst axis", 4000, 1600, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayer(solidSource(tt.imgW, tt.imgH), 1000, 800)
			assertNear(t, "scale", l.Scale, tt.wantScale)
		})
	}
}

func TestNewLayerCenteredOnCanvas(t *testing.T) {
	l := newLayer(solidSource(100, 100), 1080, 1080)
	assertVec(t, "position", l.Position, Vec2{540, 540})
	assertNear(t, "opacity", l.Opacity, 1)
	if l.ID == (uuid.UUID{}) {
		t.Error("layer must get a non-zero id")
	}
}

func TestNewLayerCapturesInitialState(t *testing.T) {
	l := newLayer(solidSource(2000, 400), 1000, 800)
	if !l.Unmodified() {
		t.Fatal("fresh layer must report Unmodified")
	}

	l.Position = Vec2{10, 10}
	if l.Unmodified() {
		t.Error("moved layer must not report Unmodified")
	}

	l.applyState(l.InitialState())
	if !l.Unmodified() {
		t.Error("restoring the initial state must report Unmodified again")
	}
	assertNear(t, "restored scale", l.Scale, 0.5)
}

// --- clamp ---

func TestClampRanges(t *testing.T) {
	l := testLayer(10, 10)

	l.Scale = 0.001
	l.Opacity = -0.5
	l.Rotation = 200
	l.clamp()
	assertNear(t, "scale floor", l.Scale, MinScale)
	assertNear(t, "opacity floor", l.Opacity, 0)
	assertNear(t, "rotation wrap", l.Rotation, -160)

	l.Scale = 99
	l.Opacity = 1.5
	l.Rotation = -180
	l.clamp()
	assertNear(t, "scale ceiling", l.Scale, MaxScale)
	assertNear(t, "opacity ceiling", l.Opacity, 1)
	assertNear(t, "rotation -180 maps to 180", l.Rotation, 180)
}

// --- PatternFill ---

func TestScatterAccessor(t *testing.T) {
	f := PatternFill{Kind: PatternGrid}
	if f.Scatter() != nil {
		t.Error("tile patterns carry no scatter")
	}

	f = PatternFill{Kind: PatternRandom, scatter: []ScatterEntry{{Scale: 1}}}
	if len(f.Scatter()) != 1 {
		t.Error("scatter accessor must expose the cache")
	}
}
