package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func TestComputeTransformZeroPreview(t *testing.T) {
	for _, rotation := range []Rotation{Rotation0, Rotation90, Rotation180, Rotation270} {
		m := ComputeTransform(Size{}, 1920, 1080, rotation)
		if !m.ApproxEqualThreshold(mgl64.Ident3(), eps) {
			t.Fatalf("rotation %s: got %v, want identity", rotation, m)
		}
	}
}

func TestComputeTransformRotation0(t *testing.T) {
	m := ComputeTransform(Size{Width: 1280, Height: 720}, 640, 480, Rotation0)
	if !m.ApproxEqualThreshold(mgl64.Ident3(), eps) {
		t.Fatalf("got %v, want identity", m)
	}
}

func TestComputeTransformRotation180(t *testing.T) {
	m := ComputeTransform(Size{Width: 1920, Height: 1080}, 1920, 1080, Rotation180)

	checkPoint(t, m, 0, 0, 1920, 1080)
	checkPoint(t, m, 1920, 1080, 0, 0)
	checkPoint(t, m, 960, 540, 960, 540)
}

func TestComputeTransformRotation90(t *testing.T) {
	// Landscape view, landscape preview: the view rect maps onto itself
	// rotated a quarter turn.
	m := ComputeTransform(Size{Width: 1920, Height: 1080}, 1920, 1080, Rotation90)

	checkPoint(t, m, 0, 0, 0, 1080)
	checkPoint(t, m, 1920, 0, 0, 0)
	checkPoint(t, m, 1920, 1080, 1920, 0)
	checkPoint(t, m, 0, 1080, 1920, 1080)
	// Center stays fixed under every rotation.
	checkPoint(t, m, 960, 540, 960, 540)
}

func TestComputeTransformRotation270(t *testing.T) {
	// Same geometry as the 90° case, turned the other way.
	m := ComputeTransform(Size{Width: 1920, Height: 1080}, 1920, 1080, Rotation270)

	checkPoint(t, m, 0, 0, 1920, 0)
	checkPoint(t, m, 1920, 0, 1920, 1080)
	checkPoint(t, m, 1920, 1080, 0, 1080)
	checkPoint(t, m, 0, 1080, 0, 0)
}

func TestComputeTransformCoverScale(t *testing.T) {
	// Portrait view with a landscape buffer: the uniform scale must cover
	// the view in the dominant dimension, keeping the center fixed.
	m := ComputeTransform(Size{Width: 1920, Height: 1080}, 1080, 1920, Rotation90)

	checkPoint(t, m, 540, 960, 540, 960)

	// Aspect preserved: the image of the unit square's edges stay
	// perpendicular and equally scaled.
	x1, y1 := Apply(m, 0, 0)
	x2, y2 := Apply(m, 1, 0)
	x3, y3 := Apply(m, 0, 1)
	dx1, dy1 := x2-x1, y2-y1
	dx2, dy2 := x3-x1, y3-y1
	if dot := dx1*dx2 + dy1*dy2; dot > eps || dot < -eps {
		t.Fatalf("axes not perpendicular after transform, dot = %v", dot)
	}
	l1 := dx1*dx1 + dy1*dy1
	l2 := dx2*dx2 + dy2*dy2
	if !mgl64.FloatEqualThreshold(l1, l2, eps) {
		t.Fatalf("non-uniform scale: %v vs %v", l1, l2)
	}
}

func TestRowMajor(t *testing.T) {
	m := mgl64.Translate2D(3, 7)
	rm := RowMajor(m)
	if rm[0][2] != 3 || rm[1][2] != 7 {
		t.Fatalf("translation not in last column: %v", rm)
	}
	if rm[0][0] != 1 || rm[1][1] != 1 || rm[2][2] != 1 {
		t.Fatalf("diagonal not preserved: %v", rm)
	}
}

func checkPoint(t *testing.T, m mgl64.Mat3, x, y, wantX, wantY float64) {
	t.Helper()
	gotX, gotY := Apply(m, x, y)
	if !mgl64.FloatEqualThreshold(gotX, wantX, 1e-6) || !mgl64.FloatEqualThreshold(gotY, wantY, 1e-6) {
		t.Fatalf("(%v,%v) mapped to (%v,%v), want (%v,%v)", x, y, gotX, gotY, wantX, wantY)
	}
}
