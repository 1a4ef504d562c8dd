package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ComputeTransform returns the affine matrix that maps a camera buffer of
// previewSize onto a viewWidth*viewHeight surface at the given device
// rotation, without distortion.
//
// The buffer arrives in sensor-native orientation, so its rectangle is built
// with width and height exchanged before any rotation is applied. At 90° and
// 270° the buffer rect is recentered on the view, stretched onto it, scaled
// uniformly so the dominant dimension still covers the view (the other may
// crop), and rotated about the view center by 90°*(code-2): -90° for
// Rotation90, +90° for Rotation270. At 180° only the half-turn is needed,
// and at 0° the buffer is already aligned.
//
// A zero-width previewSize means nothing is streaming yet and yields the
// identity.
func ComputeTransform(previewSize Size, viewWidth, viewHeight int, rotation Rotation) mgl64.Mat3 {
	m := mgl64.Ident3()
	if previewSize.Width == 0 {
		return m
	}

	vw, vh := float64(viewWidth), float64(viewHeight)
	cx, cy := vw/2, vh/2

	switch rotation {
	case Rotation90, Rotation270:
		bw, bh := float64(previewSize.Height), float64(previewSize.Width)
		m = rectToRect(vw, vh, cx-bw/2, cy-bh/2, bw, bh)
		scale := math.Max(vh/float64(previewSize.Height), vw/float64(previewSize.Width))
		m = scaleAbout(scale, scale, cx, cy).Mul3(m)
		m = rotateAbout(90*(float64(rotation)-2), cx, cy).Mul3(m)
	case Rotation180:
		m = rotateAbout(180, cx, cy)
	}

	return m
}

// rectToRect maps the rect (0,0,sw,sh) onto (dx,dy,dw,dh), scaling each axis
// independently.
func rectToRect(sw, sh, dx, dy, dw, dh float64) mgl64.Mat3 {
	return mgl64.Translate2D(dx, dy).Mul3(mgl64.Scale2D(dw/sw, dh/sh))
}

func scaleAbout(sx, sy, px, py float64) mgl64.Mat3 {
	return mgl64.Translate2D(px, py).
		Mul3(mgl64.Scale2D(sx, sy)).
		Mul3(mgl64.Translate2D(-px, -py))
}

func rotateAbout(degrees, px, py float64) mgl64.Mat3 {
	return mgl64.Translate2D(px, py).
		Mul3(mgl64.HomogRotate2D(mgl64.DegToRad(degrees))).
		Mul3(mgl64.Translate2D(-px, -py))
}

// Apply runs a point through the transform.
func Apply(m mgl64.Mat3, x, y float64) (float64, float64) {
	v := m.Mul3x1(mgl64.Vec3{x, y, 1})
	return v.X(), v.Y()
}

// RowMajor flattens the matrix into [row][col] form for wire encoding;
// mathgl stores matrices column-major.
func RowMajor(m mgl64.Mat3) [3][3]float64 {
	var out [3][3]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = m.At(row, col)
		}
	}
	return out
}
