package geometry

import "fmt"

// Rotation is the discrete device rotation reported by the display service.
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

// RotationFromDegrees maps 0/90/180/270 (mod 360, negative allowed) to a
// Rotation. Anything off the 90° grid is rejected.
func RotationFromDegrees(degrees int) (Rotation, error) {
	d := degrees % 360
	if d < 0 {
		d += 360
	}
	if d%90 != 0 {
		return Rotation0, fmt.Errorf("rotation %d is not a multiple of 90", degrees)
	}
	return Rotation(d / 90), nil
}

// NormalizeOrientation brings a sensor mounting orientation into [0,360) on
// the 90° grid.
func NormalizeOrientation(degrees int) (int, error) {
	d := degrees % 360
	if d < 0 {
		d += 360
	}
	if d%90 != 0 {
		return 0, fmt.Errorf("sensor orientation %d is not a multiple of 90", degrees)
	}
	return d, nil
}

// IsDimensionSwapped reports whether view and maximum dimensions must be
// exchanged before preview selection: the sensor's long edge and the
// display's long edge disagree when a 0°/180° device rotation meets a
// 90°/270° sensor mounting, or vice versa.
func IsDimensionSwapped(displayRotation Rotation, sensorOrientation int) bool {
	switch displayRotation {
	case Rotation0, Rotation180:
		return sensorOrientation == 90 || sensorOrientation == 270
	case Rotation90, Rotation270:
		return sensorOrientation == 0 || sensorOrientation == 180
	}
	return false
}

// jpegOrientations corrects for the usual 90° sensor mounting when tagging
// still output.
var jpegOrientations = map[Rotation]int{
	Rotation0:   90,
	Rotation90:  0,
	Rotation180: 270,
	Rotation270: 180,
}

// JPEGOrientation returns the orientation tag, in degrees, to write on a
// still captured at the given device rotation.
func JPEGOrientation(displayRotation Rotation) int {
	return jpegOrientations[displayRotation]
}
