package geometry

import "testing"

func TestIsDimensionSwapped(t *testing.T) {
	tests := []struct {
		rotation Rotation
		sensor   int
		want     bool
	}{
		{Rotation0, 0, false},
		{Rotation0, 90, true},
		{Rotation0, 270, true},
		{Rotation90, 0, true},
		{Rotation90, 90, false},
		{Rotation180, 270, true},
		{Rotation180, 180, false},
		{Rotation270, 180, true},
		{Rotation270, 90, false},
	}

	for _, tt := range tests {
		got := IsDimensionSwapped(tt.rotation, tt.sensor)
		if got != tt.want {
			t.Errorf("IsDimensionSwapped(%s, %d) = %v, want %v", tt.rotation, tt.sensor, got, tt.want)
		}
	}
}

func TestRotationFromDegrees(t *testing.T) {
	tests := []struct {
		degrees int
		want    Rotation
	}{
		{0, Rotation0},
		{90, Rotation90},
		{180, Rotation180},
		{270, Rotation270},
		{360, Rotation0},
		{-90, Rotation270},
	}
	for _, tt := range tests {
		got, err := RotationFromDegrees(tt.degrees)
		if err != nil {
			t.Fatalf("RotationFromDegrees(%d): %v", tt.degrees, err)
		}
		if got != tt.want {
			t.Errorf("RotationFromDegrees(%d) = %s, want %s", tt.degrees, got, tt.want)
		}
	}

	if _, err := RotationFromDegrees(45); err == nil {
		t.Error("expected error for 45°")
	}
}

func TestNormalizeOrientation(t *testing.T) {
	got, err := NormalizeOrientation(-270)
	if err != nil {
		t.Fatal(err)
	}
	if got != 90 {
		t.Fatalf("got %d, want 90", got)
	}

	if _, err := NormalizeOrientation(30); err == nil {
		t.Error("expected error for 30°")
	}
}

func TestJPEGOrientation(t *testing.T) {
	tests := []struct {
		rotation Rotation
		want     int
	}{
		{Rotation0, 90},
		{Rotation90, 0},
		{Rotation180, 270},
		{Rotation270, 180},
	}
	for _, tt := range tests {
		if got := JPEGOrientation(tt.rotation); got != tt.want {
			t.Errorf("JPEGOrientation(%s) = %d, want %d", tt.rotation, got, tt.want)
		}
	}
}
