package planner

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"preview-planner/pkg/geometry"
	"preview-planner/pkg/screen"
)

var (
	captureCandidates = []geometry.Size{
		{Width: 4000, Height: 3000},
		{Width: 1920, Height: 1080},
		{Width: 640, Height: 480},
	}
	previewCandidates = []geometry.Size{
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 960},
		{Width: 1280, Height: 720},
		{Width: 640, Height: 480},
		{Width: 320, Height: 240},
	}
)

func TestPlanFullScreen(t *testing.T) {
	s, err := NewSession(screen.FullScreen, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	// Rotation 0 with a 90° sensor: dimensions swap, and the display ratio
	// seen by selection is 1920/1080 after the swap-aware update.
	plan, err := s.Plan(Request{
		CaptureCandidates: captureCandidates,
		PreviewCandidates: previewCandidates,
		SensorOrientation: 90,
		Rotation:          geometry.Rotation0,
		ViewWidth:         1080,
		ViewHeight:        1920,
		DisplayWidth:      1080,
		DisplayHeight:     1920,
	})
	checkErr(t, err)

	if !plan.Swapped {
		t.Fatal("rotation 0 with 90° sensor should swap dimensions")
	}
	// screenRatio = 1920/1080 ≈ 1.778: the exact 16:9 candidate wins.
	if want := (geometry.Size{Width: 1920, Height: 1080}); plan.CaptureSize != want {
		t.Fatalf("capture size %s, want %s", plan.CaptureSize, want)
	}
	// Swapped view is 1920*1080; the smallest 16:9 candidate covering it
	// within the swapped display bounds is 1920*1080 itself.
	if want := (geometry.Size{Width: 1920, Height: 1080}); plan.PreviewSize != want {
		t.Fatalf("preview size %s, want %s", plan.PreviewSize, want)
	}
	if plan.JPEGOrientation != 90 {
		t.Fatalf("jpeg orientation %d, want 90", plan.JPEGOrientation)
	}
	// Rotation 0 never reshapes the buffer.
	if !plan.Transform.ApproxEqualThreshold(mgl64.Ident3(), 1e-9) {
		t.Fatalf("transform %v, want identity", plan.Transform)
	}
}

func TestPlanWidthMatch(t *testing.T) {
	s, err := NewSession(screen.WidthMatch, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	plan, err := s.Plan(Request{
		CaptureCandidates: captureCandidates,
		PreviewCandidates: previewCandidates,
		SensorOrientation: 0,
		Rotation:          geometry.Rotation0,
		ViewWidth:         1080,
		ViewHeight:        810,
		DisplayWidth:      1080,
		DisplayHeight:     1920,
	})
	checkErr(t, err)

	if plan.Swapped {
		t.Fatal("aligned sensor should not swap")
	}
	// Max area regardless of ratio.
	if want := (geometry.Size{Width: 4000, Height: 3000}); plan.CaptureSize != want {
		t.Fatalf("capture size %s, want %s", plan.CaptureSize, want)
	}
	// 4:3 aspect, view 1080*810, display bounds only 1080 wide: nothing 4:3
	// both fits and covers, so the largest undersized 4:3 candidate wins.
	if want := (geometry.Size{Width: 640, Height: 480}); plan.PreviewSize != want {
		t.Fatalf("preview size %s, want %s", plan.PreviewSize, want)
	}
}

func TestPlanRefreshesRatioOnRotate(t *testing.T) {
	s, err := NewSession(screen.FullScreen, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	// Device now landscape: ratio must follow the request, not the value
	// captured at session creation.
	_, err = s.Plan(Request{
		CaptureCandidates: captureCandidates,
		PreviewCandidates: previewCandidates,
		Rotation:          geometry.Rotation90,
		ViewWidth:         1920,
		ViewHeight:        1080,
		DisplayWidth:      1920,
		DisplayHeight:     1080,
	})
	checkErr(t, err)

	if got, want := s.Ratio(), 1080.0/1920.0; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestPlanZeroDisplayFullScreen(t *testing.T) {
	s, err := NewSession(screen.FullScreen, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	_, err = s.Plan(Request{
		CaptureCandidates: captureCandidates,
		PreviewCandidates: previewCandidates,
		ViewWidth:         1080,
		ViewHeight:        1920,
	})
	if !errors.Is(err, screen.ErrZeroDisplay) {
		t.Fatalf("got %v, want ErrZeroDisplay", err)
	}
}

func TestPlanEmptyCandidates(t *testing.T) {
	s, err := NewSession(screen.WidthMatch, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	plan, err := s.Plan(Request{
		Rotation:      geometry.Rotation0,
		ViewWidth:     1080,
		ViewHeight:    1920,
		DisplayWidth:  1080,
		DisplayHeight: 1920,
	})
	checkErr(t, err)

	// No candidates is a logical condition, not an error: the zero sentinel
	// tells the caller to skip buffer configuration.
	if !plan.CaptureSize.IsZero() || !plan.PreviewSize.IsZero() {
		t.Fatalf("expected zero sentinels, got capture %s preview %s", plan.CaptureSize, plan.PreviewSize)
	}
}

func TestPlanBadSensorOrientation(t *testing.T) {
	s, err := NewSession(screen.WidthMatch, geometry.Size{Width: 1080, Height: 1920})
	checkErr(t, err)

	_, err = s.Plan(Request{
		SensorOrientation: 45,
		ViewWidth:         1080,
		ViewHeight:        1920,
	})
	if err == nil {
		t.Fatal("expected error for off-grid sensor orientation")
	}
}

func checkErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
