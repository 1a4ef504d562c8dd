// Package planner ties the geometry selectors and the screen-mode state
// into one preview session: candidate lists plus a view/display snapshot in,
// a complete preview plan out.
package planner

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"preview-planner/pkg/geometry"
	"preview-planner/pkg/screen"
)

// Request is one view/display geometry snapshot. The caller supplies fresh
// values on every call; nothing here is cached between requests.
type Request struct {
	CaptureCandidates []geometry.Size
	PreviewCandidates []geometry.Size

	SensorOrientation int
	Rotation          geometry.Rotation

	ViewWidth, ViewHeight       int
	DisplayWidth, DisplayHeight int
}

// Plan is the complete geometry decision for one request. CaptureSize and
// PreviewSize may be the zero sentinel when no candidate was usable; check
// before configuring buffers.
type Plan struct {
	Swapped         bool
	CaptureSize     geometry.Size
	PreviewSize     geometry.Size
	Transform       mgl64.Mat3
	JPEGOrientation int
}

// Session is an explicitly owned planning context for one preview surface.
// It replaces any process-wide camera singleton: create one per surface and
// serialize calls into it.
type Session struct {
	state *screen.State
}

func NewSession(mode screen.Mode, display geometry.Size) (*Session, error) {
	state, err := screen.NewState(mode, display)
	if err != nil {
		return nil, err
	}
	return &Session{state: state}, nil
}

// SetMode switches the display strategy, recomputing the screen ratio.
func (s *Session) SetMode(mode screen.Mode, display geometry.Size) error {
	return s.state.SetMode(mode, display)
}

func (s *Session) Mode() screen.Mode {
	return s.state.Mode()
}

func (s *Session) Ratio() float64 {
	return s.state.Ratio()
}

// Plan resolves the whole preview geometry for one request: capture size
// per the current mode, dimension swap, preview size against the (possibly
// swapped) view and display bounds, the buffer-to-view transform, and the
// orientation tag for stills.
func (s *Session) Plan(req Request) (*Plan, error) {
	sensor, err := geometry.NormalizeOrientation(req.SensorOrientation)
	if err != nil {
		return nil, err
	}

	// Full-screen selection ranks by the display ratio, which must be
	// recomputed from this request's display geometry.
	if s.state.Mode() == screen.FullScreen {
		display := geometry.Size{Width: req.DisplayWidth, Height: req.DisplayHeight}
		if err := s.state.UpdateDisplay(display); err != nil {
			return nil, fmt.Errorf("refresh display ratio: %w", err)
		}
	}

	captureSize := geometry.SelectCaptureSize(req.CaptureCandidates, s.state.Policy(), s.state.Ratio())

	swapped := geometry.IsDimensionSwapped(req.Rotation, sensor)
	viewW, viewH := req.ViewWidth, req.ViewHeight
	maxW, maxH := req.DisplayWidth, req.DisplayHeight
	if swapped {
		viewW, viewH = viewH, viewW
		maxW, maxH = maxH, maxW
	}

	previewSize := geometry.SelectPreviewSize(req.PreviewCandidates, captureSize, viewW, viewH, maxW, maxH)

	return &Plan{
		Swapped:         swapped,
		CaptureSize:     captureSize,
		PreviewSize:     previewSize,
		Transform:       geometry.ComputeTransform(previewSize, req.ViewWidth, req.ViewHeight, req.Rotation),
		JPEGOrientation: geometry.JPEGOrientation(req.Rotation),
	}, nil
}
