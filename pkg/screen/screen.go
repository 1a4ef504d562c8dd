// Package screen holds the user-selected preview display strategy and the
// display aspect ratio derived from it.
package screen

import (
	"errors"
	"fmt"

	"preview-planner/pkg/geometry"
)

// Mode is the preview display strategy. WidthMatch fills the view width
// preserving the capture aspect ratio; FullScreen matches the device
// display ratio instead.
type Mode int

const (
	WidthMatch Mode = iota
	FullScreen
)

const (
	widthMatchName = "widthMatch"
	fullScreenName = "fullScreen"
)

func (m Mode) String() string {
	if m == FullScreen {
		return fullScreenName
	}
	return widthMatchName
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case widthMatchName:
		return WidthMatch, nil
	case fullScreenName:
		return FullScreen, nil
	}
	return WidthMatch, fmt.Errorf("unknown display mode %q", s)
}

var ErrZeroDisplay = errors.New("display width must be positive")

// State owns the current Mode and the screen ratio (display height over
// width). The ratio is only meaningful in FullScreen mode and must be
// refreshed after any display geometry change before sizes are selected.
// One State belongs to one preview session; it does no locking of its own.
type State struct {
	mode  Mode
	ratio float64
}

func NewState(mode Mode, display geometry.Size) (*State, error) {
	s := &State{}
	if err := s.SetMode(mode, display); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMode switches the display strategy and recomputes the screen ratio
// from the given display size. A zero display width leaves the ratio
// undefined, so it is rejected outright.
func (s *State) SetMode(mode Mode, display geometry.Size) error {
	if display.Width == 0 {
		return ErrZeroDisplay
	}
	s.mode = mode
	s.ratio = float64(display.Height) / float64(display.Width)
	return nil
}

// UpdateDisplay refreshes the ratio after a rotation or window resize.
// The mode never changes here; only SetMode switches it.
func (s *State) UpdateDisplay(display geometry.Size) error {
	return s.SetMode(s.mode, display)
}

func (s *State) Mode() Mode {
	return s.mode
}

// Ratio is display height over width, as last computed.
func (s *State) Ratio() float64 {
	return s.ratio
}

// Policy maps the mode to the capture-size ranking SizeSelector should use.
func (s *State) Policy() geometry.Policy {
	if s.mode == FullScreen {
		return geometry.PolicyClosestRatio
	}
	return geometry.PolicyMaxArea
}
