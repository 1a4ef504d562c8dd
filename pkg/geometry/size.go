package geometry

import "fmt"

// Size is a width/height pair in pixels. It describes capture resolutions,
// preview resolutions and view/display rectangles alike. The zero value is
// the "no valid size" sentinel returned by the selectors when no candidate
// is usable; callers must check IsZero before configuring buffers with it.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Area() int64 {
	return int64(s.Width) * int64(s.Height)
}

// Ratio is width over height in the unswapped sensor orientation.
func (s Size) Ratio() float64 {
	return float64(s.Width) / float64(s.Height)
}

func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%d*%d", s.Width, s.Height)
}
