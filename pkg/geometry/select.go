package geometry

import "math"

// Streaming buffers above 1080p cost more than the preview can show, so
// requested maximums are clamped before any candidate is considered.
const (
	MaxPreviewWidth  = 1920
	MaxPreviewHeight = 1080
)

// Policy is the ranking used when choosing a still-capture size.
type Policy int

const (
	// PolicyMaxArea picks the largest candidate by pixel area.
	PolicyMaxArea Policy = iota
	// PolicyClosestRatio picks the candidate whose aspect ratio is nearest
	// to a target screen ratio.
	PolicyClosestRatio
)

// SelectCaptureSize chooses the still-capture resolution from candidates.
// screenRatio (display height over width) is only consulted by
// PolicyClosestRatio. Zero-area candidates never win, and an empty or
// all-zero candidate list yields the zero sentinel rather than an error.
func SelectCaptureSize(candidates []Size, policy Policy, screenRatio float64) Size {
	var best Size
	switch policy {
	case PolicyClosestRatio:
		bestDiff := math.MaxFloat64
		for _, c := range candidates {
			if c.IsZero() {
				continue
			}
			diff := math.Abs(c.Ratio() - screenRatio)
			if best.IsZero() || diff < bestDiff {
				best = c
				bestDiff = diff
			}
		}
	default:
		for _, c := range candidates {
			if c.IsZero() {
				continue
			}
			if best.IsZero() || c.Area() > best.Area() {
				best = c
			}
		}
	}

	return best
}

// SelectPreviewSize chooses the streaming resolution that matches the
// aspect ratio of targetAspect (normally the chosen capture size) while
// fitting the view. viewWidth/viewHeight and maxWidth/maxHeight must already
// be swapped for sensor orientation; see IsDimensionSwapped.
//
// Among aspect-matching candidates within the (clamped) maximums, the
// smallest one at least as large as the view wins. If none is large enough,
// the largest undersized one is used. If no candidate matches the aspect
// ratio at all, the first element of the input is returned unfiltered so the
// caller always has something to configure.
func SelectPreviewSize(candidates []Size, targetAspect Size, viewWidth, viewHeight, maxWidth, maxHeight int) Size {
	if len(candidates) == 0 {
		return Size{}
	}
	if targetAspect.IsZero() {
		return candidates[0]
	}
	if maxWidth > MaxPreviewWidth {
		maxWidth = MaxPreviewWidth
	}
	if maxHeight > MaxPreviewHeight {
		maxHeight = MaxPreviewHeight
	}

	var bigEnough, notBigEnough []Size
	for _, c := range candidates {
		if c.IsZero() || c.Width > maxWidth || c.Height > maxHeight {
			continue
		}
		// Integer arithmetic on purpose: matches how candidate lists are
		// generated from sensor modes.
		if c.Height != c.Width*targetAspect.Height/targetAspect.Width {
			continue
		}
		if c.Width >= viewWidth && c.Height >= viewHeight {
			bigEnough = append(bigEnough, c)
		} else {
			notBigEnough = append(notBigEnough, c)
		}
	}

	switch {
	case len(bigEnough) > 0:
		return minByArea(bigEnough)
	case len(notBigEnough) > 0:
		return maxByArea(notBigEnough)
	default:
		return candidates[0]
	}
}

func minByArea(sizes []Size) Size {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Area() < best.Area() {
			best = s
		}
	}
	return best
}

func maxByArea(sizes []Size) Size {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Area() > best.Area() {
			best = s
		}
	}
	return best
}
