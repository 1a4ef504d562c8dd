package main

import (
	"fmt"
	"log"

	"preview-planner/pkg/geometry"
	"preview-planner/pkg/planner"
	"preview-planner/pkg/screen"
)

// Walks a typical phone-style sensor through both display modes and all
// four rotations, printing the resulting plans.
func main() {
	captureSizes := []geometry.Size{
		{Width: 4000, Height: 3000},
		{Width: 3840, Height: 2160},
		{Width: 1920, Height: 1080},
		{Width: 640, Height: 480},
	}
	previewSizes := []geometry.Size{
		{Width: 1920, Height: 1080},
		{Width: 1440, Height: 1080},
		{Width: 1280, Height: 960},
		{Width: 1280, Height: 720},
		{Width: 640, Height: 480},
	}

	for _, mode := range []screen.Mode{screen.WidthMatch, screen.FullScreen} {
		session, err := planner.NewSession(mode, geometry.Size{Width: 1080, Height: 1920})
		if err != nil {
			log.Fatalln(err)
		}

		for _, rotation := range []geometry.Rotation{
			geometry.Rotation0, geometry.Rotation90, geometry.Rotation180, geometry.Rotation270,
		} {
			viewW, viewH := 1080, 1920
			displayW, displayH := 1080, 1920
			if rotation == geometry.Rotation90 || rotation == geometry.Rotation270 {
				viewW, viewH = viewH, viewW
				displayW, displayH = displayH, displayW
			}

			plan, err := session.Plan(planner.Request{
				CaptureCandidates: captureSizes,
				PreviewCandidates: previewSizes,
				SensorOrientation: 90,
				Rotation:          rotation,
				ViewWidth:         viewW,
				ViewHeight:        viewH,
				DisplayWidth:      displayW,
				DisplayHeight:     displayH,
			})
			if err != nil {
				log.Fatalln(err)
			}

			fmt.Printf("mode=%s rotation=%s swapped=%v capture=%s preview=%s jpeg=%d\n",
				mode, rotation, plan.Swapped, plan.CaptureSize, plan.PreviewSize, plan.JPEGOrientation)
			rm := geometry.RowMajor(plan.Transform)
			for _, row := range rm {
				fmt.Printf("  %9.4f %9.4f %9.4f\n", row[0], row[1], row[2])
			}
		}
	}
}
