// Package ov holds the types exchanged over the HTTP API.
package ov

import (
	"preview-planner/pkg/geometry"
	"preview-planner/pkg/utils/ps"
)

// Profile is the request body for device-profile CRUD.
type Profile struct {
	Name              string          `json:"name" binding:"required"`
	Info              string          `json:"info"`
	SensorOrientation int             `json:"sensorOrientation"`
	CaptureSizes      []geometry.Size `json:"captureSizes" binding:"required"`
	PreviewSizes      []geometry.Size `json:"previewSizes" binding:"required"`
}

// PlanRequest asks for a preview plan. Candidate lists and sensor
// orientation come either inline or from a stored profile; inline values
// win when both are present.
type PlanRequest struct {
	Profile string `json:"profile"`

	CaptureSizes      []geometry.Size `json:"captureSizes"`
	PreviewSizes      []geometry.Size `json:"previewSizes"`
	SensorOrientation *int            `json:"sensorOrientation"`

	Rotation      int `json:"rotation"` // degrees: 0, 90, 180 or 270
	ViewWidth     int `json:"viewWidth" binding:"required"`
	ViewHeight    int `json:"viewHeight" binding:"required"`
	DisplayWidth  int `json:"displayWidth"`
	DisplayHeight int `json:"displayHeight"`

	// Optional mode override; empty keeps the session's current mode.
	Mode string `json:"mode"`
}

// PlanResponse is the full geometry decision for one request.
type PlanResponse struct {
	Mode            string        `json:"mode"`
	Swapped         bool          `json:"swapped"`
	CaptureSize     geometry.Size `json:"captureSize"`
	PreviewSize     geometry.Size `json:"previewSize"`
	Transform       [3][3]float64 `json:"transform"` // row-major affine
	JPEGOrientation int           `json:"jpegOrientation"`
}

// ModeRequest switches the session display mode.
type ModeRequest struct {
	Mode          string `json:"mode" binding:"required"`
	DisplayWidth  int    `json:"displayWidth" binding:"required"`
	DisplayHeight int    `json:"displayHeight" binding:"required"`
}

// SessionStatus reports the session's mode, ratio and capture state.
type SessionStatus struct {
	Mode         string  `json:"mode"`
	ScreenRatio  float64 `json:"screenRatio"`
	CaptureState string  `json:"captureState"`
}

// CaptureResult feeds one capture-result callback into the capture
// sequencer. Nil fields mean the state was not reported.
type CaptureResult struct {
	AF *int `json:"af"`
	AE *int `json:"ae"`
}

// Status is the host resource report.
type Status struct {
	CPU        ps.CPU    `json:"cpu"`
	Memory     ps.Memory `json:"memory"`
	Disk       ps.Disk   `json:"disk"`
	StorageDir string    `json:"storageDir"`
	StorageUse string    `json:"storageUse"`
}
