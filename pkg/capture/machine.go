// Package capture models the still-capture sequence as an explicit state
// machine driven by asynchronous capture-result callbacks. It never touches
// hardware: every outgoing request goes through the Trigger supplied by the
// camera glue.
package capture

import (
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"preview-planner/pkg/utils"
)

// AFState mirrors the autofocus state reported in capture results.
type AFState int

const (
	AFInactive AFState = iota
	AFPassiveScan
	AFPassiveFocused
	AFActiveScan
	AFFocusedLocked
	AFNotFocusedLocked
	AFPassiveUnfocused
)

// AEState mirrors the auto-exposure state reported in capture results.
type AEState int

const (
	AEInactive AEState = iota
	AESearching
	AEConverged
	AELocked
	AEFlashRequired
	AEPrecapture
)

// Result is one capture-result callback. Nil fields mean the camera stack
// did not report that state; the sequence then proceeds optimistically, the
// same way the preview glue treats missing 3A data.
type Result struct {
	AF *AFState
	AE *AEState
}

// Trigger issues capture requests on behalf of the machine.
type Trigger interface {
	// LockFocus starts an autofocus lock.
	LockFocus() error
	// RunPrecapture starts the auto-exposure precapture metering sequence.
	RunPrecapture() error
	// CaptureStill fires the still capture.
	CaptureStill() error
	// UnlockFocus cancels the autofocus lock and resumes preview.
	UnlockFocus() error
}

// States of the still-capture sequence.
const (
	StatePreviewing           = "previewing"
	StateWaitingLock          = "waiting_lock"
	StateWaitingPrecapture    = "waiting_precapture"
	StateWaitingNonPrecapture = "waiting_non_precapture"
	StatePictureTaken         = "picture_taken"
)

// Events driving the sequence.
const (
	eventLockFocus         = "lock_focus"
	eventPrecapture        = "precapture"
	eventPrecaptureStarted = "precapture_started"
	eventCapture           = "capture"
	eventUnlock            = "unlock"
)

// Machine is the capture sequencer for one preview session. Calls must be
// serialized by the owner, like the rest of the session.
type Machine struct {
	fsm     *fsm.FSM
	trigger Trigger
	logger  *zap.SugaredLogger
}

func NewMachine(trigger Trigger) *Machine {
	m := &Machine{
		trigger: trigger,
		logger:  utils.GetLogger(),
	}

	m.fsm = fsm.NewFSM(
		StatePreviewing,
		fsm.Events{
			{Name: eventLockFocus, Src: []string{StatePreviewing}, Dst: StateWaitingLock},
			{Name: eventPrecapture, Src: []string{StateWaitingLock}, Dst: StateWaitingPrecapture},
			{Name: eventPrecaptureStarted, Src: []string{StateWaitingPrecapture}, Dst: StateWaitingNonPrecapture},
			{Name: eventCapture, Src: []string{StateWaitingLock, StateWaitingNonPrecapture}, Dst: StatePictureTaken},
			{Name: eventUnlock, Src: []string{StatePictureTaken}, Dst: StatePreviewing},
		},
		fsm.Callbacks{
			"before_" + eventLockFocus: func(e *fsm.Event) {
				if err := m.trigger.LockFocus(); err != nil {
					e.Cancel(err)
				}
			},
			"before_" + eventPrecapture: func(e *fsm.Event) {
				if err := m.trigger.RunPrecapture(); err != nil {
					e.Cancel(err)
				}
			},
			"before_" + eventCapture: func(e *fsm.Event) {
				if err := m.trigger.CaptureStill(); err != nil {
					e.Cancel(err)
				}
			},
			"before_" + eventUnlock: func(e *fsm.Event) {
				if err := m.trigger.UnlockFocus(); err != nil {
					e.Cancel(err)
				}
			},
			"enter_state": func(e *fsm.Event) {
				m.logger.Debugf("capture sequence: %s -> %s", e.Src, e.Dst)
			},
		},
	)

	return m
}

// LockFocus begins the still-capture sequence from preview.
func (m *Machine) LockFocus() error {
	return m.fsm.Event(eventLockFocus)
}

// Process feeds one capture result and advances the sequence. Results
// arriving in states that do not care about them are dropped silently,
// since the stream delivers them continuously.
func (m *Machine) Process(r Result) error {
	switch m.fsm.Current() {
	case StateWaitingLock:
		if r.AF == nil {
			return m.fsm.Event(eventCapture)
		}
		if *r.AF == AFFocusedLocked || *r.AF == AFNotFocusedLocked {
			if r.AE == nil || *r.AE == AEConverged {
				return m.fsm.Event(eventCapture)
			}
			return m.fsm.Event(eventPrecapture)
		}
	case StateWaitingPrecapture:
		if r.AE == nil || *r.AE == AEPrecapture || *r.AE == AEFlashRequired {
			return m.fsm.Event(eventPrecaptureStarted)
		}
	case StateWaitingNonPrecapture:
		if r.AE == nil || *r.AE != AEPrecapture {
			return m.fsm.Event(eventCapture)
		}
	}
	return nil
}

// Unlock returns to preview after the still has been taken.
func (m *Machine) Unlock() error {
	return m.fsm.Event(eventUnlock)
}

// State reports the current sequence state.
func (m *Machine) State() string {
	return m.fsm.Current()
}
