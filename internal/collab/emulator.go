// Package collab defines the collaborator interfaces the core drives
// through (emulator, vision/OCR, dialogue/menu, session persistence),
// plus small in-memory reference doubles, per spec.md §6. Grounded on
// the teacher's service.GameService / service.SessionManager split:
// top-level interfaces the engine is coded against, concrete adaptors
// supplied by the caller.
package collab

import "context"

// Button names the physical inputs the emulator adaptor accepts.
type Button string

const (
	ButtonUp     Button = "Up"
	ButtonDown   Button = "Down"
	ButtonLeft   Button = "Left"
	ButtonRight  Button = "Right"
	ButtonA      Button = "A"
	ButtonB      Button = "B"
	ButtonStart  Button = "Start"
	ButtonSelect Button = "Select"
)

// Frame is an opaque captured screen image, passed to the vision
// adaptor for analysis.
type Frame struct {
	Width, Height int
	Pixels        []byte
	CapturedAtTick int64
}

// Emulator is the full collaborator surface spec.md §6 names. Its
// GetStateBytes/LoadStateBytes methods structurally satisfy
// savestate.Emulator, so any concrete Emulator here can be handed
// directly to a savestate.Manager without an adaptor shim.
type Emulator interface {
	Tick(ctx context.Context) error
	CaptureScreen(ctx context.Context) (Frame, error)
	PressButton(ctx context.Context, button Button) error
	GetStateBytes() ([]byte, error)
	LoadStateBytes(blob []byte) bool
}
