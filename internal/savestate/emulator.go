// Package savestate implements the snapshot manager: create, list,
// validate, load, rotate and emergency-preserve emulator save states
// (spec.md §4.8).
package savestate

// Emulator is the minimal collaborator surface the manager needs from
// the emulator adaptor (spec.md §6); the full adaptor has more methods
// (tick, capture_screen, press_button) that live in the loop controller.
type Emulator interface {
	GetStateBytes() ([]byte, error)
	LoadStateBytes(blob []byte) bool
}
