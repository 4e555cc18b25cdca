package collab

import (
	"context"
	"fmt"
)

// InMemoryEmulator is a reference Emulator double for tests and local
// development: it tracks button presses and a fake state blob instead
// of driving a real emulator process.
type InMemoryEmulator struct {
	TickCount     int64
	PressedButtons []Button
	State          []byte
	NextFrame      Frame
	RejectLoad     bool
}

// NewInMemoryEmulator builds a double with an empty initial state.
func NewInMemoryEmulator() *InMemoryEmulator {
	return &InMemoryEmulator{State: []byte("initial-state")}
}

func (e *InMemoryEmulator) Tick(ctx context.Context) error {
	e.TickCount++
	return nil
}

func (e *InMemoryEmulator) CaptureScreen(ctx context.Context) (Frame, error) {
	return e.NextFrame, nil
}

func (e *InMemoryEmulator) PressButton(ctx context.Context, button Button) error {
	e.PressedButtons = append(e.PressedButtons, button)
	return nil
}

func (e *InMemoryEmulator) GetStateBytes() ([]byte, error) {
	if len(e.State) == 0 {
		return nil, fmt.Errorf("collab: in-memory emulator has no state")
	}
	out := make([]byte, len(e.State))
	copy(out, e.State)
	return out, nil
}

func (e *InMemoryEmulator) LoadStateBytes(blob []byte) bool {
	if e.RejectLoad {
		return false
	}
	e.State = blob
	return true
}

// InMemoryVision is a reference VisionAdaptor double that returns a
// scripted Observation regardless of the frame passed in.
type InMemoryVision struct {
	NextObservation Observation
}

func (v *InMemoryVision) Analyze(frame Frame) Observation { return v.NextObservation }
