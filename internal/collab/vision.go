package collab

// ScreenTypeConfidenceThreshold is the minimum confidence at which a
// vision Observation's ScreenType is trusted (spec.md §6).
const ScreenTypeConfidenceThreshold = 0.80

// ScreenType names the kind of screen the vision adaptor believes it
// is looking at.
type ScreenType string

const (
	ScreenOverworld  ScreenType = "overworld"
	ScreenBattle     ScreenType = "battle"
	ScreenMenu       ScreenType = "menu"
	ScreenDialog     ScreenType = "dialog"
	ScreenTransition ScreenType = "transition"
	ScreenUnknown    ScreenType = "unknown"
)

// DetectedEntity is a named thing the vision adaptor recognized on
// screen: a Pokemon, an item, or a location marker.
type DetectedEntity struct {
	Kind string // "pokemon", "item", "location"
	Name string
}

// Observation is everything the vision/OCR adaptor extracted from one
// captured Frame (spec.md §6); every field past ScreenType/Confidence
// is optional and its presence is carried by the pointer/slice being
// nil vs. populated.
type Observation struct {
	ScreenType ScreenType
	Confidence float64

	HPValues  map[string]float64 // slot label -> hp fraction, when visible
	Location  string
	Entities  []DetectedEntity
	MenuText  string
	DialogText string
}

// IsScreenTypeTrusted reports whether an observation's ScreenType
// meets the confidence bar for the planner/monitor to act on it.
func (o Observation) IsScreenTypeTrusted() bool {
	return o.Confidence >= ScreenTypeConfidenceThreshold
}

// VisionAdaptor analyzes a captured frame into an Observation.
type VisionAdaptor interface {
	Analyze(frame Frame) Observation
}
