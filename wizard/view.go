package wizard

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepActive    StepStatus = "active"
	StepInactive  StepStatus = "inactive"
)

type StepState struct {
	Step   Step
	Status StepStatus
}

type ScreenState struct {
	Screen  Screen
	Visible bool
}

// View receives every state change and every user facing error.
type View interface {
	Render(s Snapshot)
	Alert(message string)
}

// StepStates classifies each step against current: earlier steps are
// completed, current is active, later ones are inactive. StepNone leaves
// every step inactive.
func StepStates(current Step) []StepState {
	currentIndex := stepIndex(current)
	states := make([]StepState, len(Steps))
	for i, step := range Steps {
		status := StepInactive
		switch {
		case currentIndex < 0:
		case i < currentIndex:
			status = StepCompleted
		case i == currentIndex:
			status = StepActive
		}
		states[i] = StepState{Step: step, Status: status}
	}
	return states
}

// ScreenVisibility marks exactly the current screen as visible.
func ScreenVisibility(current Screen) []ScreenState {
	states := make([]ScreenState, len(Screens))
	for i, screen := range Screens {
		states[i] = ScreenState{Screen: screen, Visible: screen == current}
	}
	return states
}

func stepIndex(step Step) int {
	for i, s := range Steps {
		if s == step {
			return i
		}
	}
	return -1
}
