package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - queue an Up move
	ActionDown           // Down arrow - queue a Down move
	ActionLeft           // Left arrow - queue a Left move
	ActionRight          // Right arrow - queue a Right move
	ActionDelete         // Backspace - drop the last queued move
	ActionConfirm        // Enter - start the run
	ActionSolve          // A - run the auto-solver
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - clear the queue and memory row
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDelete:
		return "Delete"
	case ActionConfirm:
		return "Confirm"
	case ActionSolve:
		return "Solve"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick,
// in the order the keys arrived.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame. Several presses of the same key
// within one tick are all kept, since each queues a move.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	out := make([]Action, len(f.Actions))
	copy(out, f.Actions)
	return InputFrame{Actions: out}
}
