package core

// Action represents a semantic input action, abstracted from physical key presses.
// Keyboard-driven pose sources translate actions into simulated body movement.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move active hand up
	ActionDown              // S, Down arrow - move active hand down
	ActionLeft              // A, Left arrow - move active hand left
	ActionRight             // D, Right arrow - move active hand right
	ActionJump              // Space - raise the head (runner jump)
	ActionSwitchHand        // Tab - toggle which wrist the arrows steer
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionQuit              // Q, Ctrl+C - exit game/session
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
	case ActionJump:
		return "Jump"
	case ActionSwitchHand:
		return "SwitchHand"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
