package core

// Action represents a semantic game action, abstracted from physical key presses.
// Platforms translate keys into actions; the game turns actions into intents.
type Action int

const (
	ActionNone      Action = iota
	ActionToggle           // Space - start a new game or pause/resume
	ActionLeft             // Left arrow, A - move paddle left
	ActionRight            // Right arrow, D - move paddle right
	ActionStop             // Down arrow, S - release both move intents
	ActionConfirm          // Y, Enter - answer yes to a prompt
	ActionDecline          // N, Esc - answer no to a prompt
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionToggle:
		return "Toggle"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStop:
		return "Stop"
	case ActionConfirm:
		return "Confirm"
	case ActionDecline:
		return "Decline"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
