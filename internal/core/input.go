package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionSelect         // Space - tap the tile under the cursor
	ActionConfirm        // Enter, C - confirm a match attempt
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - start a new run
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Cursor tracks the highlighted cell on a square board. Games move it with
// directional actions and tap the cell beneath it with ActionSelect.
type Cursor struct {
	Pos
	size int
}

// NewCursor returns a cursor parked at the top-left cell of a size x size board.
func NewCursor(size int) Cursor {
	return Cursor{size: size}
}

// Move applies any directional actions in the frame, clamped to the board.
// Returns true if the cursor moved.
func (c *Cursor) Move(in InputFrame) bool {
	before := c.Pos
	switch {
	case in.Has(ActionUp):
		c.Row--
	case in.Has(ActionDown):
		c.Row++
	case in.Has(ActionLeft):
		c.Col--
	case in.Has(ActionRight):
		c.Col++
	}
	c.Row = Clamp(c.Row, 0, c.size-1)
	c.Col = Clamp(c.Col, 0, c.size-1)
	return c.Pos != before
}
