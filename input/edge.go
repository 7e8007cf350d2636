package input

// Transitions returns the buttons that went down and up between two polls.
func Transitions(current, previous Buttons) (pressed, released Buttons) {
	return current &^ previous, previous &^ current
}

// EdgeTracker keeps the previous button mask across polls.
// The zero value is ready to use.
type EdgeTracker struct {
	previous Buttons
	primed   bool
}

// Update advances the tracker by one poll and returns the transitions
// relative to the last call. The first call only seeds the tracker, so a
// button already held at startup is never reported as pressed.
func (t *EdgeTracker) Update(current Buttons) (pressed, released Buttons) {
	if !t.primed {
		t.previous = current
		t.primed = true
		return 0, 0
	}
	pressed, released = Transitions(current, t.previous)
	t.previous = current
	return pressed, released
}

// Previous returns the mask recorded by the last Update.
func (t *EdgeTracker) Previous() Buttons {
	return t.previous
}

// Reset forgets the recorded mask; the next Update seeds again.
func (t *EdgeTracker) Reset() {
	t.previous = 0
	t.primed = false
}
