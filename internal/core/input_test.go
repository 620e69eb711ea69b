package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionSelect) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionSelect)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionSelect) {
		t.Error("Clear should drop actions")
	}
	if !clone.Has(ActionSelect) {
		t.Error("Clone should be independent of the original")
	}
}

func TestCursorMoveClamped(t *testing.T) {
	c := NewCursor(3)

	frame := func(a Action) InputFrame {
		f := NewInputFrame()
		f.Set(a)
		return f
	}

	if c.Move(frame(ActionUp)) {
		t.Error("cursor at top row should not move up")
	}
	if !c.Move(frame(ActionRight)) || c.Col != 1 {
		t.Errorf("expected col 1 after moving right, got %d", c.Col)
	}
	c.Move(frame(ActionDown))
	c.Move(frame(ActionDown))
	c.Move(frame(ActionDown))
	if c.Row != 2 {
		t.Errorf("row should clamp at 2, got %d", c.Row)
	}
}
