package window

import "testing"

func TestOptions(t *testing.T) {
	c := &glContext{width: 1, height: 1, major: 4, minor: 1}
	for _, opt := range []ContextBuilderOption{WithTitle("probe"), WithSize(0, 8), WithVersion(3, 3), WithVisible(true)} {
		opt(c)
	}
	if c.title != "probe" || c.width != 1 || c.height != 8 || !c.visible {
		t.Errorf("unexpected context %+v", c)
	}
	if major, minor := c.Version(); major != 3 || minor != 3 {
		t.Errorf("expected 3.3, got %d.%d", major, minor)
	}
}

func TestCloseWithoutWindow(t *testing.T) {
	c := &glContext{}
	if err := c.Close(); err == nil {
		t.Error("expected an error closing a context that was never created")
	}
}
