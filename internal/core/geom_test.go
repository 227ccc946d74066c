package core

import (
	"testing"
	"time"
)

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false}, // right edge is exclusive
		{5, 5, false}, // bottom edge is exclusive
		{1, 3, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = (%d, %d), expected (40, 60)", r.Right(), r.Bottom())
	}
	if x, y := r.Center(); x != 25 || y != 40 {
		t.Errorf("Center() = (%d, %d), expected (25, 40)", x, y)
	}

	inner := NewRect(0, 0, 80, 24).Centered(20, 4)
	if inner != NewRect(30, 10, 20, 4) {
		t.Errorf("Centered() = %+v", inner)
	}
}

func TestClampMinMax(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max int
		expectedClamp int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"at max", 10, 0, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.min, tc.max); got != tc.expectedClamp {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expectedClamp)
			}
		})
	}

	if Min(3, 7) != 3 || Max(3, 7) != 7 {
		t.Error("Min/Max returned wrong values")
	}
}

func TestRuntimeConfigTicks(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{300 * time.Millisecond, 18},
		{time.Millisecond, 1}, // rounds up to one tick
		{time.Second, 60},
	}

	for _, tc := range tests {
		if got := cfg.Ticks(tc.d); got != tc.want {
			t.Errorf("Ticks(%v) = %d, expected %d", tc.d, got, tc.want)
		}
	}

	cfg.TickRate = 0
	if cfg.Ticks(time.Second) != 0 {
		t.Error("zero tick rate should yield zero ticks")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{" Blue ", ColorBlue, true},
		{"bright red", ColorBrightRed, true},
		{"bright-cyan", ColorBrightCyan, true},
		{"firebrick", ColorBrightRed, true},
		{"brightorange", ColorDefault, false},
		{"ultraviolet", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionRight)
	f.Set(ActionDown)

	if len(f.Actions) != 3 {
		t.Errorf("expected 3 actions in order, got %v", f.Actions)
	}
	if !f.Has(ActionDown) || f.Has(ActionUp) {
		t.Error("Has reported wrong actions")
	}

	c := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if len(c.Actions) != 3 {
		t.Error("Clone should not share storage with the original")
	}
	if ActionSolve.String() != "Solve" {
		t.Errorf("unexpected action name %q", ActionSolve.String())
	}
}
