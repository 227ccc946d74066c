package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/overmove/internal/core"
)

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name    string
		run     core.Run
		reverse bool
	}{
		{"plain", core.Run{Text: "a", Color: core.ColorWhite}, false},
		{"highlight", core.Run{Text: "a", Color: core.ColorRed, Reverse: true}, true},
		{"unknown color", core.Run{Text: "a", Color: core.Color(200)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleFor(tt.run).GetReverse(); got != tt.reverse {
				t.Errorf("GetReverse() = %v, want %v", got, tt.reverse)
			}
		})
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextWithColor(0, 0, "hello", core.ColorWhite)
	s.SetCell(6, 0, core.Cell{Rune: 'X', Color: core.ColorRed, Reverse: true})
	s.DrawTextWithColor(0, 2, "world", core.ColorGreen)

	out := RenderScreen(s)
	if lines := strings.Count(out, "\n") + 1; lines != 3 {
		t.Errorf("rendered %d lines, want 3", lines)
	}
	for _, want := range []string{"hello", "X", "world"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
