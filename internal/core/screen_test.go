package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, expected 20x6", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)

	s.SetColored(3, 2, '@', ColorBrightYellow)
	c := s.GetCell(3, 2)
	if c.Rune != '@' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(3, 2) = %+v, expected '@' bright yellow", c)
	}
	if s.Get(3, 2) != '@' {
		t.Errorf("Get(3, 2) = %q, expected '@'", s.Get(3, 2))
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, 4, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenTextAndString(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextCentered(1, "hop")
	s.DrawHLine(0, 2, 4, '=', ColorGreen)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("String() has %d lines, expected 3", len(lines))
	}
	if strings.TrimSpace(lines[1]) != "hop" {
		t.Errorf("row 1 = %q, expected centered 'hop'", lines[1])
	}
	if s.Row(2) != "====      " {
		t.Errorf("Row(2) = %q", s.Row(2))
	}
	if s.GetCell(0, 2).Color != ColorGreen {
		t.Error("DrawHLine should keep the color")
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawRect(NewRect(0, 0, 5, 5), '#')
	s.Clear()
	if s.Get(2, 2) != ' ' {
		t.Error("Clear() should blank every cell")
	}

	s.Resize(8, 2)
	if s.Width() != 8 || s.Height() != 2 {
		t.Errorf("Resize() size = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	s.DrawBox(NewRect(0, 0, 8, 2))
	if s.Get(0, 0) != '┌' || s.Get(7, 1) != '┘' {
		t.Error("DrawBox corners not drawn")
	}
}
