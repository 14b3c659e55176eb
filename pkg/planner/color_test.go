package planner

import (
	"math"
	"testing"
)

func TestContrastingTextColor(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"#ffffff", "#000000"},
		{"#000000", "#ffffff"},
		{"#F4B400", "#000000"},
		{"#4285F4", "#000000"},
		{"#DB4437", "#ffffff"},
		{"#0F9D58", "#ffffff"},
		{"#fff", "#000000"},
		// 299*125 + 587*125 + 114*125 = 125000, exactly on the threshold
		{"#7d7d7d", "#ffffff"},
		// one step brighter
		{"#7e7e7e", "#000000"},
		// imported courses carry an alpha byte
		{"#FFFFFF70", "#000000"},
		{"#F4B40070", "#000000"},
		{"#00000070", "#ffffff"},
		{"#7d7d7dff", "#ffffff"},
		{"#fff8", "#000000"},
		{"", "#ffffff"},
		{"not-a-color", "#ffffff"},
		{"#ffffff7", "#ffffff"},
	}

	for _, tt := range tests {
		if got := ContrastingTextColor(tt.color); got != tt.want {
			t.Errorf("ContrastingTextColor(%q) = %s, want %s", tt.color, got, tt.want)
		}
	}
}

func TestBrightness(t *testing.T) {
	b, ok := Brightness("#7d7d7d")
	if !ok || b != 125 {
		t.Errorf("expected brightness 125, got %v (ok=%v)", b, ok)
	}
	if _, ok := Brightness("#12345"); ok {
		t.Errorf("expected malformed color to be rejected")
	}
	if b, ok := Brightness("#FFFFFF70"); !ok || b != 255 {
		t.Errorf("expected alpha to be ignored, got %v (ok=%v)", b, ok)
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#4285F4", "#4285f4"},
		{"#4285F470", "#4285f4"},
		{"#abc", "#aabbcc"},
		{"#abcd", "#aabbcc"},
		{"", ""},
		{"blue", "blue"},
	}

	for _, tt := range tests {
		if got := NormalizeColor(tt.in); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{42.4, 42},
		{42.5, 43},
		{99.6, 100},
		{130, 100},
		{-3, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ProgressPercent(tt.in); got != tt.want {
			t.Errorf("ProgressPercent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaultTypeColor(t *testing.T) {
	cases := map[string]string{
		"lecture":    "#4285F4",
		"Assignment": "#0F9D58",
		"exam":       "#DB4437",
		"deadline":   "#DB4437",
		"self-study": "#F4B400",
		"custom":     "#aaaaaa",
		"":           "#aaaaaa",
	}
	for typ, want := range cases {
		if got := DefaultTypeColor(typ); got != want {
			t.Errorf("DefaultTypeColor(%q) = %s, want %s", typ, got, want)
		}
	}
}
