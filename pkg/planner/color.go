package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"studyctl/pkg/studyflow"
)

const (
	// brightnessThreshold is compared against (299R + 587G + 114B) / 1000
	brightnessThreshold = 125

	// DefaultCourseColor is sent when a course is created from the sidebar form
	DefaultCourseColor = "#4287f5"
	// DeadlineColor is the color of exam-style deadlines
	DeadlineColor = "#DB4437"
	// SessionColor is the color of self-study sessions
	SessionColor = "#F4B400"

	courseFallbackBackground = "#eeeeee"
	courseFallbackContrast   = "#ffffff"
)

// parseHex reads #rgb, #rgba, #rrggbb or #rrggbbaa. The alpha digits are ignored.
func parseHex(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 8:
		h = h[:6]
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// NormalizeColor returns hex as an opaque #rrggbb color. Unparseable input is
// returned unchanged.
func NormalizeColor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Brightness returns the perceived brightness of a hex color on a 0–255 scale.
func Brightness(hex string) (float64, bool) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return 0, false
	}
	return float64(299*r+587*g+114*b) / 1000, true
}

// ContrastingTextColor picks black text for backgrounds brighter than 125
// and white otherwise. Unparseable colors get white text.
func ContrastingTextColor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "#ffffff"
	}
	// compare in integer thousandths so the boundary is exact
	if 299*r+587*g+114*b > brightnessThreshold*1000 {
		return "#000000"
	}
	return "#ffffff"
}

// ProgressPercent rounds the server's progress value to a whole percent in [0, 100].
func ProgressPercent(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	rounded := int(math.Round(p))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// DefaultTypeColor is the color the server assigns when an event is created without one.
func DefaultTypeColor(eventType string) string {
	switch strings.ToLower(eventType) {
	case studyflow.TypeLecture:
		return "#4285F4"
	case studyflow.TypeAssignment:
		return "#0F9D58"
	case studyflow.TypeExam, studyflow.TypeDeadline:
		return DeadlineColor
	case studyflow.TypeSelfStudy:
		return SessionColor
	default:
		return "#aaaaaa"
	}
}
