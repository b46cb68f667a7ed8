package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// PresenceStatus is a collaboration client's reported availability state
type PresenceStatus string

const (
	StatusAvailable   PresenceStatus = "Available"
	StatusBusy        PresenceStatus = "Busy"
	StatusInAMeeting  PresenceStatus = "InAMeeting"
	StatusOnThePhone  PresenceStatus = "OnThePhone"
	StatusPresenting  PresenceStatus = "Presenting"
	StatusAway        PresenceStatus = "Away"
	StatusBeRightBack PresenceStatus = "BeRightBack"
	StatusOffline     PresenceStatus = "Offline"
	StatusUnknown     PresenceStatus = "Unknown"
)

// Statuses lists the vocabulary in matching order. StatusFromToken relies on it.
var Statuses = []PresenceStatus{
	StatusAvailable,
	StatusBusy,
	StatusInAMeeting,
	StatusOnThePhone,
	StatusPresenting,
	StatusAway,
	StatusBeRightBack,
	StatusOffline,
	StatusUnknown,
}

// StatusFromToken maps a free-text token to a status by substring containment.
// The first vocabulary entry contained in the token wins. ok is false when the
// token matched nothing; the returned status is then StatusUnknown.
func StatusFromToken(token string) (status PresenceStatus, ok bool) {
	for _, s := range Statuses {
		if strings.Contains(token, string(s)) {
			return s, true
		}
	}
	return StatusUnknown, false
}

// Color returns the indicator color for the status. ok is false for
// StatusUnknown (and anything outside the vocabulary), which never changes
// the displayed color.
func (s PresenceStatus) Color() (Color, bool) {
	switch s {
	case StatusAvailable:
		return Green, true
	case StatusBusy, StatusInAMeeting, StatusOnThePhone, StatusPresenting:
		return Red, true
	case StatusAway, StatusBeRightBack:
		return Yellow, true
	case StatusOffline:
		return Off, true
	default:
		return Color{}, false
	}
}

// Color is a 4-byte indicator color in alpha, red, green, blue order
type Color struct {
	A, R, G, B uint8
}

// Fixed indicator colors
var (
	Green  = Color{A: 0xFF, G: 0xFF}
	Red    = Color{A: 0xFF, R: 0xFF}
	Yellow = Color{A: 0xFF, R: 0xFF, G: 0xFF}
	Off    = Color{}

	// NotifyColor is the flash shown with a notification pulse. It is never
	// stored as the last presence color.
	NotifyColor = Color{A: 0xFF, B: 0xFF}
)

// Hex returns the color as AARRGGBB with upper-case digits
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Off:
		return "off"
	case NotifyColor:
		return "blue"
	}
	return "#" + c.Hex()
}

// ParseColor parses AARRGGBB, with or without a leading '#'
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 8 {
		return Color{}, fmt.Errorf("color %q: want 8 hex digits (AARRGGBB)", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{A: b[0], R: b[1], G: b[2], B: b[3]}, nil
}
