package domain

import (
	"fmt"
	"strings"
)

// OverrideMode is the user-selected display override
type OverrideMode int

const (
	ModeNormal OverrideMode = iota
	ModeGoAway
)

func (m OverrideMode) String() string {
	if m == ModeGoAway {
		return "go_away"
	}
	return "normal"
}

// AppState is the process-wide presence state. LastColor is the last resolved
// presence color and is kept as-is while in ModeGoAway.
type AppState struct {
	Mode       OverrideMode
	LastColor  Color
	LastStatus PresenceStatus
}

// Displayed returns the color the indicator should currently show
func (s AppState) Displayed() Color {
	if s.Mode == ModeGoAway {
		return Red
	}
	return s.LastColor
}

// Action is a user command delivered by the control surface
type Action int

const (
	ActionGoAway Action = iota
	ActionYallOkay
	ActionNotify
)

func (a Action) String() string {
	switch a {
	case ActionGoAway:
		return "go-away"
	case ActionYallOkay:
		return "yall-okay"
	case ActionNotify:
		return "notify"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction converts a user-supplied name to an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go-away", "goaway", "away":
		return ActionGoAway, nil
	case "yall-okay", "yallokay", "okay":
		return ActionYallOkay, nil
	case "notify":
		return ActionNotify, nil
	}
	return 0, fmt.Errorf("unknown action %q (want go-away, yall-okay or notify)", s)
}
