package actuator

import (
	"fmt"
	"strings"

	"github.com/vburojevic/deskbell/internal/domain"
)

// Kind is the type of an actuator command
type Kind int

const (
	KindSetColor Kind = iota
	KindNotify
	KindGoIdle
)

func (k Kind) String() string {
	switch k {
	case KindSetColor:
		return "set_color"
	case KindNotify:
		return "notify"
	case KindGoIdle:
		return "go_idle"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one instruction for the indicator device
type Command struct {
	Kind  Kind
	Color domain.Color
}

func SetColor(c domain.Color) Command { return Command{Kind: KindSetColor, Color: c} }
func Notify() Command                 { return Command{Kind: KindNotify} }
func GoIdle() Command                 { return Command{Kind: KindGoIdle} }

// Wire returns the newline-terminated ASCII form understood by the device:
// "#AARRGGBB\n", "!\n" or "I\n".
func (c Command) Wire() string {
	switch c.Kind {
	case KindSetColor:
		return "#" + c.Color.Hex() + "\n"
	case KindNotify:
		return "!\n"
	case KindGoIdle:
		return "I\n"
	}
	return ""
}

func (c Command) String() string {
	if c.Kind == KindSetColor {
		return c.Kind.String() + "(" + c.Color.String() + ")"
	}
	return c.Kind.String()
}

// ParseCommand parses the wire form, with or without the trailing newline
func ParseCommand(s string) (Command, error) {
	s = strings.TrimRight(s, "\r\n")
	switch {
	case s == "!":
		return Notify(), nil
	case s == "I":
		return GoIdle(), nil
	case strings.HasPrefix(s, "#"):
		c, err := domain.ParseColor(s)
		if err != nil {
			return Command{}, err
		}
		return SetColor(c), nil
	}
	return Command{}, fmt.Errorf("unrecognized actuator command %q", s)
}
