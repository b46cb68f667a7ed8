package domain

// EventKind is the type of a classified log line
type EventKind int

const (
	EventNone EventKind = iota
	EventStatusChanged
	EventActivityAdded
)

func (k EventKind) String() string {
	switch k {
	case EventStatusChanged:
		return "status_changed"
	case EventActivityAdded:
		return "activity_added"
	default:
		return "none"
	}
}

// Rule identifies which marker produced an event
type Rule int

const (
	RuleNone Rule = iota
	RuleIconChange
	RuleActivityAdded
	RuleStatusAdded
)

func (r Rule) String() string {
	switch r {
	case RuleIconChange:
		return "icon_change"
	case RuleActivityAdded:
		return "activity_added"
	case RuleStatusAdded:
		return "status_added"
	default:
		return "none"
	}
}

// LogEvent is the result of classifying one raw log line
type LogEvent struct {
	Kind   EventKind
	Rule   Rule
	Token  string
	Status PresenceStatus
	// Recognized is false when Token matched no vocabulary entry
	Recognized bool
}

// Matched reports whether the line produced an event at all
func (e LogEvent) Matched() bool {
	return e.Kind != EventNone
}

// Color returns the color carried by a StatusChanged event
func (e LogEvent) Color() (Color, bool) {
	if e.Kind != EventStatusChanged {
		return Color{}, false
	}
	return e.Status.Color()
}

// NotifyIntent is the notification decision for a resolved batch
type NotifyIntent int

const (
	// NotifyUnchanged means nothing resolving was found; notification state
	// must not be touched.
	NotifyUnchanged NotifyIntent = iota
	NotifyFire
	NotifySuppress
)

func (n NotifyIntent) String() string {
	switch n {
	case NotifyFire:
		return "fire"
	case NotifySuppress:
		return "suppress"
	default:
		return "unchanged"
	}
}

// Resolution is the effective outcome of a batch of log lines
type Resolution struct {
	Color  *Color
	Status PresenceStatus
	Notify NotifyIntent
}

// HasColor reports whether the batch resolved a presence color
func (r Resolution) HasColor() bool {
	return r.Color != nil
}
