package teams

import (
	"strings"

	"github.com/vburojevic/deskbell/internal/domain"
)

// Marker phrases written by the Teams client's StatusIndicatorStateService
const (
	IconChangeMarker    = "Change status icon from NewActivity"
	IconChangeSeparator = " to "
	AddedMarker         = "StatusIndicatorStateService: Added "
	NewActivityToken    = "NewActivity"
)

// rule is one entry of the classification priority list. match returns
// ok=false when the rule does not apply to the line.
type rule struct {
	id    domain.Rule
	match func(line string) (domain.LogEvent, bool)
}

// rules are evaluated in order; the first match wins. The icon-change marker
// must stay ahead of the added marker.
var rules = []rule{
	{id: domain.RuleIconChange, match: matchIconChange},
	{id: domain.RuleActivityAdded, match: matchActivityAdded},
	{id: domain.RuleStatusAdded, match: matchStatusAdded},
}

// Classify turns one raw log line into a LogEvent. Lines matching no marker
// yield an event with Kind EventNone.
func Classify(line string) domain.LogEvent {
	for _, r := range rules {
		if ev, ok := r.match(line); ok {
			ev.Rule = r.id
			return ev
		}
	}
	return domain.LogEvent{}
}

func matchIconChange(line string) (domain.LogEvent, bool) {
	idx := strings.Index(line, IconChangeMarker)
	if idx < 0 {
		return domain.LogEvent{}, false
	}
	rest := line[idx+len(IconChangeMarker):]
	sep := strings.Index(rest, IconChangeSeparator)
	token := ""
	if sep >= 0 {
		token = firstField(rest[sep+len(IconChangeSeparator):])
	}
	return statusChanged(token), true
}

func matchActivityAdded(line string) (domain.LogEvent, bool) {
	token, ok := addedToken(line)
	if !ok || token != NewActivityToken {
		return domain.LogEvent{}, false
	}
	return domain.LogEvent{
		Kind:       domain.EventActivityAdded,
		Token:      token,
		Recognized: true,
	}, true
}

func matchStatusAdded(line string) (domain.LogEvent, bool) {
	token, ok := addedToken(line)
	if !ok {
		return domain.LogEvent{}, false
	}
	return statusChanged(token), true
}

func addedToken(line string) (string, bool) {
	idx := strings.Index(line, AddedMarker)
	if idx < 0 {
		return "", false
	}
	return firstField(line[idx+len(AddedMarker):]), true
}

func statusChanged(token string) domain.LogEvent {
	status, ok := domain.StatusFromToken(token)
	return domain.LogEvent{
		Kind:       domain.EventStatusChanged,
		Token:      token,
		Status:     status,
		Recognized: ok,
	}
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
