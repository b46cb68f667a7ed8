package teams

import (
	"go.uber.org/zap"

	"github.com/vburojevic/deskbell/internal/domain"
	"github.com/vburojevic/deskbell/internal/metrics"
)

// Parser classifies Teams log lines and resolves batches of them into the
// effective presence color and notification intent.
type Parser struct {
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewParser creates a parser. A nil logger discards diagnostics and a nil
// metrics set records nothing.
func NewParser(log *zap.SugaredLogger, m *metrics.Metrics) *Parser {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Parser{log: log, metrics: m}
}

// Classify classifies one line and logs status tokens outside the vocabulary.
// The explicit Unknown status is expected and not logged.
func (p *Parser) Classify(line string) domain.LogEvent {
	ev := Classify(line)
	if ev.Matched() {
		p.metrics.ObserveEvent(ev.Kind.String())
	}
	if ev.Kind == domain.EventStatusChanged && !ev.Recognized {
		p.metrics.ObserveUnknownToken()
		p.log.Infow("unknown status token", "token", ev.Token, "line", line)
	}
	return ev
}

// Resolve scans lines (oldest first) from the newest backwards and returns the
// effective status color and notification intent. Each line is classified at
// most once; the scan stops at the first line that resolves a color.
func (p *Parser) Resolve(lines []string) domain.Resolution {
	activity := false
	first := true

	for i := len(lines) - 1; i >= 0; i-- {
		ev := p.Classify(lines[i])
		if !ev.Matched() {
			continue
		}
		mostRecent := first
		first = false

		switch ev.Kind {
		case domain.EventActivityAdded:
			activity = true

		case domain.EventStatusChanged:
			color, ok := ev.Color()
			// An icon transition away from NewActivity settles the
			// notification state on its own, even towards an unknown status.
			if mostRecent && ev.Rule == domain.RuleIconChange {
				if !ok {
					return p.resolved(domain.Resolution{Notify: domain.NotifySuppress})
				}
				return p.resolved(domain.Resolution{Color: &color, Status: ev.Status, Notify: domain.NotifySuppress})
			}
			if !ok {
				// Unknown status: no color change, keep looking
				continue
			}
			res := domain.Resolution{Color: &color, Status: ev.Status, Notify: domain.NotifySuppress}
			if activity {
				res.Notify = domain.NotifyFire
			}
			return p.resolved(res)
		}
	}

	if activity {
		return p.resolved(domain.Resolution{Notify: domain.NotifyFire})
	}
	return domain.Resolution{Notify: domain.NotifyUnchanged}
}

func (p *Parser) resolved(res domain.Resolution) domain.Resolution {
	p.metrics.ObserveResolution(res.Notify.String())
	p.log.Debugw("resolved batch",
		"status", res.Status,
		"has_color", res.HasColor(),
		"notify", res.Notify.String(),
	)
	return res
}
