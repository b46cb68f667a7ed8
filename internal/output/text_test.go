package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
)

func plainWriter(buf *bytes.Buffer) *TextWriter {
	w := NewTextWriter(buf, false)
	w.now = func() time.Time { return time.Date(2025, 12, 11, 10, 4, 5, 6_000_000, time.UTC) }
	return w
}

func TestTextWriter_WriteCommand(t *testing.T) {
	var buf bytes.Buffer
	w := plainWriter(&buf)

	state := domain.AppState{Mode: domain.ModeNormal, LastColor: domain.Yellow}
	require.NoError(t, w.WriteCommand(actuator.SetColor(domain.Yellow), state, nil))
	require.NoError(t, w.WriteCommand(actuator.Notify(), state, errors.New("timeout")))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "10:04:05.006 set_color  #FFFFFF00 yellow mode=normal", string(lines[0]))
	assert.Contains(t, string(lines[1]), "notify")
	assert.Contains(t, string(lines[1]), "failed: timeout")
}

func TestTextWriter_WriteClassification(t *testing.T) {
	var buf bytes.Buffer
	w := plainWriter(&buf)

	require.NoError(t, w.WriteClassification(1, domain.LogEvent{}))
	assert.Empty(t, buf.String(), "unmatched lines are skipped")

	require.NoError(t, w.WriteClassification(2, domain.LogEvent{
		Kind: domain.EventStatusChanged, Rule: domain.RuleStatusAdded, Token: "Busy",
		Status: domain.StatusBusy, Recognized: true,
	}))
	require.NoError(t, w.WriteClassification(3, domain.LogEvent{
		Kind: domain.EventStatusChanged, Rule: domain.RuleStatusAdded, Token: "Sleeping",
		Status: domain.StatusUnknown,
	}))

	out := buf.String()
	assert.Contains(t, out, "Busy -> Busy")
	assert.Contains(t, out, "Sleeping (unrecognized)")
}

func TestTextWriter_WriteResolution(t *testing.T) {
	var buf bytes.Buffer
	w := plainWriter(&buf)

	red := domain.Red
	require.NoError(t, w.WriteResolution(12, domain.Resolution{Color: &red, Status: domain.StatusBusy, Notify: domain.NotifyFire}))

	out := buf.String()
	assert.Contains(t, out, "Lines:  12")
	assert.Contains(t, out, "Color:  red (Busy)")
	assert.Contains(t, out, "Notify: fire")
}

func TestTextWriter_WriteErrorAndStatus(t *testing.T) {
	var buf bytes.Buffer
	w := plainWriter(&buf)

	require.NoError(t, w.WriteError("SERIAL_FAILED", "open COM9: no such port", "check the cable"))
	require.NoError(t, w.WriteStatus(domain.AppState{Mode: domain.ModeGoAway, LastColor: domain.Green}))

	out := buf.String()
	assert.Contains(t, out, "Error [SERIAL_FAILED]: open COM9: no such port\nHint: check the cable\n")
	assert.Contains(t, out, "Mode: go_away  Showing: red")
}

func TestTextWriter_ColorAddsStyling(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, true)

	require.NoError(t, w.WriteWarning("careful"))
	assert.Contains(t, buf.String(), "careful")
}
