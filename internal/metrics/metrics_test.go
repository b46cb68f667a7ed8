package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLine()
		m.ObserveEvent("status_changed")
		m.ObserveUnknownToken()
		m.ObserveResolution("fire")
		m.ObserveCommand("notify", errors.New("boom"))
	})
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveLine()
	m.ObserveLine()
	m.ObserveEvent("activity_added")
	m.ObserveUnknownToken()
	m.ObserveResolution("suppress")
	m.ObserveCommand("set_color", nil)
	m.ObserveCommand("set_color", errors.New("port busy"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.linesRead))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("activity_added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unknownTokens))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("suppress")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("set_color")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandFailures.WithLabelValues("set_color")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLine()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "deskbell_tail_lines_total 1")
}
