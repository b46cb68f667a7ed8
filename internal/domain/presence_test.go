package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromToken(t *testing.T) {
	tests := []struct {
		token  string
		want   PresenceStatus
		wantOK bool
	}{
		{"Available", StatusAvailable, true},
		{"xxAvailable)", StatusAvailable, true},
		{"Busy,", StatusBusy, true},
		{"InAMeeting", StatusInAMeeting, true},
		{"OnThePhone", StatusOnThePhone, true},
		{"(Presenting)", StatusPresenting, true},
		{"Away", StatusAway, true},
		{"BeRightBack", StatusBeRightBack, true},
		{"Offline.", StatusOffline, true},
		{"Unknown", StatusUnknown, true},
		{"PresenceUnknown", StatusUnknown, true},
		{"DoNotDisturb", StatusUnknown, false},
		{"", StatusUnknown, false},
		// first vocabulary entry wins
		{"AvailableBusy", StatusAvailable, true},
		{"BusyAvailable", StatusAvailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := StatusFromToken(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestStatusFromTokenSubstringLaw(t *testing.T) {
	wrappers := [][2]string{{"", ""}, {"[", "]"}, {"prefix-", "-suffix"}, {"  ", "\t"}}
	for _, s := range Statuses {
		for _, w := range wrappers {
			got, ok := StatusFromToken(w[0] + string(s) + w[1])
			assert.True(t, ok)
			assert.Equal(t, s, got, "token %q", w[0]+string(s)+w[1])
		}
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status PresenceStatus
		want   Color
		wantOK bool
	}{
		{StatusAvailable, Green, true},
		{StatusBusy, Red, true},
		{StatusInAMeeting, Red, true},
		{StatusOnThePhone, Red, true},
		{StatusPresenting, Red, true},
		{StatusAway, Yellow, true},
		{StatusBeRightBack, Yellow, true},
		{StatusOffline, Off, true},
		{StatusUnknown, Color{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, ok := tt.status.Color()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	assert.Equal(t, "FF00FF00", Green.Hex())
	assert.Equal(t, "00000000", Off.Hex())

	c, err := ParseColor("#ff0000ff")
	require.NoError(t, err)
	assert.Equal(t, NotifyColor, c)

	_, err = ParseColor("#FFF")
	assert.Error(t, err)
	_, err = ParseColor("GGGGGGGG")
	assert.Error(t, err)
}

func TestAppStateDisplayed(t *testing.T) {
	s := AppState{Mode: ModeNormal, LastColor: Yellow}
	assert.Equal(t, Yellow, s.Displayed())

	s.Mode = ModeGoAway
	assert.Equal(t, Red, s.Displayed())
	assert.Equal(t, Yellow, s.LastColor)
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"go-away":   ActionGoAway,
		"GoAway":    ActionGoAway,
		"yall-okay": ActionYallOkay,
		"okay":      ActionYallOkay,
		" notify ":  ActionNotify,
	} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAction("dance")
	assert.Error(t, err)
}
