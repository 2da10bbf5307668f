package main

import (
	"testing"
	"time"

	"dscheirer.com/segmux/multiplex"
	"gotest.tools/assert"
)

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	data := []byte(`{
		"digitPins": [1, 2, 3],
		"refreshPeriod": "5ms",
		"debugDump": "true",
		"auditLimit": "0x10",
		"mode": "clock",
		"unknown": 12
	}`)
	assert.NilError(t, s.settingsFromJSON(data))

	assert.DeepEqual(t, s.GetIntSlice(sDigitPins), []int{1, 2, 3})
	assert.Equal(t, s.GetDuration(sRefreshPeriod), 5*time.Millisecond)
	assert.Equal(t, s.GetBool(sDebugDump), true)
	assert.Equal(t, s.GetInt(sAuditLimit), 16)
	assert.Equal(t, s.GetString(sMode), modeClock)
	// untouched keys keep their defaults
	assert.DeepEqual(t, s.GetIntSlice(sSegmentPins), []int{26, 19, 13, 6, 5, 22, 27, 17})
}

func TestSettingsFromJSONErrors(t *testing.T) {
	tests := []struct {
		data string
		err  string
	}{
		{`{"digitPins": ["a"]}`, "setting digitPins"},
		{`{"refreshPeriod": "soon"}`, "setting refreshPeriod"},
		{`{"refreshPeriod": 5}`, "setting refreshPeriod"},
		{`{"auditLimit": "lots"}`, "setting auditLimit"},
		{`{"debugDump": "maybe"}`, "setting debugDump"},
	}
	for _, tc := range tests {
		s := defaultSettings()
		assert.ErrorContains(t, s.settingsFromJSON([]byte(tc.data)), tc.err, tc.data)
	}
}

func TestInitSettings(t *testing.T) {
	s, err := initSettings(cfgFile)
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sBackend), "sim")
	assert.Equal(t, s.GetString(sListen), "")
	assert.Equal(t, s.GetDuration(sRefreshPeriod), 2*time.Millisecond)

	_, err = initSettings("./test/missing.conf")
	assert.ErrorContains(t, err, "could not load conf file")
}

func TestSettingsGettersWrongType(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, s.GetString(sDebugDump), "")
	assert.Equal(t, s.GetBool(sMode), false)
	assert.Equal(t, s.GetDuration(sMode), time.Duration(-1))
	assert.Equal(t, s.GetInt(sMode), 0)
	assert.Assert(t, s.GetIntSlice(sMode) == nil)
}

func TestWiring(t *testing.T) {
	s := defaultSettings()
	segPins, digitPins, w, err := s.wiring()
	assert.NilError(t, err)
	assert.Equal(t, segPins[0], 26)
	assert.DeepEqual(t, digitPins, []int{21, 20, 16, 12})
	assert.Equal(t, w, multiplex.CommonCathode)

	s.settings[sSegmentMode] = "Negative"
	s.settings[sDigitMode] = "positive"
	_, _, w, err = s.wiring()
	assert.NilError(t, err)
	assert.Equal(t, w, multiplex.CommonAnode)
}

func TestWiringErrors(t *testing.T) {
	tests := []struct {
		key   string
		value interface{}
		err   string
	}{
		{sSegmentPins, []int{1, 2, 3, 4, 5, 6, 7}, "segmentPins needs 8 pins, got 7"},
		{sSegmentMode, "sideways", "segmentMode: bad mode"},
		{sDigitMode, "", "digitMode: bad mode"},
	}
	for _, tc := range tests {
		s := defaultSettings()
		s.settings[tc.key] = tc.value
		_, _, _, err := s.wiring()
		assert.ErrorContains(t, err, tc.err, tc.key)
	}
}
