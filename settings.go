package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"dscheirer.com/segmux/multiplex"
	"dscheirer.com/segmux/segment"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting keys
const (
	sBackend       = "backend"
	sSegmentPins   = "segmentPins"
	sDigitPins     = "digitPins"
	sSegmentMode   = "segmentMode"
	sDigitMode     = "digitMode"
	sRefreshPeriod = "refreshPeriod"
	sMode          = "mode"
	sStartText     = "startText"
	sListen        = "listen"
	sLogFile       = "logFile"
	sDebugDump     = "debugDump"
	sAuditLimit    = "auditLimit"
)

// content modes
const (
	modeStatic  = "static"
	modeClock   = "clock"
	modeCounter = "counter"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sBackend] = "sim"
	if runtime.GOARCH == "arm" {
		s[sBackend] = "rpio"
	}
	// BCM numbers, A-G then the dot
	s[sSegmentPins] = []int{26, 19, 13, 6, 5, 22, 27, 17}
	// ones digit first
	s[sDigitPins] = []int{21, 20, 16, 12}
	s[sSegmentMode] = multiplex.CommonCathode.Segments.String()
	s[sDigitMode] = multiplex.CommonCathode.Digits.String()
	s[sRefreshPeriod] = 2 * time.Millisecond
	s[sMode] = modeStatic
	s[sStartText] = "8.8.8.8."
	s[sListen] = "127.0.0.1:8080"
	s[sLogFile] = "/var/log/segmux.log"
	s[sDebugDump] = false
	// pin writes kept by the sim backend
	s[sAuditLimit] = 1000

	return configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			if err == jsonparser.KeyPathNotFoundError {
				continue
			}
			return errors.Wrapf(err, "setting %s", k)
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try a string, which allows hex
				str, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(str, 0, 64)
				}
			}
			if err == nil {
				s.settings[k] = int(val)
			}
		case []int:
			var vals []int
			var itemErr error
			_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, e error) {
				if itemErr != nil {
					return
				}
				if e != nil || dataType != jsonparser.Number {
					itemErr = errors.Errorf("%s must hold numbers", k)
					return
				}
				n, e := jsonparser.ParseInt(value)
				if e != nil {
					itemErr = e
					return
				}
				vals = append(vals, int(n))
			}, k)
			if err == nil {
				err = itemErr
			}
			if err == nil {
				s.settings[k] = vals
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var d time.Duration
				d, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = d
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

func initSettings(configFile string) (configSettings, error) {
	s := defaultSettings()

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return s, errors.Wrapf(err, "could not load conf file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)
	if err := s.settingsFromJSON(data); err != nil {
		return s, err
	}
	return s, nil
}

func parseMode(v string) (multiplex.Mode, error) {
	switch strings.ToLower(v) {
	case "positive":
		return multiplex.Positive, nil
	case "negative":
		return multiplex.Negative, nil
	}
	return 0, errors.Errorf("bad mode: %q", v)
}

// wiring returns the display layout: segment pins, digit pins and polarity
func (s *configSettings) wiring() ([segment.Count]int, []int, multiplex.Wiring, error) {
	var segPins [segment.Count]int
	var w multiplex.Wiring

	pins := s.GetIntSlice(sSegmentPins)
	if len(pins) != segment.Count {
		return segPins, nil, w, errors.Errorf("%s needs %d pins, got %d", sSegmentPins, segment.Count, len(pins))
	}
	copy(segPins[:], pins)

	var err error
	if w.Segments, err = parseMode(s.GetString(sSegmentMode)); err != nil {
		return segPins, nil, w, errors.Wrap(err, sSegmentMode)
	}
	if w.Digits, err = parseMode(s.GetString(sDigitMode)); err != nil {
		return segPins, nil, w, errors.Wrap(err, sDigitMode)
	}

	return segPins, s.GetIntSlice(sDigitPins), w, nil
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetIntSlice(key string) []int {
	switch v := s.settings[key].(type) {
	case []int:
		return v
	default:
		return nil
	}
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("%s : %T: %v", k, s.settings[k], s.settings[k])
	}
}
