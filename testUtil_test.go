package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"dscheirer.com/segmux/gpio"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

var cfgFile string = "./test/config.conf"

var errBoom = errors.New("boom")

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

// testRuntime loads the test config, overrides are applied before the
// display is built
func testRuntime(t *testing.T, overrides map[string]interface{}) (runtimeConfig, clockwork.FakeClock, *gpio.Recorder) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))

	settings, err := initSettings(cfgFile)
	assert.NilError(t, err)
	for k, v := range overrides {
		settings.settings[k] = v
	}

	clock := clockwork.NewFakeClock()
	rt := initRuntime(settings, clock)

	rec := gpio.NewRecorder()
	rt.display, err = openDisplay(rt, rec)
	assert.NilError(t, err)
	rec.Reset()

	return rt, clock, rec
}

// testBlockDuration moves the clock on and waits for the loop to block again
func testBlockDuration(clock clockwork.FakeClock, d time.Duration) {
	clock.Advance(d)
	clock.BlockUntil(1)
}

func testQuit(rt runtimeConfig) {
	rt.comms.stop()
	wg.Wait()
}

// litDigits lists the digit pins switched on, in order
func litDigits(rt runtimeConfig, rec *gpio.Recorder) []int {
	_, digitPins, wiring, _ := rt.settings.wiring()
	isDigit := make(map[int]bool)
	for _, p := range digitPins {
		isDigit[p] = true
	}
	on := wiring.Digits.String() == "positive"

	var ret []int
	for _, e := range rec.Audit() {
		if !e.Output && isDigit[e.Pin] && bool(e.Level) == on {
			ret = append(ret, e.Pin)
		}
	}
	return ret
}
