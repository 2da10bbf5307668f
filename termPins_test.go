package main

import (
	"strings"
	"testing"

	"dscheirer.com/segmux/gpio"
	"dscheirer.com/segmux/multiplex"
	"dscheirer.com/segmux/segment"
	"gotest.tools/assert"
)

var (
	termSegPins   = [segment.Count]int{26, 19, 13, 6, 5, 22, 27, 17}
	termDigitPins = []int{21, 20, 16, 12}
)

type drawCapture struct {
	draws int
	lines []string
}

func (c *drawCapture) draw(lines []string) {
	c.draws++
	c.lines = lines
}

func termDisplay(t *testing.T, w multiplex.Wiring) (*termPins, *multiplex.Display, *drawCapture) {
	tp := newTermPins(termSegPins, termDigitPins, w)
	capture := &drawCapture{}
	tp.draw = capture.draw

	d, err := multiplex.New(tp, termSegPins, w)
	assert.NilError(t, err)
	for _, p := range termDigitPins {
		assert.NilError(t, d.AddDigit(p))
	}
	return tp, d, capture
}

func encodeAll(t *testing.T, chars string, dots string) []segment.Pattern {
	var ret []segment.Pattern
	for i := 0; i < len(chars); i++ {
		p, err := segment.Encode(chars[i], dots[i] == '.')
		assert.NilError(t, err)
		ret = append(ret, p)
	}
	return ret
}

func TestTermPinsDrawsDisplay(t *testing.T) {
	for _, w := range []multiplex.Wiring{multiplex.CommonCathode, multiplex.CommonAnode} {
		_, d, capture := termDisplay(t, w)
		assert.Equal(t, capture.draws, 0)

		assert.NilError(t, d.Print("12.34"))
		assert.NilError(t, d.RefreshAll())
		assert.Equal(t, capture.draws, 4, "every digit changed")

		want := strings.Split(segment.Dump(encodeAll(t, "1234", " .  ")), "\n")
		assert.DeepEqual(t, capture.lines, want)

		// nothing changed, nothing drawn
		assert.NilError(t, d.RefreshAll())
		assert.Equal(t, capture.draws, 4)
	}
}

func TestTermPinsRefreshNext(t *testing.T) {
	_, d, capture := termDisplay(t, multiplex.CommonCathode)
	d.PrintHex(0xbeef)

	for range termDigitPins {
		assert.NilError(t, d.RefreshNext())
	}
	want := strings.Split(segment.Dump(encodeAll(t, "BEEF", "    ")), "\n")
	assert.DeepEqual(t, capture.lines, want)

	// the blank written by release must not be latched
	assert.NilError(t, d.Off())
	assert.DeepEqual(t, capture.lines, want)
}

func TestTermPinsNeedsOutput(t *testing.T) {
	tp := newTermPins(termSegPins, termDigitPins, multiplex.CommonCathode)
	assert.ErrorContains(t, tp.Write(26, gpio.High), "not an output")
	assert.NilError(t, tp.Output(26))
	assert.NilError(t, tp.Write(26, gpio.High))
}
