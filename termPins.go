package main

import (
	"strings"

	"dscheirer.com/segmux/gpio"
	"dscheirer.com/segmux/multiplex"
	"dscheirer.com/segmux/segment"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// termPins simulates the wired display in the terminal. It watches the
// multiplexed writes and latches the first full pattern each digit shows
// after its common line goes on, the way the eye would see it.
type termPins struct {
	segIndex   map[int]int // pin -> segment
	digitIndex map[int]int // pin -> digit, ones first
	segOn      gpio.Level
	digitOn    gpio.Level

	current int // lit digit, -1 for none
	fresh   bool
	working segment.Pattern
	latched []segment.Pattern
	drawn   []segment.Pattern
	draw    func(lines []string)
	outputs map[int]bool
}

func newTermPins(segPins [segment.Count]int, digitPins []int, w multiplex.Wiring) *termPins {
	tp := &termPins{
		segIndex:   make(map[int]int),
		digitIndex: make(map[int]int),
		current:    -1,
		latched:    make([]segment.Pattern, len(digitPins)),
		drawn:      make([]segment.Pattern, len(digitPins)),
		outputs:    make(map[int]bool),
	}
	for i, p := range segPins {
		tp.segIndex[p] = i
	}
	for i, p := range digitPins {
		tp.digitIndex[p] = i
	}
	tp.segOn, tp.digitOn = gpio.High, gpio.High
	if w.Segments == multiplex.Negative {
		tp.segOn = gpio.Low
	}
	if w.Digits == multiplex.Negative {
		tp.digitOn = gpio.Low
	}
	tp.draw = tp.termboxDraw
	return tp
}

// openTermPins takes over the terminal, Ctrl-C or q calls quit
func openTermPins(segPins [segment.Count]int, digitPins []int, w multiplex.Wiring, quit func()) (*termPins, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	termbox.Flush()

	tp := newTermPins(segPins, digitPins, w)
	go tp.pollKeys(quit)
	return tp, nil
}

// pollKeys runs until Close, termbox.Interrupt blocks unless someone
// is polling
func (tp *termPins) pollKeys(quit func()) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				quit()
			}
		case termbox.EventInterrupt:
			return
		}
	}
}

func (tp *termPins) Close() error {
	termbox.Interrupt()
	termbox.Close()
	return nil
}

func (tp *termPins) Output(pin int) error {
	tp.outputs[pin] = true
	return nil
}

func (tp *termPins) Write(pin int, level gpio.Level) error {
	if !tp.outputs[pin] {
		return errors.Errorf("pin %d is not an output", pin)
	}
	if seg, ok := tp.segIndex[pin]; ok {
		tp.working[seg] = level == tp.segOn
		// H is written last, the pattern is complete
		if seg == segment.H && tp.current >= 0 && tp.fresh {
			tp.fresh = false
			tp.latched[tp.current] = tp.working
			tp.redraw()
		}
		return nil
	}

	if idx, ok := tp.digitIndex[pin]; ok {
		if level == tp.digitOn {
			tp.current = idx
			tp.fresh = true
		} else if tp.current == idx {
			tp.current = -1
		}
	}
	return nil
}

// redraw only when a digit changed, most refreshes don't
func (tp *termPins) redraw() {
	changed := false
	for i := range tp.latched {
		if tp.latched[i] != tp.drawn[i] {
			changed = true
		}
	}
	if !changed {
		return
	}
	copy(tp.drawn, tp.latched)

	// most significant digit on the left
	patterns := make([]segment.Pattern, len(tp.drawn))
	for i, p := range tp.drawn {
		patterns[len(patterns)-1-i] = p
	}
	tp.draw(strings.Split(segment.Dump(patterns), "\n"))
}

func (tp *termPins) termboxDraw(lines []string) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, line := range lines {
		for x, ch := range line {
			termbox.SetCell(x+1, y+1, ch, termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
		}
	}
	hint := "q to quit"
	for x, ch := range hint {
		termbox.SetCell(x+1, len(lines)+2, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
	termbox.Flush()
}
