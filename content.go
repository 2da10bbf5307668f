package main

import (
	"strings"
	"time"

	"dscheirer.com/segmux/multiplex"
	"dscheirer.com/segmux/segment"
	"github.com/pkg/errors"
)

const dContentTick = time.Second

const (
	cDec = iota
	cHex
	cText
	cClear
)

// contentMsg asks runContent to change what the display shows, the
// result goes to reply when it is set
type contentMsg struct {
	kind  int
	dec   int64
	hex   uint64
	text  string
	reply chan error
}

func decContent(n int64) contentMsg {
	return contentMsg{kind: cDec, dec: n, reply: make(chan error, 1)}
}

func hexContent(n uint64) contentMsg {
	return contentMsg{kind: cHex, hex: n, reply: make(chan error, 1)}
}

func textContent(s string) contentMsg {
	return contentMsg{kind: cText, text: s, reply: make(chan error, 1)}
}

func clearContent() contentMsg {
	return contentMsg{kind: cClear, reply: make(chan error, 1)}
}

func applyContent(d *multiplex.Display, msg contentMsg) error {
	switch msg.kind {
	case cDec:
		d.PrintDec(msg.dec)
	case cHex:
		d.PrintHex(msg.hex)
	case cText:
		return d.Print(msg.text)
	case cClear:
		d.Clear()
	default:
		return errors.Errorf("bad content kind: %d", msg.kind)
	}
	return nil
}

// displayText reads the digits left to right, dots included
func displayText(digits []multiplex.DigitState) string {
	var sb strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i].Content)
		if digits[i].Dot {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// dumpDisplay draws the digits left to right
func dumpDisplay(digits []multiplex.DigitState) string {
	patterns := make([]segment.Pattern, 0, len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		p, _ := segment.Encode(digits[i].Content, digits[i].Dot)
		patterns = append(patterns, p)
	}
	return segment.Dump(patterns)
}

// clockText is the time as hh.mm with the dot on even seconds and no
// leading zero
func clockText(now time.Time) string {
	format := "1504"
	if now.Second()%2 == 0 {
		format = "15.04"
	}
	s := now.Format(format)
	if s[0] == '0' {
		s = " " + s[1:]
	}
	return s
}

func startContent(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Content"}
	wg.Add(1)
	go runContent(rt)
}

func runContent(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runContent")
	}()

	mode := rt.settings.GetString(sMode)
	dump := rt.settings.GetBool(sDebugDump)
	var counter int64
	last := ""

	show := func(err error) {
		if err != nil {
			rt.logger.Printf("content error: %s", err.Error())
			return
		}
		digits := rt.display.Snapshot()
		text := displayText(digits)
		if text == last {
			return
		}
		last = text
		rt.logger.Printf("showing '%s'", text)
		if dump {
			rt.logger.Println("\n" + dumpDisplay(digits))
		}
	}

	show(rt.display.Print(rt.settings.GetString(sStartText)))

	// ticks keep to a fixed deadline, messages in between don't push it out
	next := rt.clock.Now().Add(dContentTick)
	for {
		wait := next.Sub(rt.clock.Now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-rt.comms.quit:
			return
		case msg := <-rt.comms.content:
			err := applyContent(rt.display, msg)
			if msg.reply != nil {
				msg.reply <- err
			}
			show(err)
		case now := <-rt.clock.After(wait):
			next = next.Add(dContentTick)
			if !next.After(now) {
				// fell behind, skip the missed ticks
				next = now.Add(dContentTick)
			}
			switch mode {
			case modeClock:
				show(rt.display.Print(clockText(rt.clock.Now())))
			case modeCounter:
				rt.display.PrintDec(counter)
				counter++
				show(nil)
			}
		}
	}
}
