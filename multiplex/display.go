// Package multiplex drives an array of seven-segment digits that share
// their segment lines, lighting one digit's common line at a time.
//
// Digits are added in order with AddDigit, the first one added is the
// ones place for the number printers. The display is refreshed either a
// whole sweep at a time with RefreshAll, from a control loop, or one digit
// per call with RefreshNext, from a periodic timer. All methods are safe
// for concurrent use.
package multiplex

import (
	"sync"

	"dscheirer.com/segmux/gpio"
	"dscheirer.com/segmux/segment"
	"github.com/pkg/errors"
)

// Pins is the GPIO the display writes through.
type Pins interface {
	Output(pin int) error
	Write(pin int, level gpio.Level) error
}

// ErrNoSuchDigit is returned for a digit index outside the chain
var ErrNoSuchDigit = errors.New("no such digit")

// DigitState is a copy of one digit's content.
type DigitState struct {
	Pin     int  `json:"pin"`
	Content byte `json:"-"`
	Dot     bool `json:"dot"`
}

// Display owns the segment lines and the digit chain.
type Display struct {
	mu      sync.Mutex
	pins    Pins
	segPins [segment.Count]int
	seg     levels
	dig     levels
	chain   chain
}

// New configures the eight segment lines (A-G, then the dot) as outputs
// and blanks them. The wiring cannot be changed afterwards.
func New(pins Pins, segmentPins [segment.Count]int, wiring Wiring) (*Display, error) {
	d := &Display{
		pins:    pins,
		segPins: segmentPins,
		seg:     levelsFor(wiring.Segments),
		dig:     levelsFor(wiring.Digits),
		chain:   newChain(),
	}

	for i, pin := range segmentPins {
		if err := pins.Output(pin); err != nil {
			return nil, errors.Wrapf(err, "segment %c on pin %d", 'A'+i, pin)
		}
	}
	if err := d.drive(' ', false); err != nil {
		return nil, err
	}

	return d, nil
}

// AddDigit appends a digit whose common line is on pin. The line is
// switched off right away so the new digit does not flash.
func (d *Display) AddDigit(pin int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.pins.Output(pin); err != nil {
		return errors.Wrapf(err, "digit on pin %d", pin)
	}
	if err := d.pins.Write(pin, d.dig.off); err != nil {
		return errors.Wrapf(err, "digit on pin %d", pin)
	}
	d.chain.append(pin)
	return nil
}

// Digits returns the number of digits added so far.
func (d *Display) Digits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chain.len()
}

// SetDigit sets the content of digit i directly.
func (d *Display) SetDigit(i int, c byte, dot bool) error {
	if !segment.Valid(c) {
		return errors.Wrapf(segment.ErrInvalidCharacter, "digit %d: %q", i, c)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= d.chain.len() {
		return errors.Wrapf(ErrNoSuchDigit, "digit %d", i)
	}
	d.chain.digits[i].content = c
	d.chain.digits[i].dot = dot
	return nil
}

// Digit returns the content of digit i.
func (d *Display) Digit(i int) (byte, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= d.chain.len() {
		return 0, false, errors.Wrapf(ErrNoSuchDigit, "digit %d", i)
	}
	dg := d.chain.digits[i]
	return dg.content, dg.dot, nil
}

// Snapshot copies the content of every digit, ones place first.
func (d *Display) Snapshot() []DigitState {
	d.mu.Lock()
	defer d.mu.Unlock()

	ret := make([]DigitState, 0, d.chain.len())
	d.chain.each(func(dg *digit) {
		ret = append(ret, DigitState{Pin: dg.pin, Content: dg.content, Dot: dg.dot})
	})
	return ret
}

// SetAndDrive puts c on the segment lines right away. An unknown
// character blanks the segments and returns the encoding error.
func (d *Display) SetAndDrive(c byte, dot bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drive(c, dot)
}

// Blank switches every segment off.
func (d *Display) Blank() error {
	return d.SetAndDrive(' ', false)
}

// RefreshAll lights each digit in turn, in chain order, and leaves the
// display dark. A digit left lit by RefreshNext is switched off first.
func (d *Display) RefreshAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.chain.len() == 0 {
		return nil
	}

	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}

	if err := d.release(); err != nil {
		return err
	}
	d.chain.reset()

	d.chain.each(func(dg *digit) {
		keep(d.enable(dg, true))
		keep(d.drive(dg.content, dg.dot))
		keep(d.drive(' ', false))
		keep(d.enable(dg, false))
	})
	return first
}

// RefreshNext moves the display on by one digit: blank, switch off the
// digit that was lit, switch on the next one, draw it. Meant to be called
// at a fixed rate of a few hundred Hz.
func (d *Display) RefreshNext() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.chain.len() == 0 {
		return nil
	}

	// stay put if the lit digit can't be switched off, two common lines
	// must never be on together
	if err := d.release(); err != nil {
		return err
	}

	next := d.chain.advance()
	if err := d.enable(next, true); err != nil {
		return err
	}
	return d.drive(next.content, next.dot)
}

// Off blanks the segments and switches off the digit RefreshNext left lit.
// The next RefreshNext starts again from the first digit.
func (d *Display) Off() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.release(); err != nil {
		return err
	}
	d.chain.reset()
	return nil
}

// release blanks and switches off the selected digit, the cursor stays.
// The digit is switched off even when the blank fails, the first error
// is returned.
func (d *Display) release() error {
	err := d.drive(' ', false)
	if sel := d.chain.selected(); sel != nil {
		if offErr := d.enable(sel, false); err == nil {
			err = offErr
		}
	}
	return err
}

func (d *Display) enable(dg *digit, on bool) error {
	level := d.dig.off
	if on {
		level = d.dig.on
	}
	return errors.Wrapf(d.pins.Write(dg.pin, level), "digit on pin %d", dg.pin)
}

// drive writes all eight segment lines, the first write error is returned
func (d *Display) drive(c byte, dot bool) error {
	p, encErr := segment.Encode(c, dot)

	var first error
	for i, on := range p {
		level := d.seg.off
		if on {
			level = d.seg.on
		}
		if err := d.pins.Write(d.segPins[i], level); err != nil && first == nil {
			first = errors.Wrapf(err, "segment %c on pin %d", 'A'+i, d.segPins[i])
		}
	}
	if first != nil {
		return first
	}
	return encErr
}
