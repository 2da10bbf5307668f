package multiplex

import (
	"math"

	"dscheirer.com/segmux/segment"
	"github.com/pkg/errors"
)

// ErrTooLong is returned when text does not fit on the display
var ErrTooLong = errors.New("too many characters")

// the overflow marker lights the dots of this many low digits
const overflowDots = 3

const hexDigits = "0123456789ABCDEF"

// maxDecimal is 10^n-1, saturated at the top of uint64
func maxDecimal(n int) uint64 {
	m := uint64(1)
	for i := 0; i < n; i++ {
		if m > math.MaxUint64/10 {
			return math.MaxUint64
		}
		m *= 10
	}
	return m - 1
}

// PrintDec shows a signed decimal number, ones place on the first digit
// with its dot lit. A negative number gives up the last digit to the
// minus sign, so its limit is one digit shorter. Numbers that don't fit show as blanks with the dots of the
// first three digits lit, plus the minus sign when negative.
func (d *Display) PrintDec(n int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := d.chain.len()
	if count == 0 {
		return
	}
	limit := maxDecimal(count)

	if n >= 0 {
		mag := uint64(n)
		if mag > limit {
			d.overflow(false)
			return
		}
		d.decimal(mag, false)
		return
	}

	// -(n+1) can't overflow, unlike -n
	mag := uint64(-(n + 1)) + 1
	if mag > maxDecimal(count-1) {
		d.overflow(true)
		return
	}
	d.decimal(mag, true)
}

func (d *Display) decimal(mag uint64, negative bool) {
	last := d.chain.len() - 1
	for i := range d.chain.digits {
		dg := &d.chain.digits[i]
		switch {
		case negative && i == last:
			dg.content = '-'
		case mag > 0 || i == 0:
			dg.content = '0' + byte(mag%10)
		default:
			dg.content = ' '
		}
		dg.dot = false
		mag /= 10
	}
	d.chain.digits[0].dot = true
}

func (d *Display) overflow(negative bool) {
	last := d.chain.len() - 1
	for i := range d.chain.digits {
		dg := &d.chain.digits[i]
		dg.content = ' '
		if negative && i == last {
			dg.content = '-'
		}
		dg.dot = i < overflowDots
	}
}

// PrintHex shows an unsigned number in hex, ones place on the first digit.
// Digits that don't fit are dropped, no dots are lit.
func (d *Display) PrintHex(n uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chain.digits {
		dg := &d.chain.digits[i]
		if n > 0 || i == 0 {
			dg.content = hexDigits[n%16]
		} else {
			dg.content = ' '
		}
		dg.dot = false
		n /= 16
	}
}

type cell struct {
	c   byte
	dot bool
}

// layout splits text into digits, a '.' lights the dot of the character
// before it or stands alone on a blank digit
func layout(text string) ([]cell, error) {
	cells := make([]cell, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' {
			if n := len(cells); n > 0 && !cells[n-1].dot {
				cells[n-1].dot = true
			} else {
				cells = append(cells, cell{c: ' ', dot: true})
			}
			continue
		}
		if !segment.Valid(c) {
			return nil, errors.Wrapf(segment.ErrInvalidCharacter, "print %q: %q", text, c)
		}
		cells = append(cells, cell{c: c})
	}
	return cells, nil
}

// Print shows text right justified, the last character lands on the first
// digit. Nothing changes if the text has an unknown character or does
// not fit.
func (d *Display) Print(text string) error {
	cells, err := layout(text)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	count := d.chain.len()
	if count == 0 {
		return nil
	}
	if len(cells) > count {
		return errors.Wrapf(ErrTooLong, "print %q on %d digits", text, count)
	}

	for i := range d.chain.digits {
		dg := &d.chain.digits[i]
		if i < len(cells) {
			cl := cells[len(cells)-1-i]
			dg.content, dg.dot = cl.c, cl.dot
		} else {
			dg.content, dg.dot = ' ', false
		}
	}
	return nil
}

// Clear blanks every digit.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.chain.each(func(dg *digit) {
		dg.content = ' '
		dg.dot = false
	})
}
