package multiplex

// digit is one position of the display
type digit struct {
	pin     int
	content byte
	dot     bool
}

// chain is the append-only list of digits plus the round robin cursor
// used by RefreshNext. Index 0 holds the ones place.
type chain struct {
	digits []digit
	cursor int // -1 until the first advance
}

func newChain() chain {
	return chain{cursor: -1}
}

func (c *chain) append(pin int) {
	c.digits = append(c.digits, digit{pin: pin, content: ' '})
}

func (c *chain) len() int {
	return len(c.digits)
}

func (c *chain) each(fn func(d *digit)) {
	for i := range c.digits {
		fn(&c.digits[i])
	}
}

// selected is the digit the cursor is on, nil before the first advance
func (c *chain) selected() *digit {
	if c.cursor < 0 {
		return nil
	}
	return &c.digits[c.cursor]
}

// advance moves the cursor to the next digit, wrapping after the last.
// The chain must not be empty.
func (c *chain) advance() *digit {
	c.cursor++
	if c.cursor >= len(c.digits) {
		c.cursor = 0
	}
	return &c.digits[c.cursor]
}

func (c *chain) reset() {
	c.cursor = -1
}
