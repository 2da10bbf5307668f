package multiplex

import "dscheirer.com/segmux/gpio"

// Mode says which logic level lights a line.
type Mode int

const (
	// Positive drives High for on
	Positive Mode = iota
	// Negative drives Low for on
	Negative
)

func (m Mode) String() string {
	switch m {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "unknown"
}

// Wiring is the drive polarity of the segment lines and the digit
// common lines.
type Wiring struct {
	Segments Mode
	Digits   Mode
}

var (
	// CommonCathode: segments source current, the common line sinks it
	CommonCathode = Wiring{Segments: Positive, Digits: Negative}
	// CommonAnode: the common line sources current, segments sink it
	CommonAnode = Wiring{Segments: Negative, Digits: Positive}
)

// levels is the physical on/off pair for one mode
type levels struct {
	on  gpio.Level
	off gpio.Level
}

func levelsFor(m Mode) levels {
	if m == Negative {
		return levels{on: gpio.Low, off: gpio.High}
	}
	return levels{on: gpio.High, off: gpio.Low}
}
