// Package gpio provides the output pin backends the display is driven through.
package gpio

// Level is a logic level on an output pin.
type Level bool

// Low and High are the two pin levels.
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "High"
	}
	return "Low"
}
