package gpio

import (
	"fmt"

	"github.com/pkg/errors"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph drives pins through the periph.io host drivers, pins are
// looked up as "GPIO<n>".
type Periph struct {
	pins map[int]pgpio.PinOut
}

// OpenPeriph loads the host drivers.
func OpenPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	return &Periph{pins: make(map[int]pgpio.PinOut)}, nil
}

// Close is a no-op, periph has nothing to release.
func (p *Periph) Close() error {
	return nil
}

// Output resolves the pin, the direction is set by the first Write.
func (p *Periph) Output(pin int) error {
	name := fmt.Sprintf("GPIO%d", pin)
	pp := gpioreg.ByName(name)
	if pp == nil {
		return errors.Errorf("no such pin: %s", name)
	}
	p.pins[pin] = pp
	return nil
}

// Write drives an output pin to level.
func (p *Periph) Write(pin int, level Level) error {
	pp, ok := p.pins[pin]
	if !ok {
		return errors.Errorf("pin %d is not an output", pin)
	}
	return errors.Wrapf(pp.Out(pgpio.Level(level)), "write GPIO%d", pin)
}
