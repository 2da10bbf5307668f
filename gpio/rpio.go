package gpio

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// the bcm2835 exposes GPIO 0-53
const maxRPIOPin = 53

// RPIO drives pins through /dev/gpiomem.
type RPIO struct {
}

// OpenRPIO maps the GPIO registers, call Close when done.
func OpenRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "open rpio")
	}
	return &RPIO{}, nil
}

// Close unmaps the GPIO registers.
func (r *RPIO) Close() error {
	return rpio.Close()
}

func checkPin(pin int) error {
	if pin < 0 || pin > maxRPIOPin {
		return errors.Errorf("bad pin number: %d", pin)
	}
	return nil
}

// Output sets pin to output mode.
func (r *RPIO) Output(pin int) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	rpio.Pin(pin).Output()
	return nil
}

// Write drives pin to level.
func (r *RPIO) Write(pin int, level Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	p := rpio.Pin(pin)
	if level {
		p.High()
	} else {
		p.Low()
	}
	return nil
}
