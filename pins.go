package main

import (
	"dscheirer.com/segmux/gpio"
	"dscheirer.com/segmux/multiplex"
	"github.com/pkg/errors"
)

// pinBackend is the GPIO the display is wired to
type pinBackend interface {
	multiplex.Pins
	Close() error
}

func openPins(rt runtimeConfig) (pinBackend, error) {
	backend := rt.settings.GetString(sBackend)
	rt.logger.Printf("opening %s pins", backend)

	switch backend {
	case "rpio":
		p, err := gpio.OpenRPIO()
		if err != nil {
			return nil, err
		}
		return p, nil
	case "periph":
		p, err := gpio.OpenPeriph()
		if err != nil {
			return nil, err
		}
		return p, nil
	case "sim":
		rec := gpio.NewRecorder()
		rec.Limit = rt.settings.GetInt(sAuditLimit)
		return rec, nil
	case "term":
		segPins, digitPins, wiring, err := rt.settings.wiring()
		if err != nil {
			return nil, err
		}
		p, err := openTermPins(segPins, digitPins, wiring, rt.comms.stop)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errors.Errorf("unknown backend: %q", backend)
}

// openDisplay builds the display from the settings, digits are added
// ones place first
func openDisplay(rt runtimeConfig, pins multiplex.Pins) (*multiplex.Display, error) {
	segPins, digitPins, wiring, err := rt.settings.wiring()
	if err != nil {
		return nil, err
	}

	display, err := multiplex.New(pins, segPins, wiring)
	if err != nil {
		return nil, err
	}
	for _, p := range digitPins {
		if err := display.AddDigit(p); err != nil {
			return nil, err
		}
	}
	rt.logger.Printf("display has %d digits, %+v", display.Digits(), wiring)
	return display, nil
}
