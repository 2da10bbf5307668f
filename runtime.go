package main

import (
	"sync"

	"dscheirer.com/segmux/multiplex"
	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
	content  chan contentMsg
}

// stop closes quit, safe to call more than once
func (c commChannels) stop() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

type runtimeConfig struct {
	settings configSettings
	comms    commChannels
	clock    clockwork.Clock
	display  *multiplex.Display
	logger   flogger
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
		content:  make(chan contentMsg, 1),
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "main"},
	}
}
