package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
)

// segmux -config={config file}

func main() {
	configFile := flag.String("config", "/etc/default/segmux/segmux.conf", "config file path")
	flag.Parse()

	settings, err := initSettings(*configFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	// the terminal simulator owns stderr
	lj := setupLogging(settings, settings.GetString(sBackend) != "term")
	if lj != nil {
		defer lj.Close()
	}
	settings.Dump()

	rt := initRuntime(settings, clockwork.NewRealClock())

	pins, err := openPins(rt)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer pins.Close()

	rt.display, err = openDisplay(rt, pins)
	if err != nil {
		pins.Close()
		log.Fatal(err.Error())
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			rt.logger.Printf("got %v, stopping", s)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	startRefresher(rt)
	startContent(rt)
	startDisplayService(rt)

	wg.Wait()
}
