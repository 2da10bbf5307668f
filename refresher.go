package main

func startRefresher(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Refresher"}
	wg.Add(1)
	go runRefresher(rt)
}

// runRefresher steps the display one digit per period until quit, then
// leaves it dark
func runRefresher(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runRefresher")
	}()

	period := rt.settings.GetDuration(sRefreshPeriod)
	if period <= 0 {
		rt.logger.Printf("bad refresh period %v", period)
		return
	}

	// only log the start and end of a run of errors, this loop is fast
	failing := false
	for {
		err := rt.display.RefreshNext()
		if err != nil && !failing {
			rt.logger.Printf("refresh failed: %s", err.Error())
		} else if err == nil && failing {
			rt.logger.Println("refresh recovered")
		}
		failing = err != nil

		select {
		case <-rt.comms.quit:
			if err := rt.display.Off(); err != nil {
				rt.logger.Printf("display off: %s", err.Error())
			}
			return
		case <-rt.clock.After(period):
		}
	}
}
