package app

import "time"

// runRender drives the interpolator at RenderFPS, independent of the
// camera rate. Each tick advances every item toward its current target
// and hands the snapshot to the registered sink (the WebSocket hub).
func (a *App) runRender(stop <-chan struct{}) {
	defer a.wg.Done()

	interval := time.Second / time.Duration(RenderFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			transforms := a.controller.Advance(dt)

			a.mu.RLock()
			sink := a.onTransforms
			a.mu.RUnlock()
			if sink != nil {
				sink(transforms)
			}
		}
	}
}
