// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import (
	"fmt"
	"strings"
)

// navEventKind classifies a navigation lifecycle event from the bridge.
type navEventKind int

const (
	navStarted navEventKind = iota
	navFinished
	navFailed
	navProvisionalFailed
)

// navEvent is one polled lifecycle event. description is set for the two
// failure kinds only.
type navEvent struct {
	kind        navEventKind
	description string
}

// viewDriver is the seam between the host and the native bridge. The
// production implementation drives one view in the shared library; tests
// substitute a fake so no native library or display is required.
//
// There is deliberately no way to fire keyboard events into the view: the
// terminal keeps keyboard ownership, so the bridge is never handed a key.
type viewDriver interface {
	LoadURL(url string)
	Tick()
	FireMouse(eventType, x, y, button int32)
	FireScroll(eventType, dx, dy int32)
	Eval(js string)
	PollNav() (navEvent, bool)
	PollConsole() (string, bool)
	Pixels() (ptr uintptr, w, h, rowBytes uint32)
	UnlockPixels()
	Destroy()
}

// viewConfig carries the creation flags for a bridge view.
type viewConfig struct {
	transparent bool
	scripts     bool
	diagnostics bool
}

// bridgeDriver drives one view in the backdrop_bridge shared library.
type bridgeDriver struct {
	viewID int32
}

func newBridgeDriver(width, height int, cfg viewConfig) (*bridgeDriver, error) {
	viewID := bdCreateView(int32(width), int32(height),
		flag(cfg.transparent), flag(cfg.scripts), flag(cfg.diagnostics))
	if viewID < 0 {
		return nil, fmt.Errorf("bd_create_view failed with code %d", viewID)
	}
	registerView()
	return &bridgeDriver{viewID: viewID}, nil
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (d *bridgeDriver) LoadURL(url string) {
	bdViewLoadURL(d.viewID, url)
}

// Tick pumps the shared web engine. The engine is process-global, so every
// live view ticking it per frame is harmless.
func (d *bridgeDriver) Tick() {
	bdTick()
}

func (d *bridgeDriver) FireMouse(eventType, x, y, button int32) {
	bdViewFireMouse(d.viewID, eventType, x, y, button)
}

func (d *bridgeDriver) FireScroll(eventType, dx, dy int32) {
	bdViewFireScroll(d.viewID, eventType, dx, dy)
}

func (d *bridgeDriver) Eval(js string) {
	bdViewEvalJS(d.viewID, js)
}

func (d *bridgeDriver) PollNav() (navEvent, bool) {
	raw, ok := pollNavString(d.viewID)
	if !ok {
		return navEvent{}, false
	}
	return parseNavEvent(raw), true
}

func (d *bridgeDriver) PollConsole() (string, bool) {
	return pollConsoleString(d.viewID)
}

func (d *bridgeDriver) Pixels() (uintptr, uint32, uint32, uint32) {
	ptr := bdViewGetPixels(d.viewID)
	if ptr == 0 {
		return 0, 0, 0, 0
	}
	return ptr, bdViewGetWidth(d.viewID), bdViewGetHeight(d.viewID), bdViewGetRowBytes(d.viewID)
}

func (d *bridgeDriver) UnlockPixels() {
	bdViewUnlockPixels(d.viewID)
}

func (d *bridgeDriver) Destroy() {
	bdDestroyView(d.viewID)
	unregisterView()
}

// parseNavEvent decodes the bridge's tagged navigation strings. Unknown tags
// are treated as post-commit failures so they at least reach the observer.
func parseNavEvent(raw string) navEvent {
	switch {
	case raw == navTagStarted:
		return navEvent{kind: navStarted}
	case raw == navTagFinished:
		return navEvent{kind: navFinished}
	case strings.HasPrefix(raw, navTagProvisional):
		return navEvent{kind: navProvisionalFailed, description: strings.TrimPrefix(raw, navTagProvisional)}
	case strings.HasPrefix(raw, navTagFailed):
		return navEvent{kind: navFailed, description: strings.TrimPrefix(raw, navTagFailed)}
	default:
		return navEvent{kind: navFailed, description: raw}
	}
}
