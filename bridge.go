// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

func init() {
	// The web-view bridge requires all API calls from the same OS thread.
	runtime.LockOSThread()
}

// Mouse event types (BDMouseEventType / BDMouseButton)
const (
	mouseEventTypeMoved = 0
	mouseEventTypeDown  = 1
	mouseEventTypeUp    = 2

	mouseButtonNone  = 0
	mouseButtonLeft  = 1
	mouseButtonRight = 3
)

const scrollEventTypeByPixel = 0

// Navigation event tags produced by bd_view_poll_nav. Failure payloads carry
// the description after the tag, e.g. "failed:net::ERR_NAME_NOT_RESOLVED".
const (
	navTagStarted     = "started"
	navTagFinished    = "finished"
	navTagFailed      = "failed:"
	navTagProvisional = "provisional:"
)

var (
	bdInit             func(baseDir string, debug int32) int32
	bdCreateView       func(width, height, transparent, scripts, diagnostics int32) int32
	bdDestroyView      func(viewID int32)
	bdViewLoadURL      func(viewID int32, url string)
	bdTick             func()
	bdViewGetPixels    func(viewID int32) uintptr
	bdViewUnlockPixels func(viewID int32)
	bdViewGetWidth     func(viewID int32) uint32
	bdViewGetHeight    func(viewID int32) uint32
	bdViewGetRowBytes  func(viewID int32) uint32
	bdViewFireMouse    func(viewID int32, eventType, x, y, button int32)
	bdViewFireScroll   func(viewID int32, eventType, dx, dy int32)
	bdViewEvalJS       func(viewID int32, js string)
	bdViewPollNav      func(viewID int32, buf uintptr, bufSize int32) int32
	bdViewPollConsole  func(viewID int32, buf uintptr, bufSize int32) int32
	bdDestroy          func()
)

var (
	bridgeOnce  sync.Once
	bridgeErr   error
	bdInitOnce  sync.Once
	bdInitErr   error
	viewCount   int32
	viewCountMu sync.Mutex
)

func initBridge(baseDir string) error {
	bridgeOnce.Do(func() {
		bridgeErr = loadBridge(baseDir)
	})
	return bridgeErr
}

// ensureBDInit calls bd_init(baseDir, debug) once. Must follow initBridge.
func ensureBDInit(baseDir string, debug bool) error {
	bdInitOnce.Do(func() {
		d := int32(0)
		if debug {
			d = 1
		}
		if rc := bdInit(baseDir, d); rc != 0 {
			bdInitErr = fmt.Errorf("bd_init failed with code %d", rc)
		}
	})
	return bdInitErr
}

func registerView() {
	viewCountMu.Lock()
	viewCount++
	viewCountMu.Unlock()
}

func unregisterView() {
	viewCountMu.Lock()
	viewCount--
	if viewCount <= 0 {
		viewCount = 0
		bdDestroy()
	}
	viewCountMu.Unlock()
}

func resolveAllSymbols(handle uintptr) error {
	for _, reg := range []struct {
		fptr interface{}
		name string
	}{
		{&bdInit, "bd_init"},
		{&bdCreateView, "bd_create_view"},
		{&bdDestroyView, "bd_destroy_view"},
		{&bdViewLoadURL, "bd_view_load_url"},
		{&bdTick, "bd_tick"},
		{&bdViewGetPixels, "bd_view_get_pixels"},
		{&bdViewUnlockPixels, "bd_view_unlock_pixels"},
		{&bdViewGetWidth, "bd_view_get_width"},
		{&bdViewGetHeight, "bd_view_get_height"},
		{&bdViewGetRowBytes, "bd_view_get_row_bytes"},
		{&bdViewFireMouse, "bd_view_fire_mouse"},
		{&bdViewFireScroll, "bd_view_fire_scroll"},
		{&bdViewEvalJS, "bd_view_eval_js"},
		{&bdViewPollNav, "bd_view_poll_nav"},
		{&bdViewPollConsole, "bd_view_poll_console"},
		{&bdDestroy, "bd_destroy"},
	} {
		if err := registerSymbol(reg.fptr, handle, reg.name); err != nil {
			return fmt.Errorf("%s: %w (recompile %s)", reg.name, err, bridgeLibName())
		}
	}
	return nil
}

func registerSymbol(fptr interface{}, handle uintptr, name string) error {
	sym, err := getSymbolAddr(handle, name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}

func pollNavString(viewID int32) (string, bool) {
	var buf [2048]byte
	n := bdViewPollNav(viewID, uintptr(unsafe.Pointer(&buf[0])), int32(len(buf)))
	if n <= 0 {
		return "", false
	}
	return string(buf[:n]), true
}

func pollConsoleString(viewID int32) (string, bool) {
	var buf [2048]byte
	n := bdViewPollConsole(viewID, uintptr(unsafe.Pointer(&buf[0])), int32(len(buf)))
	if n <= 0 {
		return "", false
	}
	return string(buf[:n]), true
}
