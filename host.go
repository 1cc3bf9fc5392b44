// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// NavState is the lifecycle of the backdrop's one load attempt.
type NavState int

const (
	NavIdle NavState = iota
	NavLoading
	NavLoaded
	NavFailed
)

func (s NavState) String() string {
	switch s {
	case NavLoading:
		return "loading"
	case NavLoaded:
		return "loaded"
	case NavFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Options for creating a backdrop. All fields are optional.
type Options struct {
	BaseDir  string          // Directory containing the bridge shared library and web engine libraries. Defaults to working directory.
	Debug    bool            // Enable developer diagnostics in the view and bridge logging. Default false.
	Logger   *zerolog.Logger // Destination for console diagnostics when Debug is set. Defaults to a disabled logger.
	Observer NavigationObserver
	Keys     KeySink // Next responder for forwarded keyboard events.
}

// Backdrop hosts one web view composed behind the terminal. It owns the
// view's configuration and load lifecycle and routes input through a Router
// bound to the shared focus flag.
//
// The URL is set exactly once, at construction; showing different content
// means constructing a new Backdrop.
type Backdrop struct {
	view     viewDriver
	router   *Router
	focus    *FocusFlag
	observer NavigationObserver
	log      zerolog.Logger
	debug    bool

	url     string
	nav     NavState
	loadErr string

	width  int
	height int

	// Bounds in screen coordinates for the surface-local hit test. Set via
	// SetBounds; (0,0,0,0) means the whole screen.
	BoundsX, BoundsY, BoundsW, BoundsH int

	// Pointer state tracked by the per-frame adapter.
	mouseX, mouseY      int
	leftDown, rightDown bool

	// Texture allocation is deferred until the first frame so that headless
	// tests never touch the graphics driver.
	texture *ebiten.Image
	pixels  []byte

	closed bool
}

// New creates a backdrop view and immediately issues the load of url. The
// view is configured with script execution enabled, developer diagnostics
// per opts.Debug, and a transparent backing so no opaque fill ever shows
// where it does not cover the surface behind it.
//
// The load is asynchronous; New never blocks on the network. Progress is
// reported through opts.Observer as Update polls the bridge.
func New(width, height int, url string, focus *FocusFlag, opts *Options) (*Backdrop, error) {
	baseDir, debug := resolveOpts(opts)
	if err := initBridge(baseDir); err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	if err := ensureBDInit(baseDir, debug); err != nil {
		return nil, err
	}
	view, err := newBridgeDriver(width, height, viewConfig{
		transparent: true,
		scripts:     true,
		diagnostics: debug,
	})
	if err != nil {
		return nil, err
	}
	return newBackdrop(view, width, height, url, focus, opts), nil
}

func newBackdrop(view viewDriver, width, height int, url string, focus *FocusFlag, opts *Options) *Backdrop {
	bd := &Backdrop{
		view:     view,
		focus:    focus,
		observer: NopObserver{},
		log:      zerolog.Nop(),
		url:      url,
		width:    width,
		height:   height,
		pixels:   make([]byte, width*height*4),
	}
	var keys KeySink
	if opts != nil {
		if opts.Observer != nil {
			bd.observer = opts.Observer
		}
		if opts.Debug {
			bd.debug = true
			if opts.Logger != nil {
				bd.log = *opts.Logger
			}
		}
		keys = opts.Keys
	}
	bd.router = NewRouter(focus, keys)

	// The load is issued unconditionally as part of construction; there is
	// no separate "start" call and no reload.
	bd.view.LoadURL(url)
	bd.nav = NavLoading
	return bd
}

func resolveOpts(opts *Options) (string, bool) {
	debug := false
	baseDir := ""
	if opts != nil {
		baseDir = opts.BaseDir
		debug = opts.Debug
	}
	if baseDir == "" {
		baseDir, _ = os.Getwd()
		if _, err := os.Stat(filepath.Join(baseDir, bridgeLibName())); err != nil {
			if exe, _ := os.Executable(); exe != "" {
				baseDir = filepath.Dir(exe)
			}
		}
	}
	return baseDir, debug
}

// SetFocus updates the shared focus flag. Idempotent, callable at any rate;
// it only changes future routing decisions and never triggers a reload or
// re-render of the web content.
func (bd *Backdrop) SetFocus(focused bool) {
	bd.focus.Set(focused)
}

// Focused reports the current value of the shared flag.
func (bd *Backdrop) Focused() bool {
	return bd.focus.Get()
}

// SetBounds sets the screen rectangle of the backdrop. Pointer events routed
// to it are only delivered when they land inside these bounds; keyboard
// routing is unaffected. Use (0,0,0,0) to cover the whole screen.
func (bd *Backdrop) SetBounds(x, y, w, h int) {
	bd.BoundsX, bd.BoundsY, bd.BoundsW, bd.BoundsH = x, y, w, h
}

// SetKeySink replaces the next responder for forwarded keyboard events.
func (bd *Backdrop) SetKeySink(next KeySink) {
	bd.router.setSink(next)
}

// Router exposes the routing decision table, for embedders that drive their
// own input adapter instead of Update.
func (bd *Backdrop) Router() *Router {
	return bd.router
}

// URL returns the load target supplied at construction.
func (bd *Backdrop) URL() string {
	return bd.url
}

// NavState returns the current load lifecycle state.
func (bd *Backdrop) NavState() NavState {
	return bd.nav
}

// LoadError returns the failure description once NavState is NavFailed.
func (bd *Backdrop) LoadError() string {
	return bd.loadErr
}

// HandlePointer routes one pointer event. Events routed to the backdrop are
// delivered to the web view subject to the surface-local bounds test; events
// routed to pass-through are not delivered anywhere by this host, they fall
// to whatever the embedder composed behind the backdrop.
func (bd *Backdrop) HandlePointer(ev PointerEvent) Target {
	if ev.Kind == PointerDown && !bd.router.AcceptsFirstPress() {
		return TargetPassThrough
	}
	target := bd.router.RoutePointer(ev)
	if target == TargetBackdrop {
		bd.deliverPointer(ev)
	}
	return target
}

func (bd *Backdrop) deliverPointer(ev PointerEvent) {
	if bd.closed || !bd.inBounds(ev.X, ev.Y) {
		return
	}
	lx, ly := ev.X-bd.BoundsX, ev.Y-bd.BoundsY
	if bd.BoundsW <= 0 {
		lx, ly = ev.X, ev.Y
	}
	switch ev.Kind {
	case PointerMove:
		bd.view.FireMouse(mouseEventTypeMoved, int32(lx), int32(ly), mouseButtonNone)
	case PointerDown:
		bd.view.FireMouse(mouseEventTypeDown, int32(lx), int32(ly), bridgeButton(ev.Button))
	case PointerUp:
		bd.view.FireMouse(mouseEventTypeUp, int32(lx), int32(ly), bridgeButton(ev.Button))
	case PointerScroll:
		bd.view.FireScroll(scrollEventTypeByPixel, 0, int32(ev.ScrollY*100))
	}
}

func bridgeButton(b MouseButton) int32 {
	switch b {
	case ButtonLeft:
		return mouseButtonLeft
	case ButtonRight:
		return mouseButtonRight
	default:
		return mouseButtonNone
	}
}

// HandleKey forwards one keyboard event upstream. The web view never sees
// it, whatever the focus flag or load state.
func (bd *Backdrop) HandleKey(ev KeyEvent) {
	bd.router.ForwardKey(ev)
}

func (bd *Backdrop) inBounds(mx, my int) bool {
	if bd.BoundsW <= 0 || bd.BoundsH <= 0 {
		return true
	}
	return mx >= bd.BoundsX && mx < bd.BoundsX+bd.BoundsW &&
		my >= bd.BoundsY && my < bd.BoundsY+bd.BoundsH
}

// pollNavigation drains pending lifecycle events from the bridge, advancing
// NavState and notifying the observer in causal order. Failures are terminal
// for the load attempt but never disable routing: a failed backdrop keeps
// hit-testing as an inert surface.
func (bd *Backdrop) pollNavigation() {
	for {
		ev, ok := bd.view.PollNav()
		if !ok {
			return
		}
		switch ev.kind {
		case navStarted:
			bd.nav = NavLoading
			bd.observer.LoadStarted()
		case navFinished:
			bd.nav = NavLoaded
			bd.observer.LoadFinished()
		case navFailed:
			bd.nav = NavFailed
			bd.loadErr = ev.description
			bd.observer.LoadFailed(ev.description)
		case navProvisionalFailed:
			bd.nav = NavFailed
			bd.loadErr = ev.description
			bd.observer.ProvisionalLoadFailed(ev.description)
		}
	}
}

// Eval runs JavaScript in the page. Fire-and-forget (no return value).
func (bd *Backdrop) Eval(script string) {
	if bd.closed {
		return
	}
	bd.view.Eval(script)
}

// Close releases the web view. An in-flight load is abandoned; no further
// lifecycle events are delivered. After Close the backdrop must not be used.
func (bd *Backdrop) Close() {
	if bd.closed {
		return
	}
	bd.closed = true
	bd.view.Destroy()
}
