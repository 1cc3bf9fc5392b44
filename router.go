// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

// Target identifies which surface receives an input event.
type Target int

const (
	// TargetPassThrough delivers the event as if the backdrop were absent:
	// it falls to whatever surface sits behind it in composition order,
	// normally the terminal in front.
	TargetPassThrough Target = iota
	// TargetBackdrop delivers the event to the web view, subject to the
	// view's own surface-local hit test.
	TargetBackdrop
)

func (t Target) String() string {
	if t == TargetBackdrop {
		return "backdrop"
	}
	return "pass-through"
}

// PointerKind classifies pointer events.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerScroll
)

// MouseButton identifies the button of a pointer event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
)

// PointerEvent is a single mouse move, press, release or scroll in screen
// coordinates.
type PointerEvent struct {
	Kind    PointerKind
	X, Y    int
	Button  MouseButton
	ScrollY float64 // wheel delta, PointerScroll only
}

// KeyKind classifies keyboard events.
type KeyKind int

const (
	KeyPressed KeyKind = iota
	KeyReleased
	ModifiersChanged
)

// KeyEvent is a single keyboard event. Rune carries the character for text
// input, zero otherwise.
type KeyEvent struct {
	Kind KeyKind
	Code Key
	Mods Modifiers
	Rune rune
}

// KeySink receives keyboard events forwarded past the backdrop. It is the
// next responder in the embedding application, typically the terminal widget
// in front of the backdrop.
type KeySink interface {
	HandleKey(ev KeyEvent)
}

// Router decides which surface receives each input event. Routing is a pure
// function of the event class and the current focus flag: pointer events
// reach the backdrop only while the flag is set, keyboard events always
// bypass it. The router never buffers or replays events and cannot fail.
type Router struct {
	focus *FocusFlag
	next  KeySink
}

// NewRouter binds a router to the shared focus flag and the upstream key
// sink. next may be nil; forwarded keys are then dropped.
func NewRouter(focus *FocusFlag, next KeySink) *Router {
	return &Router{focus: focus, next: next}
}

// RoutePointer returns the surface that should receive ev. While focused the
// backdrop is reachable (its own hit test may still refuse the point); while
// unfocused every pointer event passes through, whatever its kind or
// position. No side effects.
func (r *Router) RoutePointer(ev PointerEvent) Target {
	if r.focus.Get() {
		return TargetBackdrop
	}
	return TargetPassThrough
}

// AcceptsFirstPress reports whether the initiating press of an interaction
// is honored while the backdrop is not already the active surface. Hosts
// gate the first click separately from steady-state hit testing, so this is
// a distinct decision from RoutePointer even though both follow the flag.
func (r *Router) AcceptsFirstPress() bool {
	return r.focus.Get()
}

// AcceptsKeyboardFocus always returns false: the backdrop must never become
// the keyboard target, whatever the focus flag says. The terminal keeps
// keyboard ownership so its global keybindings stay live.
func (r *Router) AcceptsKeyboardFocus() bool {
	return false
}

// ForwardKey re-dispatches ev to the next responder exactly once, without
// handling it locally. With no sink attached the event is dropped silently.
func (r *Router) ForwardKey(ev KeyEvent) {
	if r.next == nil {
		return
	}
	r.next.HandleKey(ev)
}

func (r *Router) setSink(next KeySink) {
	r.next = next
}
