// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import "testing"

type recordingSink struct {
	events []KeyEvent
}

func (s *recordingSink) HandleKey(ev KeyEvent) {
	s.events = append(s.events, ev)
}

func samplePointerEvents() []PointerEvent {
	return []PointerEvent{
		{Kind: PointerMove, X: 10, Y: 20},
		{Kind: PointerDown, X: 0, Y: 0, Button: ButtonLeft},
		{Kind: PointerDown, X: 400, Y: 300, Button: ButtonRight},
		{Kind: PointerUp, X: 799, Y: 599, Button: ButtonLeft},
		{Kind: PointerScroll, X: 123, Y: 456, ScrollY: -3},
	}
}

func TestAcceptsKeyboardFocusAlwaysFalse(t *testing.T) {
	for _, focused := range []bool{false, true} {
		r := NewRouter(NewFocusFlag(focused), nil)
		if r.AcceptsKeyboardFocus() {
			t.Errorf("focused=%v: backdrop accepted keyboard focus", focused)
		}
	}
}

func TestRoutePointerFollowsFocusForEveryEvent(t *testing.T) {
	flag := NewFocusFlag(false)
	r := NewRouter(flag, nil)

	for _, ev := range samplePointerEvents() {
		if got := r.RoutePointer(ev); got != TargetPassThrough {
			t.Errorf("unfocused: %+v routed to %v, want pass-through", ev, got)
		}
	}

	flag.Set(true)
	for _, ev := range samplePointerEvents() {
		if got := r.RoutePointer(ev); got != TargetBackdrop {
			t.Errorf("focused: %+v routed to %v, want backdrop", ev, got)
		}
	}
}

func TestAcceptsFirstPressEqualsFlag(t *testing.T) {
	for _, focused := range []bool{false, true} {
		r := NewRouter(NewFocusFlag(focused), nil)
		if got := r.AcceptsFirstPress(); got != focused {
			t.Errorf("AcceptsFirstPress() = %v with flag %v", got, focused)
		}
	}
}

func TestForwardKeyDispatchesExactlyOncePerEvent(t *testing.T) {
	sink := &recordingSink{}
	flag := NewFocusFlag(false)
	r := NewRouter(flag, sink)

	events := []KeyEvent{
		{Kind: KeyPressed, Code: KeyEnter},
		{Kind: KeyReleased, Code: KeyEnter},
		{Kind: ModifiersChanged, Code: KeyControl, Mods: ModCtrl},
	}
	for i, ev := range events {
		r.ForwardKey(ev)
		if len(sink.events) != i+1 {
			t.Fatalf("after %d events sink saw %d", i+1, len(sink.events))
		}
		if sink.events[i] != ev {
			t.Errorf("event %d forwarded as %+v, want identical %+v", i, sink.events[i], ev)
		}
	}

	// Forwarding must not have touched the focus flag.
	if flag.Get() {
		t.Error("ForwardKey mutated the focus flag")
	}
}

func TestForwardKeyWithoutSinkDropsSilently(t *testing.T) {
	r := NewRouter(NewFocusFlag(true), nil)
	r.ForwardKey(KeyEvent{Kind: KeyPressed, Code: KeyEscape})
	r.ForwardKey(KeyEvent{Kind: KeyReleased, Code: KeyEscape})
}

func TestRepeatedFocusWritesAreIdempotent(t *testing.T) {
	flag := NewFocusFlag(false)
	r := NewRouter(flag, nil)

	flag.Set(true)
	once := r.RoutePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft})
	flag.Set(true)
	twice := r.RoutePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft})

	if once != twice || twice != TargetBackdrop {
		t.Errorf("routing changed across identical writes: %v then %v", once, twice)
	}
	if !r.AcceptsFirstPress() {
		t.Error("AcceptsFirstPress() lost the flag after repeated writes")
	}
}

func TestFocusWriteVisibleToNextDecision(t *testing.T) {
	flag := NewFocusFlag(false)
	r := NewRouter(flag, nil)

	ev := PointerEvent{Kind: PointerMove, X: 5, Y: 5}
	if r.RoutePointer(ev) != TargetPassThrough {
		t.Fatal("initial routing should pass through")
	}
	flag.Set(true)
	if r.RoutePointer(ev) != TargetBackdrop {
		t.Error("flag write not visible to the immediately following decision")
	}
	flag.Set(false)
	if r.RoutePointer(ev) != TargetPassThrough {
		t.Error("flag clear not visible to the immediately following decision")
	}
}
