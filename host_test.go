// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mouseCall struct {
	eventType, x, y, button int32
}

// fakeDriver stands in for the native bridge so host behavior is testable
// without a shared library or a display.
type fakeDriver struct {
	loadedURL string
	ticks     int
	mouse     []mouseCall
	scrolls   []int32
	pending   []navEvent
	destroyed bool
}

func (d *fakeDriver) LoadURL(url string) { d.loadedURL = url }
func (d *fakeDriver) Tick()              { d.ticks++ }

func (d *fakeDriver) FireMouse(eventType, x, y, button int32) {
	d.mouse = append(d.mouse, mouseCall{eventType, x, y, button})
}

func (d *fakeDriver) FireScroll(_, _, dy int32) {
	d.scrolls = append(d.scrolls, dy)
}

func (d *fakeDriver) Eval(string) {}

func (d *fakeDriver) PollNav() (navEvent, bool) {
	if len(d.pending) == 0 {
		return navEvent{}, false
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, true
}

func (d *fakeDriver) PollConsole() (string, bool) { return "", false }

func (d *fakeDriver) Pixels() (uintptr, uint32, uint32, uint32) { return 0, 0, 0, 0 }
func (d *fakeDriver) UnlockPixels()                             {}
func (d *fakeDriver) Destroy()                                  { d.destroyed = true }

type countingObserver struct {
	started     int
	finished    int
	failed      []string
	provisional []string
}

func (o *countingObserver) LoadStarted()  { o.started++ }
func (o *countingObserver) LoadFinished() { o.finished++ }

func (o *countingObserver) LoadFailed(description string) {
	o.failed = append(o.failed, description)
}

func (o *countingObserver) ProvisionalLoadFailed(description string) {
	o.provisional = append(o.provisional, description)
}

func newTestBackdrop(focus *FocusFlag, opts *Options) (*Backdrop, *fakeDriver) {
	d := &fakeDriver{}
	return newBackdrop(d, 800, 600, "https://status.example.com/board", focus, opts), d
}

func TestConstructionIssuesLoadImmediately(t *testing.T) {
	bd, d := newTestBackdrop(NewFocusFlag(false), nil)
	require.Equal(t, "https://status.example.com/board", d.loadedURL)
	require.Equal(t, "https://status.example.com/board", bd.URL())
	require.Equal(t, NavLoading, bd.NavState())
}

func TestNavigationLifecycleReachesObserverInOrder(t *testing.T) {
	obs := &countingObserver{}
	bd, d := newTestBackdrop(NewFocusFlag(false), &Options{Observer: obs})

	d.pending = []navEvent{{kind: navStarted}, {kind: navFinished}}
	bd.pollNavigation()

	require.Equal(t, 1, obs.started)
	require.Equal(t, 1, obs.finished)
	require.Equal(t, NavLoaded, bd.NavState())
}

func TestProvisionalFailureIsTerminalAndReportOnly(t *testing.T) {
	obs := &countingObserver{}
	bd, d := newTestBackdrop(NewFocusFlag(false), &Options{Observer: obs})

	d.pending = []navEvent{
		{kind: navStarted},
		{kind: navProvisionalFailed, description: "net::ERR_NAME_NOT_RESOLVED"},
	}
	bd.pollNavigation()

	require.Equal(t, []string{"net::ERR_NAME_NOT_RESOLVED"}, obs.provisional)
	require.Empty(t, obs.failed)
	require.Equal(t, NavFailed, bd.NavState())
	require.Equal(t, "net::ERR_NAME_NOT_RESOLVED", bd.LoadError())
}

// Scenario: pointer events pass through until the focus flag flips, then an
// identical event reaches the backdrop — same instance, no reconstruction.
func TestFocusFlipRedirectsIdenticalPointerEvent(t *testing.T) {
	bd, d := newTestBackdrop(NewFocusFlag(false), nil)
	press := PointerEvent{Kind: PointerDown, X: 100, Y: 100, Button: ButtonLeft}

	require.Equal(t, TargetPassThrough, bd.HandlePointer(press))
	require.Empty(t, d.mouse, "pass-through event must not reach the view")

	bd.SetFocus(true)
	bd.SetFocus(true) // idempotent

	require.Equal(t, TargetBackdrop, bd.HandlePointer(press))
	require.Equal(t, []mouseCall{{mouseEventTypeDown, 100, 100, mouseButtonLeft}}, d.mouse)
}

// Scenario: a post-commit failure reports exactly once and leaves keyboard
// forwarding fully working.
func TestLoadFailureDoesNotDisableKeyForwarding(t *testing.T) {
	obs := &countingObserver{}
	sink := &recordingSink{}
	bd, d := newTestBackdrop(NewFocusFlag(false), &Options{Observer: obs, Keys: sink})

	d.pending = []navEvent{
		{kind: navStarted},
		{kind: navFailed, description: "net::ERR_CONNECTION_RESET"},
	}
	bd.pollNavigation()
	require.Equal(t, []string{"net::ERR_CONNECTION_RESET"}, obs.failed)

	bd.HandleKey(KeyEvent{Kind: KeyPressed, Code: KeyEnter})
	require.Len(t, sink.events, 1)

	// A failed page still participates in hit-testing as an inert surface.
	bd.SetFocus(true)
	require.Equal(t, TargetBackdrop, bd.HandlePointer(PointerEvent{Kind: PointerMove, X: 1, Y: 1}))
}

// Scenario: focus never granted — every key forwards upstream, zero pointer
// events reach the view across the whole session.
func TestDefaultFocusKeepsViewUntouched(t *testing.T) {
	sink := &recordingSink{}
	bd, d := newTestBackdrop(NewFocusFlag(false), &Options{Keys: sink})

	keys := []KeyEvent{
		{Kind: KeyPressed, Code: KeyControl, Mods: ModCtrl},
		{Kind: KeyPressed, Code: Key('C'), Mods: ModCtrl},
		{Kind: KeyReleased, Code: Key('C'), Mods: ModCtrl},
		{Kind: ModifiersChanged, Code: KeyControl},
		{Kind: KeyPressed, Rune: 'x'},
	}
	for _, ev := range keys {
		bd.HandleKey(ev)
	}
	for _, ev := range samplePointerEvents() {
		require.Equal(t, TargetPassThrough, bd.HandlePointer(ev))
	}

	require.Len(t, sink.events, len(keys))
	require.Empty(t, d.mouse)
	require.Empty(t, d.scrolls)
}

func TestDeliveryRespectsSurfaceLocalBounds(t *testing.T) {
	bd, d := newTestBackdrop(NewFocusFlag(true), nil)
	bd.SetBounds(100, 50, 200, 200)

	// Outside bounds: routed to the backdrop but refused by its hit test.
	require.Equal(t, TargetBackdrop, bd.HandlePointer(PointerEvent{Kind: PointerMove, X: 10, Y: 10}))
	require.Empty(t, d.mouse)

	// Inside bounds: delivered in surface-local coordinates.
	require.Equal(t, TargetBackdrop, bd.HandlePointer(PointerEvent{Kind: PointerMove, X: 150, Y: 60}))
	require.Equal(t, []mouseCall{{mouseEventTypeMoved, 50, 10, mouseButtonNone}}, d.mouse)
}

func TestScrollDeliveredOnlyWhileFocused(t *testing.T) {
	bd, d := newTestBackdrop(NewFocusFlag(false), nil)
	scroll := PointerEvent{Kind: PointerScroll, X: 10, Y: 10, ScrollY: -2}

	require.Equal(t, TargetPassThrough, bd.HandlePointer(scroll))
	require.Empty(t, d.scrolls)

	bd.SetFocus(true)
	require.Equal(t, TargetBackdrop, bd.HandlePointer(scroll))
	require.Equal(t, []int32{-200}, d.scrolls)
}

func TestCloseDropsFurtherDeliveryButKeepsForwarding(t *testing.T) {
	sink := &recordingSink{}
	bd, d := newTestBackdrop(NewFocusFlag(true), &Options{Keys: sink})

	bd.Close()
	require.True(t, d.destroyed)

	// Pointer delivery stops; the routing decision itself cannot fail.
	bd.HandlePointer(PointerEvent{Kind: PointerDown, X: 1, Y: 1, Button: ButtonLeft})
	require.Empty(t, d.mouse)

	bd.HandleKey(KeyEvent{Kind: KeyPressed, Code: KeyTab})
	require.Len(t, sink.events, 1)
}

func TestParseNavEvent(t *testing.T) {
	cases := []struct {
		raw  string
		want navEvent
	}{
		{"started", navEvent{kind: navStarted}},
		{"finished", navEvent{kind: navFinished}},
		{"failed:net::ERR_ABORTED", navEvent{kind: navFailed, description: "net::ERR_ABORTED"}},
		{"provisional:net::ERR_NAME_NOT_RESOLVED", navEvent{kind: navProvisionalFailed, description: "net::ERR_NAME_NOT_RESOLVED"}},
		{"garbled", navEvent{kind: navFailed, description: "garbled"}},
	}
	for _, tc := range cases {
		if got := parseNavEvent(tc.raw); got != tc.want {
			t.Errorf("parseNavEvent(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}
