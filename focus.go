// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

// FocusFlag is the shared cell deciding whether the backdrop owns pointer
// input. The embedding application is its only writer (typically from a
// keybinding); the router and host only read it. A write is visible to the
// very next routing decision.
//
// All access is confined to the host's update thread, so the flag carries no
// lock.
type FocusFlag struct {
	focused bool
}

// NewFocusFlag returns a flag with the given initial value.
func NewFocusFlag(focused bool) *FocusFlag {
	return &FocusFlag{focused: focused}
}

// Set updates the flag. Idempotent; callable at any rate.
func (f *FocusFlag) Set(focused bool) {
	f.focused = focused
}

// Get reports the current value.
func (f *FocusFlag) Get() bool {
	return f.focused
}
