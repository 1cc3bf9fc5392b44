// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

// Package backdrop composes an interactive web view behind a terminal-style
// surface and routes input between the two.
//
// The terminal in front always owns the keyboard: every key event the
// backdrop sees is re-dispatched to the embedder's KeySink untouched, so
// global keybindings keep working even while the web page is visually and
// pointer-wise active. Pointer events go to the web view only while the
// shared focus flag is set; otherwise they pass through as if the backdrop
// were not there.
//
// Basic usage:
//
//	import backdrop "github.com/tavenner/webterm-backdrop"
//
//	focus := backdrop.NewFocusFlag(false)
//	bd, err := backdrop.New(800, 600, "https://example.com", focus, &backdrop.Options{
//	    Keys:     term,                            // your terminal widget (a KeySink)
//	    Observer: backdrop.NewLogObserver(logger), // load lifecycle -> zerolog
//	})
//	if err != nil { ... }
//	defer bd.Close()
//
//	// In Ebiten Update():
//	bd.Update()
//	// Toggle who owns the pointer, e.g. from a keybinding:
//	bd.SetFocus(!bd.Focused())
//
//	// In Ebiten Draw(), behind the terminal:
//	screen.DrawImage(bd.Texture(), nil)
//
// The URL is a one-shot load target: it is issued at construction and never
// re-issued. Load progress and both failure classes (before and after commit)
// arrive on the NavigationObserver; failures are report-only and never change
// routing — a failed page keeps hit-testing as an inert surface.
//
// Requirements: the bridge shared library (backdrop_bridge.dll on Windows,
// libbackdrop_bridge.so on Linux, libbackdrop_bridge.dylib on macOS) and the
// web engine libraries must be present next to the executable or in the
// directory given by [Options.BaseDir].
package backdrop
