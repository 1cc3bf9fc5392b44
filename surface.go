// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import (
	"unsafe"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Update should be called every frame from the game's Update. It drains
// lifecycle and console events, ticks the web engine, forwards input through
// the router, and copies the rendered page into the texture.
func (bd *Backdrop) Update() error {
	if bd.closed {
		return nil
	}
	bd.pollNavigation()
	bd.drainConsole()
	bd.view.Tick()
	bd.forwardInput()
	bd.copyPixels()
	return nil
}

// forwardInput decodes ebiten's input state into events and hands them to
// the routing entry points. This is the whole GUI adapter: every decision
// about who receives what lives in Router, not here.
func (bd *Backdrop) forwardInput() {
	mx, my := ebiten.CursorPosition()
	if mx != bd.mouseX || my != bd.mouseY {
		bd.mouseX, bd.mouseY = mx, my
		bd.HandlePointer(PointerEvent{Kind: PointerMove, X: mx, Y: my})
	}

	bd.forwardButton(ebiten.MouseButtonLeft, ButtonLeft, &bd.leftDown, mx, my)
	bd.forwardButton(ebiten.MouseButtonRight, ButtonRight, &bd.rightDown, mx, my)

	if _, scrollY := ebiten.Wheel(); scrollY != 0 {
		bd.HandlePointer(PointerEvent{Kind: PointerScroll, X: mx, Y: my, ScrollY: scrollY})
	}

	bd.forwardKeyboard()
}

func (bd *Backdrop) forwardButton(eb ebiten.MouseButton, button MouseButton, down *bool, mx, my int) {
	pressed := ebiten.IsMouseButtonPressed(eb)
	if pressed == *down {
		return
	}
	*down = pressed
	kind := PointerUp
	if pressed {
		kind = PointerDown
	}
	bd.HandlePointer(PointerEvent{Kind: kind, X: mx, Y: my, Button: button})
}

// forwardKeyboard re-dispatches every keyboard event upstream. Presses and
// releases of bare modifier keys surface as ModifiersChanged. Nothing here
// ever reaches the web view.
func (bd *Backdrop) forwardKeyboard() {
	mods := heldModifiers()

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		code := keyCode(key)
		if code == KeyNone {
			continue
		}
		kind := KeyPressed
		if code.IsModifier() {
			kind = ModifiersChanged
		}
		bd.HandleKey(KeyEvent{Kind: kind, Code: code, Mods: mods})
	}

	// Character input from the OS text input system (shift, layout, IME).
	for _, r := range ebiten.AppendInputChars(nil) {
		bd.HandleKey(KeyEvent{Kind: KeyPressed, Mods: mods, Rune: r})
	}

	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		code := keyCode(key)
		if code == KeyNone {
			continue
		}
		kind := KeyReleased
		if code.IsModifier() {
			kind = ModifiersChanged
		}
		bd.HandleKey(KeyEvent{Kind: kind, Code: code, Mods: mods})
	}
}

func (bd *Backdrop) drainConsole() {
	if !bd.debug {
		return
	}
	for {
		msg, ok := bd.view.PollConsole()
		if !ok {
			return
		}
		bd.log.Debug().Str("message", msg).Msg("backdrop console")
	}
}

func (bd *Backdrop) copyPixels() {
	ptr, w, h, rowBytes := bd.view.Pixels()
	if ptr == 0 {
		return
	}
	if w == 0 || h == 0 {
		bd.view.UnlockPixels()
		return
	}

	totalBytes := uintptr(rowBytes) * uintptr(h)
	src := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), totalBytes)

	dstIdx := 0
	for y := 0; y < int(h); y++ {
		srcRowStart := y * int(rowBytes)
		for x := 0; x < int(w); x++ {
			srcOff := srcRowStart + x*4
			bd.pixels[dstIdx+0] = src[srcOff+2] // BGRA -> RGBA
			bd.pixels[dstIdx+1] = src[srcOff+1]
			bd.pixels[dstIdx+2] = src[srcOff+0]
			bd.pixels[dstIdx+3] = src[srcOff+3]
			dstIdx += 4
		}
	}

	bd.view.UnlockPixels()
	bd.Texture().WritePixels(bd.pixels)
}

// Texture returns the ebiten image with the current page rendered into it.
// Draw it behind the terminal widget; transparent page regions stay
// transparent.
func (bd *Backdrop) Texture() *ebiten.Image {
	if bd.texture == nil {
		bd.texture = ebiten.NewImage(bd.width, bd.height)
	}
	return bd.texture
}
