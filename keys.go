// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import "github.com/hajimehoshi/ebiten/v2"

// Key is a platform-neutral key code (Windows VK numbering, which is what
// the bridge and most embedders already speak).
type Key int32

const (
	KeyNone      Key = 0
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyPageUp    Key = 0x21
	KeyPageDown  Key = 0x22
	KeyEnd       Key = 0x23
	KeyHome      Key = 0x24
	KeyLeft      Key = 0x25
	KeyUp        Key = 0x26
	KeyRight     Key = 0x27
	KeyDown      Key = 0x28
	KeyInsert    Key = 0x2D
	KeyDelete    Key = 0x2E

	KeyShift   Key = 0x10
	KeyControl Key = 0x11
	KeyAlt     Key = 0x12
	KeyMeta    Key = 0x5B

	KeyF1  Key = 0x70
	KeyF12 Key = 0x7B
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint32

const (
	ModAlt   Modifiers = 1
	ModCtrl  Modifiers = 2
	ModMeta  Modifiers = 4
	ModShift Modifiers = 8
)

// IsModifier reports whether k is itself a modifier key. Presses and
// releases of these are forwarded as ModifiersChanged events.
func (k Key) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyAlt, KeyMeta:
		return true
	}
	return false
}

// heldModifiers snapshots the currently pressed modifier keys.
func heldModifiers() Modifiers {
	var mods Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// keyCode translates an ebiten key to the neutral code. Keys without a
// mapping yield KeyNone and are not forwarded.
func keyCode(key ebiten.Key) Key {
	switch key {
	case ebiten.KeyBackspace:
		return KeyBackspace
	case ebiten.KeyTab:
		return KeyTab
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return KeyEnter
	case ebiten.KeyEscape:
		return KeyEscape
	case ebiten.KeySpace:
		return KeySpace
	case ebiten.KeyPageUp:
		return KeyPageUp
	case ebiten.KeyPageDown:
		return KeyPageDown
	case ebiten.KeyEnd:
		return KeyEnd
	case ebiten.KeyHome:
		return KeyHome
	case ebiten.KeyArrowLeft:
		return KeyLeft
	case ebiten.KeyArrowUp:
		return KeyUp
	case ebiten.KeyArrowRight:
		return KeyRight
	case ebiten.KeyArrowDown:
		return KeyDown
	case ebiten.KeyInsert:
		return KeyInsert
	case ebiten.KeyDelete:
		return KeyDelete

	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return KeyShift
	case ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight:
		return KeyControl
	case ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight:
		return KeyAlt
	case ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return KeyMeta

	// Punctuation / symbols (VK_OEM codes)
	case ebiten.KeySemicolon:
		return 0xBA
	case ebiten.KeyEqual:
		return 0xBB
	case ebiten.KeyComma:
		return 0xBC
	case ebiten.KeyMinus:
		return 0xBD
	case ebiten.KeyPeriod:
		return 0xBE
	case ebiten.KeySlash:
		return 0xBF
	case ebiten.KeyBackquote:
		return 0xC0
	case ebiten.KeyBracketLeft:
		return 0xDB
	case ebiten.KeyBackslash, ebiten.KeyIntlBackslash:
		return 0xDC
	case ebiten.KeyBracketRight:
		return 0xDD
	case ebiten.KeyQuote:
		return 0xDE

	default:
		if key >= ebiten.KeyDigit0 && key <= ebiten.KeyDigit9 {
			return Key(0x30 + int32(key-ebiten.KeyDigit0))
		}
		if key >= ebiten.KeyA && key <= ebiten.KeyZ {
			return Key(0x41 + int32(key-ebiten.KeyA))
		}
		if key >= ebiten.KeyNumpad0 && key <= ebiten.KeyNumpad9 {
			return Key(0x60 + int32(key-ebiten.KeyNumpad0))
		}
		if key >= ebiten.KeyF1 && key <= ebiten.KeyF12 {
			return Key(0x70 + int32(key-ebiten.KeyF1))
		}
		return KeyNone
	}
}
