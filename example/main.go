// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

// Demo: a web page composed behind a minimal terminal. Type freely — the
// terminal always owns the keyboard. F2 hands the pointer to the page and
// back.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	backdrop "github.com/tavenner/webterm-backdrop"
)

const termHeight = 180

// terminal is a toy line-oriented widget standing in for a real terminal
// emulator. It is the backdrop's KeySink: every key event arrives here no
// matter who owns the pointer.
type terminal struct {
	lines []string
	input []rune
}

func (t *terminal) HandleKey(ev backdrop.KeyEvent) {
	if ev.Kind != backdrop.KeyPressed {
		return
	}
	switch {
	case ev.Rune != 0:
		t.input = append(t.input, ev.Rune)
	case ev.Code == backdrop.KeyEnter:
		t.lines = append(t.lines, "> "+string(t.input))
		if len(t.lines) > 10 {
			t.lines = t.lines[1:]
		}
		t.input = t.input[:0]
	case ev.Code == backdrop.KeyBackspace && len(t.input) > 0:
		t.input = t.input[:len(t.input)-1]
	}
}

func (t *terminal) draw(screen *ebiten.Image, w, h int) {
	top := float32(h - termHeight)
	vector.DrawFilledRect(screen, 0, top, float32(w), termHeight, color.RGBA{0, 0, 0, 200}, false)

	y := h - termHeight + 8
	for _, ln := range t.lines {
		ebitenutil.DebugPrintAt(screen, ln, 8, y)
		y += 14
	}
	ebitenutil.DebugPrintAt(screen, "> "+string(t.input)+"_", 8, y)
}

type Game struct {
	cfg  config
	bd   *backdrop.Backdrop
	term *terminal
}

func newGame(cfg config, logger zerolog.Logger) (*Game, error) {
	term := &terminal{}
	focus := backdrop.NewFocusFlag(cfg.StartFocused)

	bd, err := backdrop.New(cfg.Width, cfg.Height, cfg.URL, focus, &backdrop.Options{
		Debug:    cfg.Debug,
		Logger:   &logger,
		Observer: backdrop.NewLogObserver(logger),
		Keys:     term,
	})
	if err != nil {
		return nil, fmt.Errorf("backdrop: %w", err)
	}
	return &Game{cfg: cfg, bd: bd, term: term}, nil
}

func (g *Game) Update() error {
	// F2 is the external focus controller: flip who owns the pointer.
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.bd.SetFocus(!g.bd.Focused())
	}
	return g.bd.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 22, 28, 255})

	// Web page behind, terminal in front.
	screen.DrawImage(g.bd.Texture(), nil)
	g.term.draw(screen, g.cfg.Width, g.cfg.Height)

	owner := "terminal"
	if g.bd.Focused() {
		owner = "page"
	}
	status := fmt.Sprintf("[F2] pointer: %s | page: %s", owner, g.bd.NavState())
	if g.bd.NavState() == backdrop.NavFailed {
		status += " (" + g.bd.LoadError() + ")"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, g.cfg.Height-16)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg := loadConfig()

	game, err := newGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.bd.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("webterm backdrop")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
