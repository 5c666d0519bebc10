package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/telemetry"
)

// Simulation pixels covered by one terminal cell.
const (
	cellWidth  = 8
	cellHeight = 16
)

// runTerminal drives a container on the terminal until q, Escape or an
// interrupt.
func runTerminal(ctx context.Context, engine *game.Engine, scheduler *game.LoopScheduler, opts config.Options, output *telemetry.OutputManager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	surface := renderer.NewTerminalSurface(screen, cellWidth, cellHeight)

	c, err := engine.Load(ctx, game.LoadParams{ID: "terminal", Surface: surface, Options: opts})
	if err != nil {
		return err
	}
	c.SetOutput(output)
	screen.EnableMouse()
	screen.EnableFocus()

	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !handleTerminalEvent(ctx, c, surface, ev) {
				return nil
			}

		case <-ticker.C:
			scheduler.RunFrame(time.Since(start))
			if c.Destroyed() {
				return nil
			}
		}
	}
}

// handleTerminalEvent applies one terminal event and reports whether the
// host should keep running.
func handleTerminalEvent(ctx context.Context, c *game.Container, surface *renderer.TerminalSurface, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			togglePause(c)
		case ev.Rune() == 'r':
			c.Refresh(ctx)
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			p := surface.CellToSim(col, row)
			c.Click(p.X, p.Y)
		}

	case *tcell.EventFocus:
		c.SetPageHidden(!ev.Focused)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		c.Resize(float64(cols)*cellWidth, float64(rows)*cellHeight)
	}
	return true
}
