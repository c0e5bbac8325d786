// Command transitionsim plays one camera transition without the game:
// either logging its phases or animating it in the terminal.
package main

import (
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/camtransition/sim"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatal(err)
	}

	st, bounds, err := loadSettings(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sc, err := newScene(st, bounds)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Mode == modeLog {
		sc.run(cfg, phaseLogger(), nil)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	var quit atomic.Bool
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || key.Rune() == 'q' {
					quit.Store(true)
				}
			}
		}
	}()

	lo, hi := extent(sc)
	r := newRenderer(screen, lo, hi)
	r.draw(sc, sim.Frame{Active: sc.seq.Active(), Phase: sc.seq.Phase()})
	sc.run(cfg, func(sc *scene, f sim.Frame) {
		r.draw(sc, f)
		time.Sleep(cfg.FrameDelay)
	}, quit.Load)

	if !quit.Load() {
		time.Sleep(time.Second)
	}
	screen.Fini()
}
