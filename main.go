package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/camtransition/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw trigger volumes, physics shapes and transition state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "demo_level.yaml", "level spec in prefabs/")
	savePath := flag.String("save", "transitions.yaml", "file F5 saves and F9 loads transition settings from")
	watch := flag.Bool("watch", true, "hot reload prefabs/ and prefabs/scripts/ on change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("camtransition")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Level:    *levelName,
		Debug:    *debug,
		SavePath: *savePath,
		Watch:    *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
