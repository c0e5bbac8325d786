package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/ecs/entity"
	"github.com/milk9111/camtransition/ecs/system"
	"github.com/milk9111/camtransition/prefabs"
	"github.com/milk9111/camtransition/transition"
)

type Options struct {
	Level    string
	Debug    bool
	SavePath string
	Watch    bool
}

type Game struct {
	opts Options

	world       *ecs.World
	level       *entity.Level
	physics     *system.PhysicsSystem
	transitions *system.CameraTransitionSystem
	render      *system.RenderSystem
	background  color.Color
	beamsHidden bool

	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}
	if err := g.loadWorld(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) loadWorld() error {
	world := ecs.NewWorld()
	lvl, err := entity.LoadLevel(world, g.opts.Level)
	if err != nil {
		return fmt.Errorf("load level %s: %w", g.opts.Level, err)
	}

	g.world = world
	g.level = lvl
	g.background = lvl.Spec.Background.Or(color.Black)
	g.physics = system.NewPhysicsSystem(common.Step)
	g.transitions = system.NewCameraTransitionSystem(system.FixedStep(common.Step), prefabs.LoadScript)
	g.render = system.NewRenderSystem()
	g.render.ShowTriggers = g.opts.Debug

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewPlayerControllerSystem(g.physics, entity.BeamSpawner(lvl.Spec.Beam)))
	world.AddSystem(system.NewMagnetBeamSystem(common.Step))
	world.AddSystem(g.physics)
	world.AddSystem(g.transitions)
	world.AddSystem(system.NewInvulnerableSystem())
	world.AddSystem(system.NewAnimationSystem(common.Step))
	world.AddSystem(system.NewCameraSystem())
	world.AddSystem(system.NewPersistenceSystem())
	return nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused())
	}
	if g.paused() {
		g.pauseUI.Update()
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.request(&component.SaveRequest{Path: g.opts.SavePath})
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		g.request(&component.LoadRequest{Path: g.opts.SavePath})
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.opts.Debug = !g.opts.Debug
		g.render.ShowTriggers = g.opts.Debug
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.beamsHidden = !g.beamsHidden
		system.HideBeams(g.world, g.beamsHidden)
	}

	g.world.Update()
	if g.beamsHidden {
		system.HideBeams(g.world, true)
	}
	g.logEvents()
	return nil
}

func (g *Game) request(req any) {
	e := ecs.CreateEntity(g.world)
	var err error
	switch r := req.(type) {
	case *component.SaveRequest:
		err = ecs.Add(g.world, e, component.SaveRequestComponent.Kind(), r)
	case *component.LoadRequest:
		err = ecs.Add(g.world, e, component.LoadRequestComponent.Kind(), r)
	}
	if err != nil {
		log.Printf("game: queue request: %v", err)
	}
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Pending() {
		switch data := evt.Data.(type) {
		case system.TransitionEvent:
			log.Printf("%s %s", evt.Type, data.Name)
		case system.ScriptEvent:
			log.Printf("%s %s: %s", evt.Type, data.Trigger, data.Name)
		case string:
			log.Printf("%s %s", evt.Type, data)
		case error:
			log.Printf("%s: %v", evt.Type, data)
		}
	}
}

// drainWatcher applies pending hot reloads. Triggers that are mid-sequence
// keep their old config until the next edit.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScript:
		g.transitions.ReloadScripts()
		log.Printf("reloaded scripts after %s changed", change.Path)
	case prefabs.ChangeSpec:
		if filepath.Base(change.Path) != filepath.Base(g.opts.Level) {
			return
		}
		spec, err := prefabs.LoadLevelSpec(g.opts.Level)
		if err != nil {
			log.Printf("reload %s: %v", change.Path, err)
			return
		}
		for _, t := range spec.Transitions {
			err := system.ReconfigureTransition(g.world, t.Name, t.Config(), t.Script)
			switch {
			case errors.Is(err, transition.ErrActive):
				log.Printf("reload %s: %s is running, keeping its config", change.Path, t.Name)
			case err != nil:
				log.Printf("reload %s: %v", change.Path, err)
			}
		}
		g.transitions.ReloadScripts()
	}
}

func (g *Game) gameState() *component.GameState {
	_, gs, ok := ecs.Singleton(g.world, component.GameStateComponent.Kind())
	if !ok {
		return nil
	}
	return gs
}

func (g *Game) paused() bool {
	gs := g.gameState()
	return gs != nil && gs.Paused
}

// setPaused only pauses while a camera transition allows it.
func (g *Game) setPaused(paused bool) {
	gs := g.gameState()
	if gs == nil {
		return
	}
	if paused && !gs.PauseAllowed {
		return
	}
	gs.Paused = paused
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)
	if g.opts.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawTransitionDebug(g.world, screen)
	}
	if g.paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
