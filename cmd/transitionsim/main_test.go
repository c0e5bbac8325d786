package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/camtransition/sim"
	"github.com/milk9111/camtransition/transition"
)

func TestParseConfig(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		environ map[string]string
		want    func(Config) bool
		wantErr bool
	}{
		{
			name:    "defaults",
			environ: map[string]string{},
			want: func(c Config) bool {
				return c.Level == "demo_level.yaml" && c.Transition == "door" && c.Cycles == 2 && c.Mode == modeLog && c.FrameDelay == 16*time.Millisecond
			},
		},
		{
			name:    "env",
			environ: map[string]string{"TRANSITIONSIM_MODE": "term", "TRANSITIONSIM_CYCLES": "4"},
			want:    func(c Config) bool { return c.Mode == modeTerm && c.Cycles == 4 },
		},
		{
			name:    "flags_override_env",
			args:    []string{"-cycles", "1", "-transition", "balcony"},
			environ: map[string]string{"TRANSITIONSIM_CYCLES": "4"},
			want:    func(c Config) bool { return c.Cycles == 1 && c.Transition == "balcony" },
		},
		{name: "bad_mode", args: []string{"-mode", "gui"}, environ: map[string]string{}, wantErr: true},
		{name: "bad_step", environ: map[string]string{"TRANSITIONSIM_STEP": "0"}, wantErr: true},
		{name: "bad_env_value", environ: map[string]string{"TRANSITIONSIM_MAX_TICKS": "many"}, wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := parseConfig(c.args, c.environ)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !c.want(cfg) {
				t.Fatalf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestDemoDoorRoundTrip(t *testing.T) {
	cfg := Config{Level: "demo_level.yaml", Transition: "door", Step: 0.05, MaxTicks: 1000, Cycles: 2, Mode: modeLog}
	st, bounds, err := loadSettings(cfg)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	sc, err := newScene(st, bounds)
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}

	var finals []transition.Vec2
	sc.run(cfg, func(sc *scene, f sim.Frame) {
		if !f.Active {
			finals = append(finals, sc.camera.Position().XY())
		}
	}, nil)

	if len(finals) != 2 {
		t.Fatalf("expected two completed cycles, got %d", len(finals))
	}
	if finals[0].X != 960 || finals[1].X != 320 {
		t.Fatalf("expected camera at 960 then back to 320, got %+v", finals)
	}
	if sc.player.Pos.X != 950 || sc.freeze.Frozen || !sc.freeze.PauseAllowed {
		t.Fatalf("unexpected end state %+v %+v", sc.player, sc.freeze)
	}
	if got := strings.Join(sc.recorder.Log, ","); got != "pre,post,pre,post" {
		t.Fatalf("unexpected events %s", got)
	}
}

func TestLoadSettingsFromSaveFile(t *testing.T) {
	cfg := transition.DefaultConfig()
	cfg.CameraMin = transition.Vec2{X: 100}
	cfg.CameraMax = transition.Vec2{X: 200}
	st := transition.NewSettings("hall", cfg)
	st.Entry = transition.EntryExit
	path := filepath.Join(t.TempDir(), "save.yaml")
	if err := transition.SaveSettingsFile(path, []transition.Settings{st}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, bounds, err := loadSettings(Config{Settings: path, Transition: "hall"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "hall" || bounds.Min.X != 100 || bounds.Max.X != 200 {
		t.Fatalf("unexpected record %+v bounds %+v", got, bounds)
	}
	if _, _, err := loadSettings(Config{Settings: path, Transition: "door"}); err == nil {
		t.Fatalf("expected a missing transition error")
	}
}

func TestRendererDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(81, 8)

	cfg := transition.DefaultConfig()
	st := transition.NewSettings("door", cfg)
	st.Position = transition.Vec3{X: 30}
	sc, err := newScene(st, transition.Bounds{})
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	sc.player.Pos = transition.Vec2{X: 40}

	r := newRenderer(screen, 0, 160)
	r.draw(sc, sim.Frame{Phase: transition.PhasePreDelay})

	row := func(y int) string {
		var b strings.Builder
		for x := 0; x < 81; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(ch)
		}
		return b.String()
	}

	if header := row(0); !strings.HasPrefix(header, "door  enter  pre_delay") {
		t.Fatalf("unexpected header %q", header)
	}
	track := row(trackRow)
	cases := []struct {
		name string
		col  int
		want rune
	}{
		{"camera_left_edge", 0, '['},
		{"trigger", 15, '|'},
		{"player", 20, '@'},
		{"camera_right_edge_clamped", 80, ']'},
		{"track", 50, '-'},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := rune(track[c.col]); got != c.want {
				t.Fatalf("expected %q at %d, got %q in %q", c.want, c.col, got, track)
			}
		})
	}
}
