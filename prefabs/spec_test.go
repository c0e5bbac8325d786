package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/camtransition/transition"
	"gopkg.in/yaml.v3"
)

func TestLoadDemoLevel(t *testing.T) {
	spec, err := LoadLevelSpec("demo_level.yaml")
	if err != nil {
		t.Fatalf("load demo level: %v", err)
	}

	door, ok := spec.Transition("door")
	if !ok {
		t.Fatalf("missing door transition")
	}
	if door.Position.X != 950 || door.Trigger.Width != 20 || door.Script != "transition_events.tengo" {
		t.Fatalf("unexpected door %+v", door)
	}
	cfg := door.Config()
	if cfg.CameraMin.X != 960 || cfg.CameraMax.X != 1280 || cfg.PlayerChange.X != 64 {
		t.Fatalf("unexpected door config %+v", cfg)
	}
	if cfg.EventCallPostDelay != transition.EventBothAfterDelay || cfg.Easing != "in_out_quad" {
		t.Fatalf("unexpected door policy %+v", cfg)
	}

	balcony, ok := spec.Transition("balcony")
	if !ok || !balcony.OnlyMoveCamera {
		t.Fatalf("expected an only-move balcony trigger, got %+v", balcony)
	}
	if spec.Camera.Bounds.Max.X != 320 || spec.Player.Collider.Height != 32 {
		t.Fatalf("unexpected camera/player %+v %+v", spec.Camera, spec.Player)
	}
}

func TestTransitionSpecDefaults(t *testing.T) {
	var spec TransitionSpec
	src := "name: hall\nposition: {x: 10, y: 20, z: 0}\ntrigger: {width: 8, height: 8}\n"
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := transition.NewSettings("hall", transition.DefaultConfig())
	want.Position = transition.Vec3{X: 10, Y: 20}
	if spec.Settings != want {
		t.Fatalf("expected defaults %+v, got %+v", want, spec.Settings)
	}
	if spec.Trigger.Width != 8 {
		t.Fatalf("unexpected trigger %+v", spec.Trigger)
	}
}

func TestLevelSpecValidate(t *testing.T) {
	valid := func() LevelSpec {
		door := TransitionSpec{Settings: transition.NewSettings("door", transition.DefaultConfig())}
		door.Trigger = ColliderSpec{Width: 10, Height: 10}
		return LevelSpec{
			Player:      PlayerSpec{Collider: ColliderSpec{Width: 16, Height: 32}},
			Solids:      []SolidSpec{{Name: "floor", Width: 10, Height: 10}},
			Transitions: []TransitionSpec{door},
		}
	}

	cases := []struct {
		name   string
		mutate func(*LevelSpec)
		ok     bool
	}{
		{"valid", func(*LevelSpec) {}, true},
		{"player_without_size", func(l *LevelSpec) { l.Player.Collider.Width = 0 }, false},
		{"solid_without_size", func(l *LevelSpec) { l.Solids[0].Height = 0 }, false},
		{"unnamed_transition", func(l *LevelSpec) { l.Transitions[0].Name = "" }, false},
		{"duplicate_transition", func(l *LevelSpec) { l.Transitions = append(l.Transitions, l.Transitions[0]) }, false},
		{"empty_trigger", func(l *LevelSpec) { l.Transitions[0].Trigger.Height = 0 }, false},
		{"bad_axis", func(l *LevelSpec) { l.Transitions[0].Direction = transition.Axis(9) }, false},
		{"bad_easing", func(l *LevelSpec) { l.Transitions[0].Easing = "wobble" }, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := valid()
			c.mutate(&l)
			err := l.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
		ok   bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, A: 255}, true},
		{`"10203040"`, color.NRGBA{R: 16, G: 32, B: 48, A: 64}, true},
		{`"#fff"`, nil, false},
		{`"#gg0000"`, nil, false},
		{`[1, 2]`, nil, false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if (err == nil) != c.ok {
				t.Fatalf("unexpected error state: %v", err)
			}
			if c.ok && got.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.Color)
			}
		})
	}

	var unset *YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("unset color should fall back")
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in         string
		prefab     string
		scriptPath string
	}{
		{"demo_level.yaml", "demo_level.yaml", "scripts/demo_level.yaml"},
		{"prefabs/demo_level.yaml", "demo_level.yaml", "scripts/demo_level.yaml"},
		{"prefabs/scripts/a.tengo", "scripts/a.tengo", "scripts/a.tengo"},
		{"scripts/a.tengo", "scripts/a.tengo", "scripts/a.tengo"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanPrefabPath(c.in); got != c.prefab {
				t.Fatalf("prefab path: expected %q, got %q", c.prefab, got)
			}
			if got := cleanScriptPath(c.in); got != c.scriptPath {
				t.Fatalf("script path: expected %q, got %q", c.scriptPath, got)
			}
		})
	}

	if _, err := LoadScript("transition_events.tengo"); err != nil {
		t.Fatalf("load embedded script: %v", err)
	}
}
