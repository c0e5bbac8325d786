package transition_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/milk9111/camtransition/sim"
	"github.com/milk9111/camtransition/transition"
)

func TestSettingsRoundTripInFlight(t *testing.T) {
	cfg := scenarioConfig()
	cfg.PreTransitionDelay = 0.3
	cfg.TransitionDelay = 0.7
	cfg.PostTransitionDelay = 0.2
	cfg.EventCallPostDelay = transition.EventOnExitAfterDelay
	cfg.Easing = "out_sine"

	for _, ticks := range []int{0, 1, 3, 4, 9, 11, 12, 13} {
		orig := newRig(t, cfg)
		orig.seq.SetPosition(transition.Vec3{X: 320, Y: 64, Z: 1})
		orig.player.Vel = transition.Vec2{X: 1.1, Y: -0.7}
		orig.seq.Trigger(orig.player)
		for i := 0; i < ticks; i++ {
			orig.seq.Tick(0.1)
		}

		saved := orig.seq.Settings()
		data, err := transition.MarshalSettings([]transition.Settings{saved})
		if err != nil {
			t.Fatalf("ticks=%d: marshal: %v", ticks, err)
		}
		list, err := transition.UnmarshalSettings(data)
		if err != nil {
			t.Fatalf("ticks=%d: unmarshal: %v", ticks, err)
		}
		if len(list) != 1 {
			t.Fatalf("ticks=%d: expected one record, got %d", ticks, len(list))
		}
		if !reflect.DeepEqual(saved, list[0]) {
			t.Fatalf("ticks=%d: record changed:\n%+v\n%+v", ticks, saved, list[0])
		}

		camera := *orig.camera
		player := *orig.player
		loaded, err := transition.FromSettings(list[0], &camera, sim.NewFreeze(), &sim.Recorder{}, &player)
		if err != nil {
			t.Fatalf("ticks=%d: from settings: %v", ticks, err)
		}
		if !reflect.DeepEqual(saved, loaded.Settings()) {
			t.Fatalf("ticks=%d: loaded sequencer differs", ticks)
		}

		orig.seq.Tick(0.1)
		loaded.Tick(0.1)
		if !reflect.DeepEqual(orig.seq.Settings(), loaded.Settings()) {
			t.Fatalf("ticks=%d: next tick diverged", ticks)
		}
		if orig.player.Pos != player.Pos || orig.camera.Pos != camera.Pos || orig.camera.Limits != camera.Limits {
			t.Fatalf("ticks=%d: collaborators diverged", ticks)
		}
	}
}

func TestSettingsIdleRecord(t *testing.T) {
	r := newRig(t, scenarioConfig())
	st := r.seq.Settings()
	if !st.GetCamPrevious || st.Entry != transition.EntryEnter || st.State != transition.PhasePreDelay || st.Active {
		t.Fatalf("unexpected fresh record %+v", st)
	}
	if st.Config() != scenarioConfig() {
		t.Fatalf("config lost: %+v", st.Config())
	}

	data, err := transition.MarshalSettings([]transition.Settings{st})
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"entry: enter", "state: pre_delay", "direction: horizontal", "eventCallPreDelay: both_before_delay", "getCamPrevious: true"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in\n%s", want, text)
		}
	}
}

func TestUnmarshalSettingsEnums(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		wantErr bool
		check   func(st transition.Settings) bool
	}{
		{"name", "entry: exit", false, func(st transition.Settings) bool { return st.Entry == transition.EntryExit }},
		{"legacy_int", "entry: 1", false, func(st transition.Settings) bool { return st.Entry == transition.EntryExit }},
		{"mixed_case", "direction: Vertical", false, func(st transition.Settings) bool { return st.Direction == transition.AxisVertical }},
		{"state_legacy", "state: 2", false, func(st transition.Settings) bool { return st.State == transition.PhasePostDelay }},
		{"event_call", "eventCallPostDelay: on_exit_after_delay", false, func(st transition.Settings) bool {
			return st.EventCallPostDelay == transition.EventOnExitAfterDelay
		}},
		{"entry_out_of_range", "entry: 2", true, nil},
		{"state_negative", "state: -1", true, nil},
		{"direction_unknown", "direction: diagonal", true, nil},
		{"event_call_out_of_range", "eventCallPreDelay: 6", true, nil},
		{"not_scalar", "entry: [1]", true, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := "transitions:\n  - name: a\n    " + c.field + "\n"
			list, err := transition.UnmarshalSettings([]byte(doc))
			if c.wantErr {
				if !errors.Is(err, transition.ErrInvalidEnum) {
					t.Fatalf("expected ErrInvalidEnum, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(list) != 1 || !c.check(list[0]) {
				t.Fatalf("unexpected decode %+v", list)
			}
		})
	}
}

func TestPutSettingsGuards(t *testing.T) {
	r := newRig(t, scenarioConfig())
	st := r.seq.Settings()
	st.Active = true
	if err := r.seq.PutSettings(st, nil); !errors.Is(err, transition.ErrMissingPlayer) {
		t.Fatalf("expected ErrMissingPlayer, got %v", err)
	}

	bad := r.seq.Settings()
	bad.Entry = transition.Entry(9)
	if err := r.seq.PutSettings(bad, nil); !errors.Is(err, transition.ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}

	r.seq.Trigger(r.player)
	if err := r.seq.PutSettings(r.seq.Settings(), r.player); !errors.Is(err, transition.ErrActive) {
		t.Fatalf("expected ErrActive, got %v", err)
	}
}

func TestSaveLoadSettingsFile(t *testing.T) {
	path := t.TempDir() + "/transitions.yaml"
	a := transition.NewSettings("a", scenarioConfig())
	b := transition.NewSettings("b", transition.DefaultConfig())
	b.OnlyMoveCamera = true

	if err := transition.SaveSettingsFile(path, []transition.Settings{a, b}); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := transition.LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(list, []transition.Settings{a, b}) {
		t.Fatalf("round trip mismatch: %+v", list)
	}

	if _, err := transition.LoadSettingsFile(path + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
