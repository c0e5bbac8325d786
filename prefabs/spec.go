package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/camtransition/transition"
	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("prefabs: invalid level")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec is one playable level: the camera, the player, the level
// geometry and its camera transition triggers.
type LevelSpec struct {
	Name        string           `yaml:"name"`
	Background  *YAMLColor       `yaml:"background"`
	Camera      CameraSpec       `yaml:"camera"`
	Player      PlayerSpec       `yaml:"player"`
	Beam        BeamSpec         `yaml:"beam"`
	Solids      []SolidSpec      `yaml:"solids"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate rejects levels the entity builders cannot place.
func (l LevelSpec) Validate() error {
	if l.Player.Collider.Width <= 0 || l.Player.Collider.Height <= 0 {
		return fmt.Errorf("%w: player collider must have a size", ErrInvalidLevel)
	}
	for i, s := range l.Solids {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: solid[%d] %q must have a size", ErrInvalidLevel, i, s.Name)
		}
	}
	seen := make(map[string]bool, len(l.Transitions))
	for i, t := range l.Transitions {
		if t.Name == "" {
			return fmt.Errorf("%w: transition[%d] has no name", ErrInvalidLevel, i)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate transition %q", ErrInvalidLevel, t.Name)
		}
		seen[t.Name] = true
		if t.Trigger.Width <= 0 || t.Trigger.Height <= 0 {
			return fmt.Errorf("%w: transition %q trigger must have a size", ErrInvalidLevel, t.Name)
		}
		if err := t.Settings.Validate(); err != nil {
			return fmt.Errorf("%w: transition %q: %w", ErrInvalidLevel, t.Name, err)
		}
	}
	return nil
}

// Transition finds a transition spec by name.
func (l LevelSpec) Transition(name string) (TransitionSpec, bool) {
	for _, t := range l.Transitions {
		if t.Name == name {
			return t, true
		}
	}
	return TransitionSpec{}, false
}

// TransitionSpec is a camera transition trigger. The settings record is
// inlined so a level file authors the same keys a save file stores; keys
// left out keep the defaults of a freshly built sequencer.
type TransitionSpec struct {
	transition.Settings `yaml:",inline"`
	Trigger             ColliderSpec `yaml:"trigger"`
	Script              string       `yaml:"script,omitempty"`
}

func (t *TransitionSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain TransitionSpec
	out := plain{Settings: transition.NewSettings("", transition.DefaultConfig())}
	if err := value.Decode(&out); err != nil {
		return err
	}
	*t = TransitionSpec(out)
	return nil
}

type CameraSpec struct {
	Name      string            `yaml:"name"`
	Transform TransformSpec     `yaml:"transform"`
	Target    string            `yaml:"target"`
	Z         float64           `yaml:"z"`
	ViewW     float64           `yaml:"view_w"`
	ViewH     float64           `yaml:"view_h"`
	Bounds    transition.Bounds `yaml:"bounds"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	MoveSpeed float64       `yaml:"move_speed"`
	JumpSpeed float64       `yaml:"jump_speed"`
	Mass      float64       `yaml:"mass"`
	Friction  float64       `yaml:"friction"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Animation AnimationSpec `yaml:"animation"`
	Color     *YAMLColor    `yaml:"color"`
}

type SolidSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Friction  float64       `yaml:"friction"`
	Color     *YAMLColor    `yaml:"color"`
}

type BeamSpec struct {
	MaxSegments  int        `yaml:"max_segments"`
	MaxBeamTime  float64    `yaml:"max_beam_time"`
	DestroyDelay float64    `yaml:"destroy_delay"`
	SegmentWidth float64    `yaml:"segment_width"`
	Height       float64    `yaml:"height"`
	Color        *YAMLColor `yaml:"color"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

type AnimationSpec struct {
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
	Playing bool                        `yaml:"playing"`
}

type AnimationDefSpec struct {
	Name       string  `yaml:"name"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
