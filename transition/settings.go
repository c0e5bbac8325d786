package transition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the flat save record of one sequencer: its authored config,
// the entry/capture state that survives between cycles and, for a sequence
// saved mid-flight, the runtime needed to resume it on the next tick.
type Settings struct {
	Name                string    `yaml:"name"`
	Position            Vec3      `yaml:"position"`
	GetCamPrevious      bool      `yaml:"getCamPrevious"`
	OnlyMoveCamera      bool      `yaml:"onlyMoveCamera"`
	Entry               Entry     `yaml:"entry"`
	State               Phase     `yaml:"state"`
	Direction           Axis      `yaml:"direction"`
	EventCallPreDelay   EventCall `yaml:"eventCallPreDelay"`
	EventCallPostDelay  EventCall `yaml:"eventCallPostDelay"`
	TransitionDelay     float64   `yaml:"transitionDelay"`
	PreTransitionDelay  float64   `yaml:"preTransitionDelay"`
	PostTransitionDelay float64   `yaml:"postTransitionDelay"`
	CameraMinPrevious   Vec2      `yaml:"cameraMinPrevious"`
	CameraMaxPrevious   Vec2      `yaml:"cameraMaxPrevious"`
	CameraMinPosition   Vec2      `yaml:"cameraMinPosition"`
	CameraMaxPosition   Vec2      `yaml:"cameraMaxPosition"`
	PlayerChange        Vec2      `yaml:"playerChange"`
	Easing              string    `yaml:"easing,omitempty"`

	Active           bool    `yaml:"active"`
	Timer            float64 `yaml:"timer"`
	Progress         float64 `yaml:"progress"`
	CameraMoveStart  Vec2    `yaml:"cameraMoveStart"`
	CameraMoveFinish Vec2    `yaml:"cameraMoveFinish"`
	PlayerMoveStart  Vec2    `yaml:"playerMoveStart"`
	PlayerMoveFinish Vec2    `yaml:"playerMoveFinish"`
	PreEventPending  bool    `yaml:"preEventPending"`
	PostEventPending bool    `yaml:"postEventPending"`
	PlayerVelocity   Vec2    `yaml:"playerVelocity"`
	PlayerInvincible bool    `yaml:"playerInvincible"`
}

// Config extracts the authored part of the record.
func (st Settings) Config() Config {
	return Config{
		OnlyMoveCamera:      st.OnlyMoveCamera,
		Axis:                st.Direction,
		PreTransitionDelay:  st.PreTransitionDelay,
		TransitionDelay:     st.TransitionDelay,
		PostTransitionDelay: st.PostTransitionDelay,
		CameraMin:           st.CameraMinPosition,
		CameraMax:           st.CameraMaxPosition,
		PlayerChange:        st.PlayerChange,
		EventCallPreDelay:   st.EventCallPreDelay,
		EventCallPostDelay:  st.EventCallPostDelay,
		Easing:              st.Easing,
	}
}

// Validate checks every enum coded field of the record.
func (st Settings) Validate() error {
	if !st.Entry.Valid() {
		return fmt.Errorf("%w: entry %d", ErrInvalidEnum, st.Entry)
	}
	if !st.State.Valid() {
		return fmt.Errorf("%w: state %d", ErrInvalidEnum, st.State)
	}
	return st.Config().Validate()
}

// SetConfig overwrites the authored part of the record.
func (st *Settings) SetConfig(cfg Config) {
	st.OnlyMoveCamera = cfg.OnlyMoveCamera
	st.Direction = cfg.Axis
	st.EventCallPreDelay = cfg.EventCallPreDelay
	st.EventCallPostDelay = cfg.EventCallPostDelay
	st.TransitionDelay = cfg.TransitionDelay
	st.PreTransitionDelay = cfg.PreTransitionDelay
	st.PostTransitionDelay = cfg.PostTransitionDelay
	st.CameraMinPosition = cfg.CameraMin
	st.CameraMaxPosition = cfg.CameraMax
	st.PlayerChange = cfg.PlayerChange
	st.Easing = cfg.Easing
}

// NewSettings is the record of a freshly built sequencer with cfg.
func NewSettings(name string, cfg Config) Settings {
	st := Settings{
		Name:           name,
		GetCamPrevious: true,
		Entry:          EntryEnter,
		State:          PhasePreDelay,
	}
	st.SetConfig(cfg)
	return st
}

// Settings snapshots the sequencer into a save record.
func (s *Sequencer) Settings() Settings {
	st := NewSettings(s.name, s.cfg)
	st.Position = s.position
	st.GetCamPrevious = s.capturePrevious
	st.Entry = s.entry
	st.State = s.phase
	st.CameraMinPrevious = s.previous.Min
	st.CameraMaxPrevious = s.previous.Max

	st.Active = s.active
	st.Timer = s.timer
	st.Progress = s.progress
	st.CameraMoveStart = s.cameraStart
	st.CameraMoveFinish = s.cameraFinish
	st.PlayerMoveStart = s.playerStart
	st.PlayerMoveFinish = s.playerFinish
	st.PreEventPending = s.preEvent.pending
	st.PostEventPending = s.postEvent.pending
	st.PlayerVelocity = s.snapshot.Velocity
	st.PlayerInvincible = s.snapshot.Invincible
	return st
}

// PutSettings restores a save record into an idle sequencer. A record saved
// mid-flight resumes against player, which must then be non-nil. The player
// itself is not touched: its frozen state is part of the saved world.
func (s *Sequencer) PutSettings(st Settings, player Player) error {
	if s.active {
		return ErrActive
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("transition: put settings %s: %w", st.Name, err)
	}
	if st.Active && player == nil {
		return fmt.Errorf("transition: put settings %s: %w", st.Name, ErrMissingPlayer)
	}

	s.name = st.Name
	s.position = st.Position
	s.cfg = st.Config()
	s.easing, _ = easingFunc(s.cfg.Easing)
	s.capturePrevious = st.GetCamPrevious
	s.entry = st.Entry
	s.phase = st.State
	s.previous = Bounds{Min: st.CameraMinPrevious, Max: st.CameraMaxPrevious}

	s.active = st.Active
	s.timer = st.Timer
	s.progress = st.Progress
	s.cameraStart = st.CameraMoveStart
	s.cameraFinish = st.CameraMoveFinish
	s.playerStart = st.PlayerMoveStart
	s.playerFinish = st.PlayerMoveFinish
	s.preEvent.pending = st.PreEventPending
	s.postEvent.pending = st.PostEventPending
	s.snapshot = PlayerSnapshot{Velocity: st.PlayerVelocity, Invincible: st.PlayerInvincible}
	s.player = nil
	if st.Active {
		s.player = player
	}
	return nil
}

// FromSettings builds a sequencer from a save record.
func FromSettings(st Settings, camera Camera, freeze FreezeCoordinator, events Events, player Player) (*Sequencer, error) {
	s, err := New(st.Name, st.Config(), camera, freeze, events)
	if err != nil {
		return nil, err
	}
	if err := s.PutSettings(st, player); err != nil {
		return nil, err
	}
	return s, nil
}

type settingsFile struct {
	Transitions []Settings `yaml:"transitions"`
}

// MarshalSettings encodes a list of records as YAML.
func MarshalSettings(list []Settings) ([]byte, error) {
	data, err := yaml.Marshal(settingsFile{Transitions: list})
	if err != nil {
		return nil, fmt.Errorf("transition: marshal settings: %w", err)
	}
	return data, nil
}

// UnmarshalSettings decodes and validates a list of records.
func UnmarshalSettings(data []byte) ([]Settings, error) {
	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("transition: unmarshal settings: %w", err)
	}
	for i, st := range file.Transitions {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("transition: settings[%d] %s: %w", i, st.Name, err)
		}
	}
	return file.Transitions, nil
}

func LoadSettingsFile(path string) ([]Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transition: load %s: %w", path, err)
	}
	return UnmarshalSettings(data)
}

func SaveSettingsFile(path string, list []Settings) error {
	data, err := MarshalSettings(list)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("transition: save %s: %w", path, err)
	}
	return nil
}
