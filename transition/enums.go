package transition

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is whether a sequence moves the player into a bounded region or
// back out of it. It flips after every completed cycle.
type Entry int

const (
	EntryEnter Entry = iota
	EntryExit
)

// Phase is the stage of an active sequence.
type Phase int

const (
	PhasePreDelay Phase = iota
	PhaseTransition
	PhasePostDelay
)

// Axis is the screen axis the camera bounds change along.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// EventCall selects when the pre/post transition events fire relative to
// the entry kind and the phase delay.
type EventCall int

const (
	EventBothBeforeDelay EventCall = iota
	EventBothAfterDelay
	EventOnEnterBeforeDelay
	EventOnEnterAfterDelay
	EventOnExitBeforeDelay
	EventOnExitAfterDelay
)

var (
	entryNames     = []string{"enter", "exit"}
	phaseNames     = []string{"pre_delay", "transition", "post_delay"}
	axisNames      = []string{"horizontal", "vertical"}
	eventCallNames = []string{
		"both_before_delay",
		"both_after_delay",
		"on_enter_before_delay",
		"on_enter_after_delay",
		"on_exit_before_delay",
		"on_exit_after_delay",
	}
)

func (e Entry) Valid() bool { return e >= 0 && int(e) < len(entryNames) }
func (p Phase) Valid() bool { return p >= 0 && int(p) < len(phaseNames) }
func (a Axis) Valid() bool { return a >= 0 && int(a) < len(axisNames) }
func (c EventCall) Valid() bool { return c >= 0 && int(c) < len(eventCallNames) }

func (e Entry) String() string { return enumString("Entry", int(e), entryNames) }
func (p Phase) String() string { return enumString("Phase", int(p), phaseNames) }
func (a Axis) String() string { return enumString("Axis", int(a), axisNames) }
func (c EventCall) String() string { return enumString("EventCall", int(c), eventCallNames) }

// Toggle returns the opposite entry kind.
func (e Entry) Toggle() Entry {
	if e == EntryEnter {
		return EntryExit
	}
	return EntryEnter
}

func ParseEntry(s string) (Entry, error) {
	v, err := parseEnum("entry", s, entryNames)
	return Entry(v), err
}

func ParsePhase(s string) (Phase, error) {
	v, err := parseEnum("phase", s, phaseNames)
	return Phase(v), err
}

func ParseAxis(s string) (Axis, error) {
	v, err := parseEnum("axis", s, axisNames)
	return Axis(v), err
}

func ParseEventCall(s string) (EventCall, error) {
	v, err := parseEnum("event call", s, eventCallNames)
	return EventCall(v), err
}

func (e Entry) MarshalYAML() (any, error) { return marshalEnum("entry", int(e), entryNames) }
func (p Phase) MarshalYAML() (any, error) { return marshalEnum("phase", int(p), phaseNames) }
func (a Axis) MarshalYAML() (any, error) { return marshalEnum("axis", int(a), axisNames) }
func (c EventCall) MarshalYAML() (any, error) { return marshalEnum("event call", int(c), eventCallNames) }

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum("entry", value, entryNames)
	if err != nil {
		return err
	}
	*e = Entry(v)
	return nil
}

func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum("phase", value, phaseNames)
	if err != nil {
		return err
	}
	*p = Phase(v)
	return nil
}

func (a *Axis) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum("axis", value, axisNames)
	if err != nil {
		return err
	}
	*a = Axis(v)
	return nil
}

func (c *EventCall) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum("event call", value, eventCallNames)
	if err != nil {
		return err
	}
	*c = EventCall(v)
	return nil
}

func enumString(kind string, v int, names []string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return kind + "(" + strconv.Itoa(v) + ")"
}

func marshalEnum(kind string, v int, names []string) (any, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidEnum, kind, v)
	}
	return names[v], nil
}

func decodeEnum(kind string, value *yaml.Node, names []string) (int, error) {
	if value == nil || value.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%w: %s must be a scalar", ErrInvalidEnum, kind)
	}
	return parseEnum(kind, value.Value, names)
}

// parseEnum accepts the tagged name or the legacy integer code.
func parseEnum(kind, s string, names []string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if key == name {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < len(names) {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, s)
}
