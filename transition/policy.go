package transition

// Hook is the point inside a delay phase where an event policy is checked.
type Hook int

const (
	// HookBeforeDelay runs on every tick of a delay phase.
	HookBeforeDelay Hook = iota
	// HookAfterDelay runs once, on the tick the delay runs out.
	HookAfterDelay
)

// Fires reports whether the policy wants its event at the given hook for
// the given entry kind.
func (c EventCall) Fires(hook Hook, entry Entry) bool {
	switch c {
	case EventBothBeforeDelay:
		return hook == HookBeforeDelay
	case EventBothAfterDelay:
		return hook == HookAfterDelay
	case EventOnEnterBeforeDelay:
		return hook == HookBeforeDelay && entry == EntryEnter
	case EventOnEnterAfterDelay:
		return hook == HookAfterDelay && entry == EntryEnter
	case EventOnExitBeforeDelay:
		return hook == HookBeforeDelay && entry == EntryExit
	case EventOnExitAfterDelay:
		return hook == HookAfterDelay && entry == EntryExit
	}
	return false
}

// oneShot guards an event so it fires at most once per cycle.
type oneShot struct {
	pending bool
}

func (o *oneShot) arm() { o.pending = true }

func (o *oneShot) fire(fn func()) {
	if !o.pending {
		return
	}
	o.pending = false
	fn()
}
