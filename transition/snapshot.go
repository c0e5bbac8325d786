package transition

// PlayerSnapshot is the player state saved when a sequence starts and
// restored when it completes.
type PlayerSnapshot struct {
	Velocity   Vec2
	Invincible bool
}

// Capture records the player state and forces invincibility on for the
// duration of the sequence.
func Capture(p Player) PlayerSnapshot {
	snap := PlayerSnapshot{
		Velocity:   p.Velocity(),
		Invincible: p.Invincible(),
	}
	p.SetInvincible(true)
	return snap
}

// Restore writes the captured velocity and invincibility back. Any
// invincibility change made while the player was frozen is overwritten.
func (s PlayerSnapshot) Restore(p Player) {
	p.SetVelocity(s.Velocity)
	p.SetInvincible(s.Invincible)
}
