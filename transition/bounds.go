package transition

// PlayerFinish is where the player ends up: the displacement is added when
// entering and subtracted when exiting.
func PlayerFinish(entry Entry, start, change Vec2) Vec2 {
	if entry == EntryEnter {
		return start.Add(change)
	}
	return start.Sub(change)
}

// CameraFinish is where the camera ends up. Only the configured axis moves.
// Entering targets the minimum corner of the new bounds; exiting returns to
// the previous bounds, picking the max edge when the displacement on that
// axis is positive and the min edge otherwise (zero included).
func CameraFinish(axis Axis, entry Entry, previous, target Bounds, change, camera Vec2) Vec2 {
	if axis == AxisHorizontal {
		x := target.Min.X
		if entry == EntryExit {
			if change.X > 0 {
				x = previous.Max.X
			} else {
				x = previous.Min.X
			}
		}
		return Vec2{X: x, Y: camera.Y}
	}

	y := target.Min.Y
	if entry == EntryExit {
		if change.Y > 0 {
			y = previous.Max.Y
		} else {
			y = previous.Min.Y
		}
	}
	return Vec2{X: camera.X, Y: y}
}

// FinalBounds is the camera bounds applied when the movement completes.
func FinalBounds(entry Entry, previous, target Bounds) Bounds {
	if entry == EntryEnter {
		return target
	}
	return previous
}
