package physics

// Box is an axis-aligned rectangle in surface pixels.
type Box struct {
	X, Y, W, H float64
}

// Overlaps reports whether two boxes share any area.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}
