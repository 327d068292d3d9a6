package physics

// ComboPoints is the base reward of a hit, multiplied by the combo count.
const ComboPoints = 100

// Combo tracks a streak of consecutive hits.
type Combo struct {
	Count int
	Best  int
}

// Hit extends the streak and returns the points it is worth.
func (c *Combo) Hit() int {
	c.Count++
	if c.Count > c.Best {
		c.Best = c.Count
	}
	return ComboPoints * c.Count
}

// Miss ends the streak.
func (c *Combo) Miss() {
	c.Count = 0
}

// Reset clears the streak and the best run.
func (c *Combo) Reset() {
	*c = Combo{}
}
