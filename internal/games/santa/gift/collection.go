package gift

import "github.com/vovakirdan/santa-racer/internal/games/santa/sprite"

// Collection owns the live gifts. Order carries no meaning.
type Collection struct {
	items []*Gift
}

// Add appends a gift.
func (c *Collection) Add(g *Gift) {
	c.items = append(c.items, g)
}

// Update ticks every gift once, then compacts away those that can be deleted.
func (c *Collection) Update(env *Env) {
	for _, g := range c.items {
		g.Update(env)
	}

	valid := c.items[:0]
	for _, g := range c.items {
		if g.mode != CanBeDeleted {
			valid = append(valid, g)
		}
	}
	clear(c.items[len(valid):])
	c.items = valid
}

// Reset drops every gift.
func (c *Collection) Reset() {
	clear(c.items)
	c.items = c.items[:0]
}

// Items returns the live gifts.
func (c *Collection) Items() []*Gift { return c.items }

// Len returns the number of live gifts.
func (c *Collection) Len() int { return len(c.items) }

// Visuals returns the draw records of every live gift.
func (c *Collection) Visuals() []sprite.Visual {
	var out []sprite.Visual
	for _, g := range c.items {
		out = append(out, g.Visuals()...)
	}
	return out
}
