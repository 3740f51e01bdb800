package recency

// IsOverrepresented reports whether id already appears at least limit times in
// counts.
func IsOverrepresented(id int, counts Counts, limit int) bool {
	return counts[id] >= limit
}

// Guard binds a window to a limit so samplers can ask per kind.
type Guard struct {
	window Window
	limit  int
}

// NewGuard returns a guard over w. A non-positive limit falls back to DefaultLimit.
func NewGuard(w Window, limit int) Guard {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Guard{window: w, limit: limit}
}

// Limit returns the saturation threshold.
func (g Guard) Limit() int { return g.limit }

// Nationality reports whether a nationality is saturated.
func (g Guard) Nationality(id int) bool {
	return IsOverrepresented(id, g.window.Nationalities, g.limit)
}

// Contestant reports whether a cook is saturated as a contestant.
func (g Guard) Contestant(id int) bool {
	return IsOverrepresented(id, g.window.ContestantCooks, g.limit)
}

// Recipe reports whether a recipe is saturated.
func (g Guard) Recipe(id int) bool {
	return IsOverrepresented(id, g.window.ContestantRecipes, g.limit)
}

// Judge reports whether a cook is saturated as a judge.
func (g Guard) Judge(id int) bool {
	return IsOverrepresented(id, g.window.Judges, g.limit)
}
