package model

// Episode is everything a persistence collaborator needs to record one
// generated episode.
type Episode struct {
	ID        int       `json:"id"`
	Season    int       `json:"season"`
	Number    int       `json:"number"`
	Image     Image     `json:"image"`
	Selection Selection `json:"selection"`
	Outcome   Outcome   `json:"outcome"`
	// NewRecipeCooks lists assignments whose recipe/cook pair was not yet recorded.
	NewRecipeCooks []RecipeCook `json:"new_recipe_cooks"`
}
