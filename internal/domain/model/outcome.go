package model

// Resolution names the rule that decided the winner.
type Resolution string

// Winner resolution rules, in the order they are tried.
const (
	ResolvedByScore     Resolution = "score"
	ResolvedBySeniority Resolution = "seniority"
	ResolvedByCoinFlip  Resolution = "coin_flip"
)

// Score is one contestant's judged result. Ratings are ordered by judge seat.
type Score struct {
	CookID  int   `json:"cook_id"`
	Ratings []int `json:"ratings"`
	Total   int   `json:"total"`
}

// Outcome is the simulated result of an episode.
type Outcome struct {
	Scores     []Score    `json:"scores"`
	WinnerID   int        `json:"winner_id"`
	Resolution Resolution `json:"resolution"`
}

// Ratings maps cook id to per-judge ratings.
func (o Outcome) Ratings() map[int][]int {
	out := make(map[int][]int, len(o.Scores))
	for _, s := range o.Scores {
		out[s.CookID] = s.Ratings
	}
	return out
}

// Totals maps cook id to summed score.
func (o Outcome) Totals() map[int]int {
	out := make(map[int]int, len(o.Scores))
	for _, s := range o.Scores {
		out[s.CookID] = s.Total
	}
	return out
}
