// Package ranking defines the closed set of cook seniority titles and the
// total order used to break score ties.
package ranking

import (
	"fmt"
	"strings"
)

// Ranking is a cook's seniority title. Lower values are more senior.
type Ranking int

// Seniority titles, most senior first. Unknown is the zero value and is never
// produced by Parse.
const (
	Unknown Ranking = iota
	Chef
	SousChef
	CookA
	CookB
	CookC
)

// ordered lists every valid ranking from most to least senior.
var ordered = []Ranking{Chef, SousChef, CookA, CookB, CookC} //nolint:gochecknoglobals // immutable lookup

var titles = map[Ranking]string{ //nolint:gochecknoglobals // immutable lookup
	Chef:     "chef",
	SousChef: "sous chef",
	CookA:    "cook A",
	CookB:    "cook B",
	CookC:    "cook C",
}

// All returns the valid rankings ordered from most to least senior.
func All() []Ranking {
	out := make([]Ranking, len(ordered))
	copy(out, ordered)
	return out
}

// Parse converts a stored title ("chef", "sous chef", "cook A", ...) into a Ranking.
// Matching ignores case and surrounding whitespace.
func Parse(title string) (Ranking, error) {
	norm := strings.ToLower(strings.TrimSpace(title))
	for _, r := range ordered {
		if strings.ToLower(titles[r]) == norm {
			return r, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownRanking, title)
}

// MustParse is Parse for fixtures; it panics on unknown titles.
func MustParse(title string) Ranking {
	r, err := Parse(title)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the stored title.
func (r Ranking) String() string {
	if t, ok := titles[r]; ok {
		return t
	}
	return "unknown"
}

// Valid reports whether r is one of the known titles.
func (r Ranking) Valid() bool {
	_, ok := titles[r]
	return ok
}

// Compare orders a and b by seniority: negative when a is more senior than b,
// positive when b is more senior, zero when equal. Unknown sorts last.
func Compare(a, b Ranking) int {
	return a.position() - b.position()
}

// MoreSenior reports whether a strictly outranks b.
func MoreSenior(a, b Ranking) bool {
	return Compare(a, b) < 0
}

func (r Ranking) position() int {
	if !r.Valid() {
		return len(ordered) + 1
	}
	return int(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Ranking) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRanking, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ranking) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
