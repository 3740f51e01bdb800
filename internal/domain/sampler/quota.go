package sampler

import (
	"fmt"

	"github.com/okian/cookoff/internal/domain/model"
)

// Default selection sizes.
const (
	DefaultNationalities = 10
	DefaultJudges        = 3
)

// Quota is the exact size a Selection must reach to be usable. Contestants and
// recipes follow the nationality count.
type Quota struct {
	Nationalities int
	Judges        int
}

// DefaultQuota returns the 10 nationalities / 3 judges quota.
func DefaultQuota() Quota {
	return Quota{Nationalities: DefaultNationalities, Judges: DefaultJudges}
}

// Met reports whether every part of sel has exactly the required size.
func (q Quota) Met(sel model.Selection) bool {
	return len(sel.Nationalities) == q.Nationalities &&
		len(sel.Contestants) == q.Nationalities &&
		len(sel.Recipes) == q.Nationalities &&
		len(sel.Judges) == q.Judges
}

// Check returns nil when sel meets the quota, otherwise an ErrQuotaUnmet
// describing the counts reached.
func (q Quota) Check(sel model.Selection) error {
	if q.Met(sel) {
		return nil
	}
	return fmt.Errorf("%w: nationalities %d/%d, contestants %d/%d, recipes %d/%d, judges %d/%d",
		ErrQuotaUnmet,
		len(sel.Nationalities), q.Nationalities,
		len(sel.Contestants), q.Nationalities,
		len(sel.Recipes), q.Nationalities,
		len(sel.Judges), q.Judges,
	)
}
