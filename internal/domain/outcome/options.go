package outcome

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithRatingRange sets the inclusive range each judge rates in.
func WithRatingRange(lowest, highest int) Option {
	return func(s *Simulator) {
		if lowest > 0 && highest >= lowest {
			s.lowest = lowest
			s.highest = highest
		}
	}
}
