package sampler

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithQuota sets the selection sizes the sampler aims for.
func WithQuota(q Quota) Option {
	return func(s *Sampler) {
		if q.Nationalities > 0 {
			s.quota.Nationalities = q.Nationalities
		}
		if q.Judges > 0 {
			s.quota.Judges = q.Judges
		}
	}
}
