package simulator

import "time"

// hack drives one attacker campaign: the targets are visited in random
// order, one attacker invocation each, with time threaded sequentially.
// The returned origin is the first one generated even when origins vary
// per target, so polymorphic campaigns are under-labeled on purpose.
func (s *Simulator) hack(start time.Time, targets []string, varyOrigins bool) (string, time.Time) {
	campaignOrigin := s.provider.RandomOrigin()

	shuffled := make([]string, len(targets))
	copy(shuffled, targets)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	current := start
	for _, username := range shuffled {
		origin := campaignOrigin
		if varyOrigins {
			origin = s.provider.RandomOrigin()
		}
		records, end := s.attackerAttempt(current, origin, username)
		s.log = append(s.log, records...)
		current = end
	}
	return campaignOrigin, current
}
