package simulator

import "time"

// arrivalRate draws the Poisson rate for the hour containing when. The
// work-hours condition uses a disjunction over the hour, so on weekdays it
// holds for every hour of the day; weekday traffic therefore always draws
// the peaked triangular rate.
func (s *Simulator) arrivalRate(when time.Time) float64 {
	wd := when.Weekday()
	weekday := wd != time.Saturday && wd != time.Sunday
	hour := when.Hour()

	switch {
	case weekday && (hour >= 9 || hour <= 17):
		return s.rng.triangular(1.5, 5, 2.75)
	case hour < 5 || hour >= 11:
		return s.rng.uniform(0, 5)
	default:
		return s.rng.uniform(1.5, 4.25)
	}
}

// validUserArrivals returns the number of legitimate-user arrivals in the
// hour containing when and their inter-arrival offsets in hours. Offsets
// are applied sequentially to the running clock, so arrivals can spill
// past the hour boundary.
func (s *Simulator) validUserArrivals(when time.Time) (int, []float64) {
	lambda := s.arrivalRate(when)
	count := s.rng.poisson(lambda)
	if count == 0 {
		return 0, nil
	}
	offsets := make([]float64, count)
	for i := range offsets {
		offsets[i] = s.rng.exponential(lambda)
	}
	return count, offsets
}
