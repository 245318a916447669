package simulator

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// rng bundles the general-purpose stream and the distribution sampling
// helpers behind one jointly seeded source, so a single seed fully
// determines the event sequence.
type rng struct {
	*rand.Rand
	src rand.Source
}

func newRNG(seed int64) *rng {
	src := rand.NewPCG(uint64(seed), uint64(seed)+1)
	return &rng{Rand: rand.New(src), src: src}
}

func (r *rng) normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

func (r *rng) uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: r.src}.Rand()
}

func (r *rng) triangular(min, max, mode float64) float64 {
	return distuv.NewTriangle(min, max, mode, r.src).Rand()
}

// poisson draws an arrival count. A rate of zero legitimately yields zero
// arrivals rather than an error.
func (r *rng) poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: r.src}.Rand())
}

func (r *rng) exponential(rate float64) float64 {
	return distuv.Exponential{Rate: rate, Src: r.src}.Rand()
}

// Read fills p from the stream. It exists so UUIDs can be drawn from the
// same seeded source as everything else; it never returns an error.
func (r *rng) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.src.Uint64()
		for j := i; j < i+8 && j < len(p); j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}
