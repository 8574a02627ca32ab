package sequencer

import "math/rand"

// Random pattern distribution constants.
const (
	restProbability    = 0.3
	slideProbability   = 0.3
	enabledProbability = 0.7

	randomPitchLow  = 20
	randomPitchHigh = 40
)

// RandomPattern generates a pattern from the caller's random source, so
// results are reproducible under a seeded *rand.Rand. Each step rests with
// probability 0.3, otherwise picks a uniform pitch in [20, 40]; velocity
// is uniform in [0.6, 1.0], duration uniform in [0.5, 1.0], slide with
// probability 0.3 and enabled with probability 0.7.
func RandomPattern(rng *rand.Rand) Pattern {
	var p Pattern
	for i := range p {
		step := Step{
			Velocity: 0.6 + 0.4*rng.Float64(),
			Duration: 0.5 + 0.5*rng.Float64(),
			Slide:    rng.Float64() < slideProbability,
			Enabled:  rng.Float64() < enabledProbability,
		}

		if rng.Float64() >= restProbability {
			step.Note = randomPitchLow + rng.Intn(randomPitchHigh-randomPitchLow+1)
		}

		p[i] = step
	}

	return p
}
