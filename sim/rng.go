package sim

import (
	"math/rand"
)

// Stream is a patient-private source of uniform random draws.
//
// Every patient owns exactly one Stream, seeded with the patient id. Two
// streams built from the same seed produce the same draw sequence no matter
// what any other stream does, so a patient's trajectory depends only on its
// own id and the transition matrix, never on scheduling order or on how many
// other patients exist.
//
// Thread-safety: NOT thread-safe. A patient is the only consumer of its
// stream, and patients never share streams.
type Stream struct {
	seed  int64
	rng   *rand.Rand
	draws int64
}

// NewStream creates a Stream seeded with the given value.
func NewStream(seed int64) *Stream {
	return &Stream{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Uniform returns the next draw, uniformly distributed in [0, 1).
func (s *Stream) Uniform() float64 {
	s.draws++
	return s.rng.Float64()
}

// Seed returns the seed this stream was built from.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Draws returns how many uniforms have been consumed so far. Absorbed
// patients stop drawing, so the counter doubles as a check that frozen
// trajectories spend no randomness.
func (s *Stream) Draws() int64 {
	return s.draws
}
