package chip8

import "math/rand/v2"

// RandomSource provides the random bytes used by the RND instruction.
type RandomSource interface {
	RandomByte() uint8
}

// RandomFunc adapts a function to the RandomSource interface.
type RandomFunc func() uint8

// RandomByte returns the result of calling f.
func (f RandomFunc) RandomByte() uint8 {
	return f()
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a pseudo random source. A seed of 0 selects a
// randomly seeded generator, any other seed produces a reproducible sequence.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &pcgSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (s *pcgSource) RandomByte() uint8 {
	return uint8(s.rng.UintN(256))
}
