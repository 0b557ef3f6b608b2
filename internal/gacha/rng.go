package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource abstract

type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Float64()
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo, tests, --seed)
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// fixedRNG replays a fixed sequence of values, cycling when exhausted.
type fixedRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixedRNG returns a source that yields values in order and then starts over.
// Values outside [0, 1) are clamped. With no values it always yields 0.
func NewFixedRNG(values ...float64) RandomSource {
	cp := make([]float64, len(values))
	for i, v := range values {
		cp[i] = clampUnit(v)
	}
	return &fixedRNG{values: cp}
}

func (f *fixedRNG) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next]
	f.next = (f.next + 1) % len(f.values)
	return v
}

// Uniform maps one draw of rng onto [lo, hi).
func Uniform(rng RandomSource, lo, hi float64) float64 {
	if rng == nil {
		rng = DefaultRNG()
	}
	return lo + rng.Float64()*(hi-lo)
}
