package dice

import (
	"math/rand"
	"sync"
	"time"
)

// randomRoller implements Roller using the package dice functions
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(count, sides, bonus)
}

// randomSource is a goroutine safe Source over math/rand
type randomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a Source seeded from the current time
func NewRandomSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

// NewSeededSource creates a reproducible Source
func NewSeededSource(seed int64) Source {
	return &randomSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *randomSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *randomSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
