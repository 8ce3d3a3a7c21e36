package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/battle-bot-discord/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
	}

	return dice.NewRollResult(rolls, sides, bonus), nil
}

// SequenceSource implements dice.Source by replaying fixed values
type SequenceSource struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fIndex int
	iIndex int
	fCalls int
}

// NewSequenceSource creates a source that returns floats in order.
// Once exhausted the last value repeats; with no values it returns 0.
func NewSequenceSource(floats ...float64) *SequenceSource {
	return &SequenceSource{floats: floats}
}

// WithInts sets the values returned by Intn
func (s *SequenceSource) WithInts(ints ...int) *SequenceSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = ints
	s.iIndex = 0
	return s
}

// Float64 implements dice.Source.Float64
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fCalls++
	if len(s.floats) == 0 {
		return 0
	}
	if s.fIndex >= len(s.floats) {
		return s.floats[len(s.floats)-1]
	}
	v := s.floats[s.fIndex]
	s.fIndex++
	return v
}

// Intn implements dice.Source.Intn, wrapping stored values into [0, n)
func (s *SequenceSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	idx := s.iIndex
	if idx >= len(s.ints) {
		idx = len(s.ints) - 1
	} else {
		s.iIndex++
	}
	return s.ints[idx] % n
}

// FloatCalls returns how many times Float64 was called
func (s *SequenceSource) FloatCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fCalls
}
