package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// Source supplies the uniform draws that are not dice rolls: per-swing hit
// chance and narrative choices. It is kept apart from Roller so the flavor
// roll of an attack can be fixed while hit/miss stays independent.
type Source interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// Intn returns a uniform value in [0, n)
	Intn(n int) int
}
