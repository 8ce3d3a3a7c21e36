package dice

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
)

// RollResult contains the outcome of a dice roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	RawTotal int   // Sum of all dice without bonus
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	IsCrit   bool // Natural 20 on a single d20
	IsFumble bool // Natural 1 on a single d20
}

// Roll rolls count dice of the given size using the package random source
func Roll(count, size, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if size < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(size) + 1
		total += roll
		out[i] = roll
	}

	log.Println("Rolling", count, "d", size, ":", out, "total:", total)
	return newRollResult(out, size, bonus), nil
}

func newRollResult(rolls []int, sides, bonus int) *RollResult {
	raw := 0
	for _, r := range rolls {
		raw += r
	}

	result := &RollResult{
		Total:    raw + bonus,
		RawTotal: raw,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    len(rolls),
		Sides:    sides,
	}

	if len(rolls) == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result
}

// NewRollResult builds a RollResult from already rolled dice
func NewRollResult(rolls []int, sides, bonus int) *RollResult {
	return newRollResult(rolls, sides, bonus)
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}
