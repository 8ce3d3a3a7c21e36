package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/battle-bot-discord/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	a := gen.New()
	b := gen.New()

	assert.True(t, uuid.IsValid(a))
	assert.NotEqual(t, a, b)
	assert.Len(t, uuid.Short(a), 8)
	assert.Equal(t, "abc", uuid.Short("abc"))
	assert.False(t, uuid.IsValid("not-a-uuid"))
}
