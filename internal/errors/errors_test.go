package errors_test

import (
	"errors"
	"testing"

	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.InvalidTarget("pick a target").WithMeta("candidates", []string{"Orc", "Goblin"})

	wrapped := dnderr.Wrap(base, "attack rejected")

	require.NotNil(t, wrapped)
	assert.Equal(t, dnderr.CodeInvalidTarget, wrapped.Code)
	assert.Equal(t, []string{"Orc", "Goblin"}, dnderr.GetMeta(wrapped)["candidates"])
	assert.Equal(t, "attack rejected: pick a target", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrap_ForeignErrorIsUnknown(t *testing.T) {
	wrapped := dnderr.Wrap(errors.New("boom"), "failed")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestCodeCheckers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", dnderr.NotFoundf("character '%s' not found", "Arthur"), dnderr.IsNotFound},
		{"invalid argument", dnderr.InvalidArgument("bad type"), dnderr.IsInvalidArgument},
		{"already exists", dnderr.AlreadyExistsf("name %s taken", "Arthur"), dnderr.IsAlreadyExists},
		{"failed precondition", dnderr.FailedPrecondition("battle not active"), dnderr.IsFailedPrecondition},
		{"invalid target", dnderr.InvalidTarget("same team"), dnderr.IsInvalidTarget},
		{"permission denied", dnderr.PermissionDenied("not your turn"), dnderr.IsPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(dnderr.Wrap(tt.err, "wrapped")))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}
