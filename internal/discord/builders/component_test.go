package builders

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentBuilder_WrapsRows(t *testing.T) {
	cb := NewComponentBuilder(core.NewCustomIDBuilder("battle"))
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		cb.Button("Attack "+name, discordgo.DangerButton, "attack", name)
	}

	rows, err := cb.Build()

	require.NoError(t, err)
	require.Len(t, rows, 2)
	first := rows[0].(discordgo.ActionsRow)
	assert.Len(t, first.Components, MaxButtonsPerRow)
	assert.Equal(t, "battle:attack:a", first.Components[0].(discordgo.Button).CustomID)
	assert.Len(t, rows[1].(discordgo.ActionsRow).Components, 1)
}

func TestComponentBuilder_LeavesOutBadButtons(t *testing.T) {
	cb := NewComponentBuilder(core.NewCustomIDBuilder("battle")).
		Button("Attack Orc", discordgo.DangerButton, "attack", "Orc").
		Button("too long", discordgo.DangerButton, "attack", strings.Repeat("ม", 30)).
		Button("Skip", discordgo.SecondaryButton, "skip", "")

	rows, err := cb.Build()

	assert.ErrorContains(t, err, "custom ID exceeds maximum length")
	require.Len(t, rows, 1)
	row := rows[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 2)
	assert.Equal(t, "battle:attack:Orc", row.Components[0].(discordgo.Button).CustomID)
	assert.Equal(t, "battle:skip", row.Components[1].(discordgo.Button).CustomID)
}

func TestComponentBuilder_TruncatesLabels(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "short", label: "Attack Orc", want: "Attack Orc"},
		{name: "at limit", label: strings.Repeat("a", MaxLabelLength), want: strings.Repeat("a", MaxLabelLength)},
		{name: "over limit", label: strings.Repeat("a", 85), want: strings.Repeat("a", MaxLabelLength-1) + "…"},
		{name: "multibyte", label: strings.Repeat("ม", 90), want: strings.Repeat("ม", MaxLabelLength-1) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := NewComponentBuilder(core.NewCustomIDBuilder("battle")).
				Button(tt.label, discordgo.DangerButton, "attack", "Orc").
				Build()

			require.NoError(t, err)
			label := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button).Label
			assert.Equal(t, tt.want, label)
			assert.LessOrEqual(t, utf8.RuneCountInString(label), MaxLabelLength)
		})
	}
}
