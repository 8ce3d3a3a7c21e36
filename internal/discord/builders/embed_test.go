package builders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		limit   int
		filled  int
	}{
		{name: "full", current: 100, limit: 100, filled: 10},
		{name: "empty", current: 0, limit: 100, filled: 0},
		{name: "rounds down", current: 34, limit: 100, filled: 3},
		{name: "rounds up", current: 36, limit: 100, filled: 4},
		{name: "half rounds to even", current: 25, limit: 100, filled: 2},
		{name: "no maximum", current: 5, limit: 0, filled: 0},
		{name: "overfull is capped", current: 150, limit: 100, filled: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := StatusBar(tt.current, tt.limit)

			assert.Equal(t, tt.filled, strings.Count(bar, "🟥"))
			assert.Equal(t, StatusBarCells-tt.filled, strings.Count(bar, "⬛"))
		})
	}
}

func TestEmbedBuilder(t *testing.T) {
	embed := NewEmbed().
		Title("Status").
		Description("desc").
		Color(ColorInfo).
		Field("Heroes", "Arthur", false).
		Field("Villains", "", false).
		Footer("Current turn: Arthur").
		Build()

	assert.Equal(t, "Status", embed.Title)
	assert.Equal(t, "desc", embed.Description)
	assert.Equal(t, ColorInfo, embed.Color)
	assert.Len(t, embed.Fields, 1, "empty fields are dropped")
	assert.Equal(t, "Current turn: Arthur", embed.Footer.Text)

	success := SuccessEmbed("Added", "Arthur joined").Build()
	assert.Equal(t, "✅ Added", success.Title)
	assert.Equal(t, ColorSuccess, success.Color)
}
