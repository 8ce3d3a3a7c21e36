package builders

import (
	"errors"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	"github.com/bwmarrin/discordgo"
)

// Discord limits for buttons
const (
	MaxButtonsPerRow = 5
	MaxLabelLength   = 80
)

// ComponentBuilder builds rows of buttons whose custom IDs belong to one domain
type ComponentBuilder struct {
	rows       []discordgo.MessageComponent
	currentRow []discordgo.MessageComponent
	ids        *core.CustomIDBuilder
	errs       []error
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(ids *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		rows:       make([]discordgo.MessageComponent, 0),
		currentRow: make([]discordgo.MessageComponent, 0, MaxButtonsPerRow),
		ids:        ids,
	}
}

// Button adds a button to the current row. A button whose custom ID cannot be encoded is left out
// and its error is reported by Build. Long labels are cut to MaxLabelLength.
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action, target string) *ComponentBuilder {
	customID, err := b.ids.Button(action, target)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}

	b.addComponent(discordgo.Button{
		Label:    truncateLabel(label),
		Style:    style,
		CustomID: customID,
	})
	return b
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, MaxButtonsPerRow)
	}
	return b
}

// Build returns the rows built so far along with the errors of any buttons left out
func (b *ComponentBuilder) Build() ([]discordgo.MessageComponent, error) {
	b.NewRow()
	return b.rows, errors.Join(b.errs...)
}

func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= MaxLabelLength {
		return label
	}
	return string(runes[:MaxLabelLength-1]) + "…"
}

func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= MaxButtonsPerRow {
		b.NewRow()
	}
	b.currentRow = append(b.currentRow, component)
}
