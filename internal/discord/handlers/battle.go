package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/builders"
	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	battledomain "github.com/KirkDiggler/battle-bot-discord/internal/domain/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/battle-bot-discord/internal/services/battle"
	"github.com/bwmarrin/discordgo"
)

// Component actions
const (
	ActionAttack = "attack"
	ActionSkip   = "skip"
)

// maxAttackButtons leaves room for the skip button in one row
const maxAttackButtons = 4

const battleOverBanner = "═══════════════\nThe battle is over\n═══════════════"

// BattleHandler serves the /battle command and its turn buttons
type BattleHandler struct {
	service battle.Service
	ids     *core.CustomIDBuilder
}

// BattleHandlerConfig holds configuration for the battle handler
type BattleHandlerConfig struct {
	Service battle.Service

	// CustomIDs builds button IDs. Defaults to the battle command domain.
	CustomIDs *core.CustomIDBuilder
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(cfg *BattleHandlerConfig) (*BattleHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("battle service is required")
	}

	ids := cfg.CustomIDs
	if ids == nil {
		ids = core.NewCustomIDBuilder(CommandName)
	}

	return &BattleHandler{
		service: cfg.Service,
		ids:     ids,
	}, nil
}

// RegisterRoutes wires every subcommand and button to the router
func (h *BattleHandler) RegisterRoutes(router *core.Router) {
	router.SubcommandFunc(SubcommandCreate, h.HandleCreate)
	router.SubcommandFunc(SubcommandAdd, h.HandleAdd)
	router.SubcommandFunc(SubcommandRemove, h.HandleRemove)
	router.SubcommandFunc(SubcommandStart, h.HandleStart)
	router.SubcommandFunc(SubcommandAttack, h.HandleAttack)
	router.SubcommandFunc(SubcommandSkip, h.HandleSkip)
	router.SubcommandFunc(SubcommandStatus, h.HandleStatus)
	router.SubcommandFunc(SubcommandOrder, h.HandleOrder)
	router.SubcommandFunc(SubcommandTargets, h.HandleTargets)
	router.SubcommandFunc(SubcommandEnd, h.HandleEnd)
	router.SubcommandFunc(SubcommandHelp, h.HandleHelp)

	router.ComponentFunc(ActionAttack, h.HandleAttackButton)
	router.ComponentFunc(ActionSkip, h.HandleSkip)
}

// HandleCreate adds a character before the battle starts
func (h *BattleHandler) HandleCreate(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.addCharacter(ctx, false)
}

// HandleAdd adds a character, joining a battle in progress as a reinforcement
func (h *BattleHandler) HandleAdd(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.addCharacter(ctx, true)
}

func (h *BattleHandler) addCharacter(ctx *core.InteractionContext, reinforcement bool) (*core.HandlerResult, error) {
	name := ctx.GetStringParam(OptionName)
	if name == "" {
		return nil, core.NewValidationError("Please give your character a name.")
	}
	charType := ctx.GetStringParam(OptionType)
	if charType == "" {
		return nil, core.NewValidationError("Please choose a character type.")
	}

	output, err := h.service.AddCharacter(ctx.Context, &battle.AddCharacterInput{
		Name:          name,
		Type:          charType,
		HP:            ctx.GetIntParam(OptionHP),
		MP:            ctx.GetIntParam(OptionMP),
		Mental:        ctx.GetIntParam(OptionMental),
		Speed:         ctx.GetIntParam(OptionSpeed),
		OwnerID:       ctx.UserID,
		Reinforcement: reinforcement,
	})
	if err != nil {
		return nil, err
	}

	response := core.NewEmbedResponse(CharacterEmbed(output.Character, output.Status != nil))
	if output.Status != nil {
		response.Embeds = append(response.Embeds, StatusEmbed(output.Status))
		response.WithContent(nextTurnLine(output.Status.Current))
	}

	return core.Result(response), nil
}

// HandleRemove takes a character off the roster
func (h *BattleHandler) HandleRemove(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	name := ctx.GetStringParam(OptionName)
	if name == "" {
		return nil, core.NewValidationError("Please name the character to remove.")
	}

	removed, err := h.service.RemoveCharacter(ctx.Context, name)
	if err != nil {
		return nil, err
	}

	response := core.NewResponse(fmt.Sprintf("✅ Removed %s", removed.DisplayName()))

	status, err := h.service.GetStatus(ctx.Context)
	if err != nil {
		return nil, err
	}
	if status.Active {
		response.Embeds = []*discordgo.MessageEmbed{StatusEmbed(status)}
	}

	return core.Result(response), nil
}

// HandleStart begins the battle
func (h *BattleHandler) HandleStart(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	output, err := h.service.StartBattle(ctx.Context)
	if err != nil {
		return nil, err
	}

	response := core.NewEmbedResponse(StartEmbed(output), StatusEmbed(output.Status))
	response.WithComponents(h.turnButtons(output.First, output.Status)...)

	return core.Result(response), nil
}

// HandleAttack attacks with the acting character. The target may be left out when only one enemy stands.
func (h *BattleHandler) HandleAttack(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.attack(ctx, ctx.GetStringParam(OptionTarget))
}

// HandleAttackButton attacks the enemy named by the button
func (h *BattleHandler) HandleAttackButton(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.attack(ctx, ctx.GetStringParam("component_target"))
}

func (h *BattleHandler) attack(ctx *core.InteractionContext, target string) (*core.HandlerResult, error) {
	output, err := h.service.Attack(ctx.Context, ctx.UserID, target)
	if err != nil {
		return nil, err
	}

	if output.Outcome != battledomain.ResultNone {
		response := core.NewEmbedResponse(VictoryEmbed(output.Outcome, output.Narrative, time.Now()))
		return core.Result(replaceClicked(ctx, response)), nil
	}

	response := core.NewEmbedResponse(NarrativeEmbed(output.Narrative), StatusEmbed(output.Status)).
		WithContent(nextTurnLine(output.Next)).
		WithComponents(h.turnButtons(output.Next, output.Status)...)

	return core.Result(replaceClicked(ctx, response)), nil
}

// HandleSkip passes the acting character's turn. Only its owner may do so.
func (h *BattleHandler) HandleSkip(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	output, err := h.service.SkipTurn(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, err
	}

	skipped := builders.NewEmbed().
		Title("⏩ Turn Skipped").
		Description(strings.Join(output.Narrative, "\n")).
		Color(builders.ColorWarning).
		Build()

	response := core.NewEmbedResponse(skipped, StatusEmbed(output.Status)).
		WithContent(nextTurnLine(output.Next)).
		WithComponents(h.turnButtons(output.Next, output.Status)...)

	return core.Result(replaceClicked(ctx, response)), nil
}

// HandleStatus shows both teams
func (h *BattleHandler) HandleStatus(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	status, err := h.service.GetStatus(ctx.Context)
	if err != nil {
		return nil, err
	}
	if status.Participants == 0 {
		return core.Result(core.NewEphemeralResponse("ℹ️ There is no battle yet. Use `/battle create` to add characters.")), nil
	}

	response := core.NewEmbedResponse(StatusEmbed(status))
	if status.Active {
		response.WithComponents(h.turnButtons(status.Current, status)...)
	}

	return core.Result(response), nil
}

// HandleOrder lists the acting order
func (h *BattleHandler) HandleOrder(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	order, err := h.service.GetTurnOrder(ctx.Context)
	if err != nil {
		return nil, err
	}

	return core.Result(core.NewEmbedResponse(TurnOrderEmbed(order))), nil
}

// HandleTargets lists the enemies the caller's character can attack
func (h *BattleHandler) HandleTargets(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	targets, err := h.service.GetTargets(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(targets.Enemies) == 0 {
		return core.Result(core.NewResponse("🎉 No enemies left!")), nil
	}

	response := core.NewEmbedResponse(TargetsEmbed(targets)).
		WithComponents(h.attackButtons(targets.Enemies, nil)...)

	return core.Result(response), nil
}

// HandleEnd discards the battle
func (h *BattleHandler) HandleEnd(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if err := h.service.EndBattle(ctx.Context); err != nil {
		return nil, err
	}

	return core.Result(core.NewResponse(battleOverBanner)), nil
}

// HandleHelp explains the commands and the type chart
func (h *BattleHandler) HandleHelp(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return core.Result(core.NewEmbedResponse(HelpEmbed()).AsEphemeral()), nil
}

// turnButtons offers the acting character an attack button per enemy and, when it has an owner, a skip button
func (h *BattleHandler) turnButtons(actor *character.Character, status *battle.Status) []discordgo.MessageComponent {
	if actor == nil || status == nil {
		return nil
	}

	enemies := status.VillainTeam
	if actor.Team == character.TeamVillain {
		enemies = status.HeroTeam
	}

	var skip *character.Character
	if actor.OwnerID != "" {
		skip = actor
	}

	return h.attackButtons(enemies, skip)
}

func (h *BattleHandler) attackButtons(enemies []*character.Character, skip *character.Character) []discordgo.MessageComponent {
	cb := builders.NewComponentBuilder(h.ids)
	for i, enemy := range enemies {
		if i == maxAttackButtons {
			break
		}
		cb.Button("⚔️ Attack "+enemy.Name, discordgo.DangerButton, ActionAttack, enemy.Name)
	}
	if skip != nil {
		cb.Button("⏩ Skip", discordgo.SecondaryButton, ActionSkip, "")
	}

	components, err := cb.Build()
	if err != nil {
		log.Printf("[BattleHandler] Left out turn buttons: %v", err)
	}
	return components
}

// replaceClicked makes a button press replace the message it was clicked on, so stale turn buttons disappear
func replaceClicked(ctx *core.InteractionContext, response *core.Response) *core.Response {
	if ctx.IsComponent() {
		return response.AsUpdate()
	}
	return response
}

func nextTurnLine(next *character.Character) string {
	if next == nil {
		return ""
	}
	return "**Next turn:** " + next.DisplayName()
}
