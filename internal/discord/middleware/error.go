package middleware

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	dnderr "github.com/KirkDiggler/battle-bot-discord/internal/errors"
)

// ErrorLogger logs errors
type ErrorLogger func(ctx *core.InteractionContext, err error)

// ErrorMiddleware turns handler errors into ephemeral replies
func ErrorMiddleware(logger ErrorLogger) core.Middleware {
	if logger == nil {
		logger = defaultErrorLogger
	}

	return func(next core.Handler) core.Handler {
		return core.Wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			handlerErr := ToHandlerError(err)
			if handlerErr.Code >= core.ErrorCodeInternal {
				logger(ctx, err)
			}

			return core.Result(core.NewEphemeralResponse(handlerErr.UserMessage)), nil
		})
	}
}

// ToHandlerError maps a battle error code to a status and a message the player can act on
func ToHandlerError(err error) *core.HandlerError {
	var handlerErr *core.HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr
	}

	var battleErr *dnderr.Error
	if !errors.As(err, &battleErr) {
		return core.NewInternalError(err)
	}

	switch battleErr.Code {
	case dnderr.CodeInvalidArgument:
		return core.NewHandlerError(err, "⚠️ "+withChoices(battleErr, "valid_types", "Valid types"), core.ErrorCodeBadRequest)
	case dnderr.CodeAlreadyExists:
		return core.NewHandlerError(err, "⚠️ "+battleErr.Message, core.ErrorCodeConflict)
	case dnderr.CodeNotFound:
		return core.NewHandlerError(err, "⚠️ "+battleErr.Message, core.ErrorCodeNotFound)
	case dnderr.CodeFailedPrecondition:
		return core.NewHandlerError(err, "⛔ "+battleErr.Message, core.ErrorCodePreconditionFailed)
	case dnderr.CodeInvalidTarget:
		return core.NewHandlerError(err, "🎯 "+withChoices(battleErr, "candidates", "Targets"), core.ErrorCodeUnprocessable)
	case dnderr.CodePermissionDenied:
		return core.NewHandlerError(err, "⏳ "+battleErr.Message, core.ErrorCodeForbidden)
	default:
		return core.NewInternalError(err)
	}
}

// withChoices appends the options stored under key in the error metadata
func withChoices(err *dnderr.Error, key, label string) string {
	choices, ok := err.Meta[key].([]string)
	if !ok || len(choices) == 0 {
		return err.Message
	}
	return fmt.Sprintf("%s\n%s: %s", err.Message, label, strings.Join(choices, ", "))
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.Wrap(next, func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Discord] Panic recovered in %s: %v", ctx.Route(), r)

					result = core.Result(core.NewEphemeralResponse("An unexpected error occurred. Please try again later."))
					err = nil
				}
			}()

			return next.Handle(ctx)
		})
	}
}

func defaultErrorLogger(ctx *core.InteractionContext, err error) {
	log.Printf("[Discord] Error in %s (user %s, guild %s): %v", ctx.Route(), ctx.UserID, ctx.GuildID, err)
}
