package middleware

import (
	"log"
	"time"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
)

// Logf matches log.Printf
type Logf func(format string, args ...any)

// LoggingMiddleware logs each interaction and how long it took
func LoggingMiddleware(logf Logf) core.Middleware {
	if logf == nil {
		logf = log.Printf
	}

	return func(next core.Handler) core.Handler {
		return core.Wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			logf("[Discord] %s from user %s in guild %s", ctx.Route(), ctx.UserID, ctx.GuildID)

			start := time.Now()
			result, err := next.Handle(ctx)
			duration := time.Since(start)

			switch {
			case err != nil:
				logf("[Discord] %s failed after %v: %v", ctx.Route(), duration, err)
			case result == nil || result.Response == nil:
				logf("[Discord] %s completed in %v with no response", ctx.Route(), duration)
			default:
				logf("[Discord] %s completed in %v", ctx.Route(), duration)
			}

			return result, err
		})
	}
}
