package middleware

import (
	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a span per interaction and hands its context to the handler
func TracingMiddleware(tracer trace.Tracer) core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.Wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			spanCtx, span := tracer.Start(ctx.Context, "discord "+ctx.Route(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("discord.route", ctx.Route()),
					attribute.String("discord.user_id", ctx.UserID),
					attribute.String("discord.guild_id", ctx.GuildID),
				),
			)
			defer span.End()

			ctx.Context = spanCtx

			result, err := next.Handle(ctx)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return result, err
		})
	}
}
