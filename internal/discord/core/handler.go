package core

import (
	"github.com/bwmarrin/discordgo"
)

// Handler defines the interface for all interaction handlers
type Handler interface {
	// CanHandle determines if this handler should process the interaction
	CanHandle(ctx *InteractionContext) bool

	// Handle processes the interaction and returns a result
	Handle(ctx *InteractionContext) (*HandlerResult, error)
}

// HandlerFunc allows functions to implement the Handler interface
type HandlerFunc func(ctx *InteractionContext) (*HandlerResult, error)

// CanHandle for HandlerFunc always returns true
func (f HandlerFunc) CanHandle(ctx *InteractionContext) bool {
	return true
}

// Handle calls the function
func (f HandlerFunc) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	return f(ctx)
}

// wrappedHandler keeps the inner handler's CanHandle when middleware replaces Handle
type wrappedHandler struct {
	inner  Handler
	handle HandlerFunc
}

func (w *wrappedHandler) CanHandle(ctx *InteractionContext) bool {
	return w.inner.CanHandle(ctx)
}

func (w *wrappedHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	return w.handle(ctx)
}

// Wrap builds a Handler that routes like inner but runs fn
func Wrap(inner Handler, fn HandlerFunc) Handler {
	return &wrappedHandler{inner: inner, handle: fn}
}

// HandlerResult contains the response and metadata from a handler
type HandlerResult struct {
	// Response to send to Discord
	Response *Response
}

// Response represents a Discord-agnostic response
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent

	// Whether this response should be ephemeral (only visible to the user)
	Ephemeral bool

	// Whether to replace the message a component was clicked on
	Update bool

	AllowedMentions *discordgo.MessageAllowedMentions
}

// NewResponse creates a new response with the given content
func NewResponse(content string) *Response {
	return &Response{
		Content: content,
	}
}

// NewEphemeralResponse creates a new ephemeral response
func NewEphemeralResponse(content string) *Response {
	return &Response{
		Content:   content,
		Ephemeral: true,
	}
}

// NewEmbedResponse creates a response with one or more embeds
func NewEmbedResponse(embeds ...*discordgo.MessageEmbed) *Response {
	return &Response{
		Embeds: embeds,
	}
}

// WithComponents adds components to the response
func (r *Response) WithComponents(components ...discordgo.MessageComponent) *Response {
	r.Components = components
	return r
}

// WithContent sets the text shown above the embeds
func (r *Response) WithContent(content string) *Response {
	r.Content = content
	return r
}

// AsEphemeral sets the response to be ephemeral
func (r *Response) AsEphemeral() *Response {
	r.Ephemeral = true
	return r
}

// AsUpdate sets the response to update the original message
func (r *Response) AsUpdate() *Response {
	r.Update = true
	return r
}

// Result wraps a response in a HandlerResult
func Result(response *Response) *HandlerResult {
	return &HandlerResult{Response: response}
}
