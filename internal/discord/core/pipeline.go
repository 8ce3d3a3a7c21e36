package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Pipeline manages handler registration and execution
type Pipeline struct {
	handlers   []Handler
	middleware []Middleware

	// Error handler for errors that escape the middleware
	errorHandler ErrorHandler

	// newResponder builds the responder for each interaction
	newResponder ResponderFactory

	mu sync.RWMutex
}

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// ErrorHandler handles errors that occur during pipeline execution
type ErrorHandler func(ctx *InteractionContext, err error) *HandlerResult

// ResponderFactory creates the responder for one interaction
type ResponderFactory func(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder

// NewPipeline creates a new handler pipeline that answers through Discord
func NewPipeline() *Pipeline {
	return &Pipeline{
		handlers:     make([]Handler, 0),
		middleware:   make([]Middleware, 0),
		errorHandler: defaultErrorHandler,
		newResponder: func(s *discordgo.Session, i *discordgo.InteractionCreate) InteractionResponder {
			return NewDiscordResponder(s, i)
		},
	}
}

// Use adds middleware to the pipeline. Middleware applies to handlers registered afterwards.
func (p *Pipeline) Use(middleware ...Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.middleware = append(p.middleware, middleware...)
}

// Register adds handlers to the pipeline
func (p *Pipeline) Register(handlers ...Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range handlers {
		wrapped := h
		for i := len(p.middleware) - 1; i >= 0; i-- {
			wrapped = p.middleware[i](wrapped)
		}
		p.handlers = append(p.handlers, wrapped)
	}
}

// SetResponderFactory replaces how responders are built
func (p *Pipeline) SetResponderFactory(factory ResponderFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.newResponder = factory
}

// Execute runs the first handler that can handle the interaction and sends its response
func (p *Pipeline) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	interactionCtx := NewInteractionContext(ctx, s, i)

	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	errorHandler := p.errorHandler
	responder := p.newResponder(s, i)
	p.mu.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(interactionCtx) {
			continue
		}

		result, err := handler.Handle(interactionCtx)
		if err != nil {
			result = errorHandler(interactionCtx, err)
		}

		if result != nil && result.Response != nil {
			if err := sendResponse(responder, result); err != nil {
				return fmt.Errorf("failed to send response: %w", err)
			}
		}

		return nil
	}

	log.Printf("[Pipeline] No handler for %s", interactionCtx.Route())
	if !responder.HasResponded() {
		return responder.Respond(NewEphemeralResponse("I don't know how to handle that command."))
	}

	return nil
}

// sendResponse sends the first reply, or edits it when something already answered
func sendResponse(responder InteractionResponder, result *HandlerResult) error {
	if responder.HasResponded() {
		return responder.Edit(result.Response)
	}
	return responder.Respond(result.Response)
}

// HandlerCount returns the number of registered handlers
func (p *Pipeline) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.handlers)
}

// defaultErrorHandler shows a HandlerError's message and hides everything else
func defaultErrorHandler(ctx *InteractionContext, err error) *HandlerResult {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) && handlerErr.ShowToUser {
		return Result(NewEphemeralResponse(handlerErr.UserMessage))
	}

	log.Printf("[Pipeline] Unhandled error in %s: %v", ctx.Route(), err)
	return Result(NewEphemeralResponse("An error occurred while processing your request."))
}
