package core

import (
	"fmt"
)

// Router maps the subcommands and components of one slash command to handlers
type Router struct {
	// Domain is the slash command name, also used as the custom ID prefix
	domain string

	handlers   map[string]Handler
	middleware []Middleware

	customIDBuilder *CustomIDBuilder
	pipeline        *Pipeline
}

// NewRouter creates a new domain router
func NewRouter(domain string, pipeline *Pipeline) *Router {
	return &Router{
		domain:          domain,
		handlers:        make(map[string]Handler),
		middleware:      make([]Middleware, 0),
		customIDBuilder: NewCustomIDBuilder(domain),
		pipeline:        pipeline,
	}
}

// Use adds middleware to routes registered afterwards
func (r *Router) Use(middleware ...Middleware) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Handle registers a handler for a routing pattern
func (r *Router) Handle(pattern string, handler Handler) *Router {
	wrapped := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		wrapped = r.middleware[i](wrapped)
	}

	r.handlers[pattern] = wrapped
	return r
}

// SubcommandFunc registers a handler for /<domain> <sub>
func (r *Router) SubcommandFunc(sub string, fn HandlerFunc) *Router {
	return r.Handle(fmt.Sprintf("cmd:%s:%s", r.domain, sub), fn)
}

// ComponentFunc registers a handler for components whose custom ID is <domain>:<action>
func (r *Router) ComponentFunc(action string, fn HandlerFunc) *Router {
	return r.Handle(fmt.Sprintf("component:%s", action), fn)
}

// Routes returns the registered patterns
func (r *Router) Routes() []string {
	routes := make([]string, 0, len(r.handlers))
	for pattern := range r.handlers {
		routes = append(routes, pattern)
	}
	return routes
}

// Build creates a single handler from all registered routes
func (r *Router) Build() Handler {
	return &routerHandler{
		domain:   r.domain,
		handlers: r.handlers,
	}
}

// Register registers this router with the pipeline
func (r *Router) Register() {
	if r.pipeline != nil {
		r.pipeline.Register(r.Build())
	}
}

// CustomIDs returns the CustomID builder for this router's domain
func (r *Router) CustomIDs() *CustomIDBuilder {
	return r.customIDBuilder
}

type routerHandler struct {
	domain   string
	handlers map[string]Handler
}

func (h *routerHandler) CanHandle(ctx *InteractionContext) bool {
	_, ok := h.handlers[h.pattern(ctx)]
	return ok
}

func (h *routerHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	handler, ok := h.handlers[h.pattern(ctx)]
	if !ok {
		return nil, NewNotFoundError("handler")
	}
	return handler.Handle(ctx)
}

// pattern builds the routing key of an interaction, empty when it belongs to another domain
func (h *routerHandler) pattern(ctx *InteractionContext) string {
	if ctx.IsCommand() {
		if ctx.GetCommandName() != h.domain {
			return ""
		}
		return fmt.Sprintf("cmd:%s:%s", h.domain, ctx.GetSubcommand())
	}

	if ctx.IsComponent() {
		customID, err := ParseCustomID(ctx.GetCustomID())
		if err != nil || customID.Domain != h.domain {
			return ""
		}
		return fmt.Sprintf("component:%s", customID.Action)
	}

	return ""
}
