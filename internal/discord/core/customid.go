package core

import (
	"fmt"
	"strings"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100
)

// CustomID is a parsed component custom ID of the form domain:action[:target]
type CustomID struct {
	Domain string
	Action string

	// Target is everything after the action, so it may itself contain separators
	Target string
}

// Encode converts the CustomID to a string
func (c *CustomID) Encode() (string, error) {
	if c.Domain == "" || c.Action == "" {
		return "", fmt.Errorf("custom ID needs a domain and an action")
	}

	result := c.Domain + CustomIDSeparator + c.Action
	if c.Target != "" {
		result += CustomIDSeparator + c.Target
	}

	if len(result) > MaxCustomIDLength {
		return "", fmt.Errorf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}

	return result, nil
}

// ParseCustomID parses a custom ID string
func ParseCustomID(customID string) (*CustomID, error) {
	if customID == "" {
		return nil, fmt.Errorf("empty custom ID")
	}

	parts := strings.SplitN(customID, CustomIDSeparator, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid custom ID format: expected at least domain:action")
	}

	result := &CustomID{
		Domain: parts[0],
		Action: parts[1],
	}
	if len(parts) == 3 {
		result.Target = parts[2]
	}

	return result, nil
}

// CustomIDBuilder builds custom IDs for one domain
type CustomIDBuilder struct {
	domain string
}

// NewCustomIDBuilder creates a new builder for a domain
func NewCustomIDBuilder(domain string) *CustomIDBuilder {
	return &CustomIDBuilder{domain: domain}
}

// Button creates a button custom ID
func (b *CustomIDBuilder) Button(action, target string) (string, error) {
	id := &CustomID{Domain: b.domain, Action: action, Target: target}
	return id.Encode()
}
