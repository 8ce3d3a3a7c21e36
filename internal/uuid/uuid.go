// Package uuid wraps ID generation so services can be tested with fixed IDs
package uuid

//go:generate mockgen -destination=mocks/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator with random version 4 UUIDs
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// IsValid reports whether id parses as a UUID
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Short returns the first block of a UUID for compact display
func Short(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
