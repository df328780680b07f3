package generator

import (
	"context"

	domain "usertables-generator/internal/domain/user"
)

// Generator sources.
const (
	SourceAPI   = "api"
	SourceLocal = "local"
)

// Generator produces one synthetic user per call.
type Generator interface {
	// GenerateUser returns a finished record or a *errors.GenerationError.
	GenerateUser(ctx context.Context) (*domain.User, error)
}

// Sink persists generated users. A nil Sink disables persistence.
type Sink interface {
	InsertUser(ctx context.Context, u *domain.User) error
}

// IDGenerator produces tax identifiers.
type IDGenerator interface {
	Generate() string
}

// ResourceLoader reads newline-delimited resource lists by name.
type ResourceLoader interface {
	ReadLines(name string) ([]string, error)
}

// Fetcher retrieves one raw API response body.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
	Endpoint() string
}

// Parser turns a raw API response body into a user without local fields.
type Parser interface {
	Parse(body string) (*domain.User, error)
}
