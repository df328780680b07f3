package generator

import (
	"context"

	"go.uber.org/zap"

	domain "usertables-generator/internal/domain/user"
	pkgerrors "usertables-generator/pkg/errors"
)

// APIGenerator produces users by sampling the random-user API once per call
// and filling in local fields.
type APIGenerator struct {
	fetcher Fetcher            // API client owned by this generator
	parser  Parser             // Response parser owned by this generator
	fields  *RandomFieldSource // Source of locally generated fields
	sink    Sink               // Optional store; nil disables persistence
	log     *zap.Logger        // Logger for structured logging
}

// NewAPIGenerator creates an APIGenerator. The country list is read from
// resources now; failing to read it is a *errors.ConstructionError. sink may
// be nil.
func NewAPIGenerator(fetcher Fetcher, parser Parser, resources ResourceLoader, ids IDGenerator, sink Sink, log *zap.Logger) (*APIGenerator, error) {
	countries, err := loadList(resources, CountriesResource)
	if err != nil {
		log.Error("failed to load countries", zap.Error(err))
		return nil, err
	}

	if sink == nil {
		log.Warn("api generator created without persistence")
	}

	return &APIGenerator{
		fetcher: fetcher,
		parser:  parser,
		fields:  NewRandomFieldSource(countries, ids),
		sink:    sink,
		log:     log,
	}, nil
}

// GenerateUser fetches, parses, enriches and optionally persists one user.
// Any failure aborts the call with a *errors.GenerationError.
func (g *APIGenerator) GenerateUser(ctx context.Context) (*domain.User, error) {
	body, err := g.fetcher.Fetch(ctx)
	if err != nil {
		g.log.Warn("failed to fetch user from api", zap.String("endpoint", g.fetcher.Endpoint()), zap.Error(err))
		return nil, pkgerrors.NewGenerationError(SourceAPI, err)
	}

	u, err := g.parser.Parse(body)
	if err != nil {
		g.log.Warn("failed to parse api response", zap.String("endpoint", g.fetcher.Endpoint()), zap.Error(err))
		return nil, pkgerrors.NewGenerationError(SourceAPI, err)
	}

	g.fields.Enrich(u)

	if err := persist(ctx, g.sink, u, g.log); err != nil {
		return nil, pkgerrors.NewGenerationError(SourceAPI, err)
	}

	g.log.Debug("user generated",
		zap.String("source", SourceAPI),
		zap.String("surname", u.Surname),
		zap.Int64("id", u.ID),
	)
	return u, nil
}
