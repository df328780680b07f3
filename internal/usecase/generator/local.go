package generator

import (
	"context"

	"go.uber.org/zap"

	domain "usertables-generator/internal/domain/user"
	"usertables-generator/pkg/date"
	pkgerrors "usertables-generator/pkg/errors"
	"usertables-generator/pkg/random"
)

// Resource names read by LocalGenerator in addition to CountriesResource.
const (
	MaleNamesResource         = "male_names.txt"
	FemaleNamesResource       = "female_names.txt"
	MaleSurnamesResource      = "male_surnames.txt"
	FemaleSurnamesResource    = "female_surnames.txt"
	MalePatronymicsResource   = "male_patronymics.txt"
	FemalePatronymicsResource = "female_patronymics.txt"
	RegionsResource           = "regions.txt"
	CitiesResource            = "cities.txt"
	StreetsResource           = "streets.txt"
)

// nameLists holds the gender-specific word lists.
type nameLists struct {
	names       []string
	surnames    []string
	patronymics []string
}

// LocalGenerator produces users from resource word lists without network access.
type LocalGenerator struct {
	male    nameLists
	female  nameLists
	regions []string
	cities  []string
	streets []string
	fields  *RandomFieldSource
	sink    Sink
	log     *zap.Logger
}

// NewLocalGenerator loads every word list from resources. A missing or empty
// list is a *errors.ConstructionError. sink may be nil.
func NewLocalGenerator(resources ResourceLoader, ids IDGenerator, sink Sink, log *zap.Logger) (*LocalGenerator, error) {
	lists := make(map[string][]string)
	for _, name := range []string{
		CountriesResource,
		MaleNamesResource, FemaleNamesResource,
		MaleSurnamesResource, FemaleSurnamesResource,
		MalePatronymicsResource, FemalePatronymicsResource,
		RegionsResource, CitiesResource, StreetsResource,
	} {
		lines, err := loadList(resources, name)
		if err != nil {
			log.Error("failed to load resource", zap.String("resource", name), zap.Error(err))
			return nil, err
		}
		lists[name] = lines
	}

	return &LocalGenerator{
		male: nameLists{
			names:       lists[MaleNamesResource],
			surnames:    lists[MaleSurnamesResource],
			patronymics: lists[MalePatronymicsResource],
		},
		female: nameLists{
			names:       lists[FemaleNamesResource],
			surnames:    lists[FemaleSurnamesResource],
			patronymics: lists[FemalePatronymicsResource],
		},
		regions: lists[RegionsResource],
		cities:  lists[CitiesResource],
		streets: lists[StreetsResource],
		fields:  NewRandomFieldSource(lists[CountriesResource], ids),
		sink:    sink,
		log:     log,
	}, nil
}

// GenerateUser builds one user from the word lists and optionally persists it.
// Only persistence can fail.
func (g *LocalGenerator) GenerateUser(ctx context.Context) (*domain.User, error) {
	gender := random.Pick([]domain.Gender{domain.GenderMale, domain.GenderFemale})
	lists := g.male
	if gender == domain.GenderFemale {
		lists = g.female
	}

	dob := date.Random()
	u := &domain.User{
		Name:        random.Pick(lists.names),
		Surname:     random.Pick(lists.surnames),
		Patronymic:  random.Pick(lists.patronymics),
		Gender:      gender,
		DateOfBirth: dob,
		Age:         dob.CountPassedYears(),
		Region:      random.Pick(g.regions),
		City:        random.Pick(g.cities),
		Street:      random.Pick(g.streets),
		House:       1 + random.Intn(domain.MaxHouse),
	}
	g.fields.Enrich(u)

	if err := persist(ctx, g.sink, u, g.log); err != nil {
		return nil, pkgerrors.NewGenerationError(SourceLocal, err)
	}

	g.log.Debug("user generated",
		zap.String("source", SourceLocal),
		zap.String("surname", u.Surname),
		zap.Int64("id", u.ID),
	)
	return u, nil
}
