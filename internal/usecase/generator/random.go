package generator

import (
	"errors"

	domain "usertables-generator/internal/domain/user"
	pkgerrors "usertables-generator/pkg/errors"
	"usertables-generator/pkg/random"
)

// CountriesResource is the resource holding one country name per line.
const CountriesResource = "countries.txt"

// RandomFieldSource fills in the fields that record sources do not provide.
type RandomFieldSource struct {
	countries []string    // Read-only after construction
	ids       IDGenerator // Tax identifier collaborator
}

// NewRandomFieldSource creates a RandomFieldSource. countries must not be empty.
func NewRandomFieldSource(countries []string, ids IDGenerator) *RandomFieldSource {
	return &RandomFieldSource{countries: countries, ids: ids}
}

// PostalCode returns a postal code in [MinPostalCode, MaxPostalCode).
func (s *RandomFieldSource) PostalCode() int {
	return random.Between(domain.MinPostalCode, domain.MaxPostalCode)
}

// Apartment returns an apartment number in [1, MaxApartment].
func (s *RandomFieldSource) Apartment() int {
	return 1 + random.Intn(domain.MaxApartment)
}

// Country returns a country from the loaded list.
func (s *RandomFieldSource) Country() string {
	return random.Pick(s.countries)
}

// TaxID returns a new tax identifier.
func (s *RandomFieldSource) TaxID() string {
	return s.ids.Generate()
}

// Enrich overwrites the postal code, apartment, country and tax identifier of u.
func (s *RandomFieldSource) Enrich(u *domain.User) {
	u.PostalCode = s.PostalCode()
	u.Apartment = s.Apartment()
	u.Country = s.Country()
	u.TaxID = s.TaxID()
}

// loadList reads a required, non-empty resource list.
func loadList(resources ResourceLoader, name string) ([]string, error) {
	lines, err := resources.ReadLines(name)
	if err != nil {
		return nil, pkgerrors.NewConstructionError(name, err)
	}
	if len(lines) == 0 {
		return nil, pkgerrors.NewConstructionError(name, errors.New("resource is empty"))
	}
	return lines, nil
}
