package generator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usertables-generator/internal/adapter/randomuser"
	domain "usertables-generator/internal/domain/user"
	pkgerrors "usertables-generator/pkg/errors"
)

const testAPIBody = `[{"fname":"Иван","lname":"Петров","patronymic":"Сергеевич","gender":"m",` +
	`"date":479001600,"region":"Московская область","city":"Химки","street":"Ленина","house":12}]`

func setupTestAPI(t *testing.T, status int, body string) *randomuser.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return randomuser.NewClient(srv.Client(), srv.URL, zaptest.NewLogger(t))
}

func setupTestAPIGenerator(t *testing.T, status int, body string, sink Sink) *APIGenerator {
	resources := setupTestResources(t, map[string][]string{CountriesResource: testCountries})

	g, err := NewAPIGenerator(
		setupTestAPI(t, status, body),
		randomuser.NewParser(),
		resources,
		newTestIDGenerator(),
		sink,
		zaptest.NewLogger(t),
	)
	require.NoError(t, err)
	return g
}

func TestNewAPIGenerator_MissingCountries(t *testing.T) {
	resources := setupTestResources(t, nil)

	g, err := NewAPIGenerator(setupTestAPI(t, http.StatusOK, testAPIBody), randomuser.NewParser(),
		resources, newTestIDGenerator(), nil, zaptest.NewLogger(t))

	assert.Nil(t, g)
	var constructionErr *pkgerrors.ConstructionError
	require.True(t, errors.As(err, &constructionErr))
	assert.Equal(t, CountriesResource, constructionErr.Resource)
}

func TestNewAPIGenerator_EmptyCountries(t *testing.T) {
	resources := setupTestResources(t, map[string][]string{CountriesResource: {"", "  "}})

	_, err := NewAPIGenerator(setupTestAPI(t, http.StatusOK, testAPIBody), randomuser.NewParser(),
		resources, newTestIDGenerator(), nil, zaptest.NewLogger(t))

	var constructionErr *pkgerrors.ConstructionError
	assert.True(t, errors.As(err, &constructionErr))
}

func TestAPIGenerator_GenerateUser_WithoutSink(t *testing.T) {
	g := setupTestAPIGenerator(t, http.StatusOK, testAPIBody, nil)

	for i := 0; i < 50; i++ {
		u, err := g.GenerateUser(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Иван", u.Name)
		assert.Equal(t, "Петров", u.Surname)
		assert.Equal(t, domain.GenderMale, u.Gender)
		assert.Equal(t, "07-03-1985", u.DateOfBirth.String())
		assert.Equal(t, u.DateOfBirth.CountPassedYears(), u.Age)

		assert.GreaterOrEqual(t, u.PostalCode, domain.MinPostalCode)
		assert.Less(t, u.PostalCode, domain.MaxPostalCode)
		assert.GreaterOrEqual(t, u.Apartment, 1)
		assert.LessOrEqual(t, u.Apartment, domain.MaxApartment)
		assert.Contains(t, testCountries, u.Country)
		assert.Equal(t, "500100732259", u.TaxID)
		assert.Zero(t, u.ID)
	}
}

func TestAPIGenerator_GenerateUser_Persists(t *testing.T) {
	sink := new(MockSink)
	sink.On("InsertUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Surname == "Петров" && u.TaxID == "500100732259" && u.Country != ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil).Once()

	g := setupTestAPIGenerator(t, http.StatusOK, testAPIBody, sink)

	u, err := g.GenerateUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)

	sink.AssertExpectations(t)
}

func TestAPIGenerator_GenerateUser_NotFound(t *testing.T) {
	sink := new(MockSink)
	g := setupTestAPIGenerator(t, http.StatusNotFound, "not found", sink)

	u, err := g.GenerateUser(context.Background())
	assert.Nil(t, u)

	var genErr *pkgerrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, SourceAPI, genErr.Source)

	var transportErr *pkgerrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)

	sink.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
}

func TestAPIGenerator_GenerateUser_ParseError(t *testing.T) {
	sink := new(MockSink)
	g := setupTestAPIGenerator(t, http.StatusOK, `{"fname":"Иван"}`, sink)

	_, err := g.GenerateUser(context.Background())

	var genErr *pkgerrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	var parseErr *pkgerrors.ParseError
	assert.True(t, errors.As(err, &parseErr))

	sink.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
}

func TestAPIGenerator_GenerateUser_PersistenceError(t *testing.T) {
	sink := new(MockSink)
	sink.On("InsertUser", mock.Anything, mock.Anything).Return(errors.New("UNIQUE constraint failed")).Once()

	g := setupTestAPIGenerator(t, http.StatusOK, testAPIBody, sink)

	u, err := g.GenerateUser(context.Background())
	assert.Nil(t, u)

	var genErr *pkgerrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	var persistenceErr *pkgerrors.PersistenceError
	require.True(t, errors.As(err, &persistenceErr))
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	sink.AssertExpectations(t)
}

func TestAPIGenerator_GenerateUser_OneRequestPerCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	resources := setupTestResources(t, map[string][]string{CountriesResource: testCountries})
	g, err := NewAPIGenerator(randomuser.NewClient(srv.Client(), srv.URL, zaptest.NewLogger(t)),
		randomuser.NewParser(), resources, newTestIDGenerator(), nil, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = g.GenerateUser(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "failed calls must not be retried")
}
