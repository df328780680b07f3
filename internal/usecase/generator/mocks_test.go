package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usertables-generator/internal/adapter/resource"
	domain "usertables-generator/internal/domain/user"
)

// MockSink is a mock implementation of the Sink interface
type MockSink struct {
	mock.Mock
}

func (m *MockSink) InsertUser(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockIDGenerator is a mock implementation of the IDGenerator interface
type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

// MockGenerator is a mock implementation of the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var testCountries = []string{"Россия", "Беларусь", "Казахстан"}

// setupTestResources writes the given lists into an in-memory filesystem.
func setupTestResources(t testing.TB, lists map[string][]string) *resource.Reader {
	fs := afero.NewMemMapFs()
	for name, lines := range lists {
		require.NoError(t, afero.WriteFile(fs, "/res/"+name, []byte(strings.Join(lines, "\n")), 0o644))
	}
	return resource.NewReader(fs, "/res", zaptest.NewLogger(t))
}

func newTestIDGenerator() *MockIDGenerator {
	ids := new(MockIDGenerator)
	ids.On("Generate").Return("500100732259")
	return ids
}
