package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationError_UnwrapsToStageError(t *testing.T) {
	cause := NewTransportError("http://example.test", http.StatusNotFound, nil)
	err := NewGenerationError("api", fmt.Errorf("fetch: %w", cause))

	var transportErr *TransportError
	assert.True(t, stderrors.As(err, &transportErr))
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
	assert.Contains(t, err.Error(), "status code 404")
}

func TestGenerationError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  int
	}{
		{name: "transport", cause: NewTransportError("u", 0, stderrors.New("refused")), want: http.StatusBadGateway},
		{name: "parse", cause: NewParseError("", "not a JSON array", nil), want: http.StatusBadGateway},
		{name: "persistence", cause: NewPersistenceError("insert user", stderrors.New("locked")), want: http.StatusInternalServerError},
		{name: "plain", cause: stderrors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewGenerationError("api", tt.cause).HTTPStatus())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "request to http://x failed: refused",
		NewTransportError("http://x", 0, stderrors.New("refused")).Error())
	assert.Equal(t, "failed to parse response: fname: is required",
		NewParseError("fname", "is required", nil).Error())
	assert.Equal(t, "failed to insert user: locked",
		NewPersistenceError("insert user", stderrors.New("locked")).Error())
	assert.Equal(t, "failed to load resource countries.txt: missing",
		NewConstructionError("countries.txt", stderrors.New("missing")).Error())
	assert.Equal(t, "validation failed: count - must be positive",
		NewValidationError("count", "must be positive").Error())
}
