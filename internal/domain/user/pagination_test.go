package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int64
		wantPages int64
	}{
		{name: "empty", total: 0, limit: 10, wantPages: 0},
		{name: "exact", total: 20, limit: 10, wantPages: 2},
		{name: "partial", total: 21, limit: 10, wantPages: 3},
		{name: "zero limit", total: 21, limit: 0, wantPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, 1, tt.limit)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
