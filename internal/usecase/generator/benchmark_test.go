package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"usertables-generator/internal/adapter/randomuser"
	"usertables-generator/pkg/inn"
)

func BenchmarkLocalGenerator_GenerateUser(b *testing.B) {
	g, err := NewLocalGenerator(setupTestResources(b, testLocalLists()), inn.NewGenerator(), nil, zap.NewNop())
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.GenerateUser(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAPIGenerator_GenerateUser(b *testing.B) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"fname":"Иван","lname":"Петров","gender":"male","date":479001600}]`))
	}))
	defer srv.Close()

	log := zap.NewNop()
	resources := setupTestResources(b, map[string][]string{CountriesResource: testCountries})
	g, err := NewAPIGenerator(randomuser.NewClient(srv.Client(), srv.URL, log), randomuser.NewParser(), resources, inn.NewGenerator(), nil, log)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.GenerateUser(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
