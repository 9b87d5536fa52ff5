package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/commitment/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected environment.Environment
	}{
		{input: "production", expected: environment.Production},
		{input: "prod", expected: environment.Production},
		{input: " PRODUCTION ", expected: environment.Production},
		{input: "staging", expected: environment.Staging},
		{input: "stage", expected: environment.Staging},
		{input: "development", expected: environment.Development},
		{input: "dev", expected: environment.Development},
		{input: "", expected: environment.Development},
		{input: "qa", expected: environment.Development},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, environment.Parse(tt.input))
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))
	assert.True(t, environment.IsProduction(ctx))

	assert.Equal(t, environment.Environment(""), environment.FromContext(context.Background()))
	assert.False(t, environment.IsProduction(context.Background()))
	//nolint:staticcheck // nil context is tolerated
	assert.Equal(t, environment.Environment(""), environment.FromContext(nil))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got environment.Environment
	h := environment.Middleware(environment.Staging)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, environment.Staging, got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := environment.LoggerExtractor()

	attr, ok := extract(environment.WithContext(context.Background(), environment.Production))
	assert.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "production", attr.Value.String())

	_, ok = extract(context.Background())
	assert.False(t, ok)
}
