package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundlookup/internal/config"
	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"
	"fundlookup/internal/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fundColumns = []string{"ISIN No", "Parent Fund", "Sub Fund Name"}

func fundsDataset(rows ...[]string) *dataset.Dataset {
	records := make([]dataset.Record, len(rows))
	for i, row := range rows {
		records[i] = dataset.NewRecord(fundColumns, row)
	}
	return dataset.New(fundColumns, records)
}

func setupRouter(t *testing.T, loader *dataset.Loader) http.Handler {
	t.Helper()
	return NewHandler(loader, OptionsFromConfig(config.DefaultConfig())).Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func acmeLoader() *dataset.Loader {
	return dataset.Preloaded(fundsDataset(
		[]string{"AB12CD3FG456", "Acme Umbrella", "Acme Growth"},
		[]string{"ZZ00ZZ0ZZ000", "Zed Holdings", ""},
	))
}

func TestForm_InitialRender(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="result empty"`)
	assert.Contains(t, body, "Result:")
	assert.Contains(t, body, `placeholder="AB12CD3FG456"`)
	assert.Contains(t, body, ">Calculate</button>")
	assert.NotContains(t, body, "No fund found")
}

func TestForm_Found(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/?q=AB12CD3FG456")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="result found"`)
	assert.Contains(t, body, "<p>Parent Fund: Acme Umbrella</p>")
	assert.Contains(t, body, "<p>Sub Fund Name: Acme Growth</p>")
	assert.Contains(t, body, "Current input: AB12CD3FG456")
}

func TestForm_BlankCellUsesPlaceholder(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/?q=ZZ00ZZ0ZZ000")

	assert.Contains(t, rec.Body.String(), "<p>Sub Fund Name: N/A</p>")
}

func TestForm_NotFound(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/?q=nope")

	body := rec.Body.String()
	assert.Contains(t, body, `class="result not-found"`)
	assert.Contains(t, body, "<p>No fund found</p>")
}

func TestForm_EscapesQuery(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/?q=%3Cscript%3E")

	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestForm_PendingLoaderBehavesLikeEmptyDataset(t *testing.T) {
	pending := dataset.NewLoader(nil) // never started
	rec := get(t, setupRouter(t, pending), "/?q=AB12CD3FG456")

	assert.Contains(t, rec.Body.String(), `class="result not-found"`)
}

func TestAPILookup(t *testing.T) {
	h := setupRouter(t, acmeLoader())

	tests := []struct {
		name   string
		target string
		want   lookup.Response
	}{
		{
			name:   "found",
			target: "/api/lookup?q=AB12CD3FG456",
			want: lookup.Response{Query: "AB12CD3FG456", State: "found", Fields: []lookup.Field{
				{Column: "Parent Fund", Value: "Acme Umbrella", Present: true},
				{Column: "Sub Fund Name", Value: "Acme Growth", Present: true},
			}},
		},
		{
			name:   "not found",
			target: "/api/lookup?q=ab12cd3fg456",
			want:   lookup.Response{Query: "ab12cd3fg456", State: "not_found", Message: "No fund found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got lookup.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPILookup_MissingQuery(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/api/lookup")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Error, "q")
}

func TestHealth(t *testing.T) {
	rec := get(t, setupRouter(t, acmeLoader()), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.UseCore(core)
	t.Cleanup(logging.Reset)

	get(t, setupRouter(t, acmeLoader()), "/healthz")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}
