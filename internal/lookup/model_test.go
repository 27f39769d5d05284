package lookup

import (
	"testing"

	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestModel_EvaluateLogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.UseCore(core)
	t.Cleanup(logging.Reset)

	ds := fundsDataset([]string{"AB12CD3FG456", "Acme Umbrella", "Acme Growth"})
	m := NewModel(DefaultProjection()).Loaded(dataset.Result{Dataset: ds})

	m.WithQuery("AB12CD3FG456").Evaluate()
	m.WithQuery("missing").Evaluate()

	entries := logs.FilterMessage("evaluate").All()
	require.Len(t, entries, 2)

	hit := entries[0].ContextMap()
	assert.Equal(t, "AB12CD3FG456", hit["query"])
	assert.Equal(t, "found", hit["outcome"])
	assert.NotEmpty(t, hit["evaluation_id"])
	assert.Equal(t, map[string]string{"Parent Fund": "Acme Umbrella", "Sub Fund Name": "Acme Growth"}, hit["matched"])

	miss := entries[1].ContextMap()
	assert.Equal(t, "not_found", miss["outcome"])
	_, hasMatched := miss["matched"]
	assert.False(t, hasMatched)
}
