package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCacheGetOrCompute(t *testing.T) {
	rc := NewRenderCache(2)
	calls := 0
	compute := func() string {
		calls++
		return "rendered"
	}

	k := ComputeKey("intro", 80, false)
	assert.Equal(t, "rendered", rc.GetOrCompute(k, compute))
	assert.Equal(t, "rendered", rc.GetOrCompute(k, compute))
	assert.Equal(t, 1, calls)

	rc.GetOrCompute(ComputeKey("intro", 60, false), compute)
	rc.GetOrCompute(ComputeKey("intro", 40, false), compute)
	assert.Equal(t, 3, calls)
	assert.LessOrEqual(t, rc.Len(), 2)
}

func TestComputeKeyDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, ComputeKey("a", 80, false), ComputeKey("a", 80, true))
	assert.NotEqual(t, ComputeKey("a", 8, false), ComputeKey("a", 80, false))
	assert.NotEqual(t, ComputeKey("ab", "c"), ComputeKey("a", "bc"))
	assert.Equal(t, ComputeKey("a", 1, true), ComputeKey("a", 1, true))
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown("", 80, false))

	out := RenderMarkdown("Lookup by ISIN", 80, false)
	assert.Contains(t, out, "ISIN")
}
