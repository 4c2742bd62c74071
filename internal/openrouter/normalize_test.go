package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestNormalize(t *testing.T) {
	models := []Model{
		{
			ID:            "openai/gpt-4o",
			Name:          "GPT-4o",
			Pricing:       Pricing{Prompt: "0.000005", Completion: "0.000015"},
			ContextLength: int64p(128000),
			UpdatedAt:     "2026-01-10T00:00:00Z",
		},
	}

	records, err := Normalize(models)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "openai/gpt-4o", r.ID)
	assert.Equal(t, "GPT-4o", r.Name)
	assert.Equal(t, "openai", r.Provider)
	assert.Equal(t, "0.000005", r.InputPrice)
	assert.Equal(t, "0.000015", r.OutputPrice)
	require.NotNil(t, r.ContextLength)
	assert.Equal(t, int64(128000), *r.ContextLength)
	assert.Equal(t, "2026-01-10T00:00:00Z", r.UpdatedAt)
}

func TestNormalizeDefaults(t *testing.T) {
	records, err := Normalize([]Model{{ID: "solo-model"}})
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "unknown", r.Provider)
	assert.Equal(t, "0", r.InputPrice)
	assert.Equal(t, "0", r.OutputPrice)
	assert.Nil(t, r.ContextLength)
	assert.Equal(t, "", r.UpdatedAt)
}

func TestNormalizeContextFallsBackToMaxTokens(t *testing.T) {
	records, err := Normalize([]Model{{ID: "a/b", MaxTokens: int64p(4096)}})
	require.NoError(t, err)
	require.NotNil(t, records[0].ContextLength)
	assert.Equal(t, int64(4096), *records[0].ContextLength)
}

func TestNormalizeContextPrefersContextLength(t *testing.T) {
	records, err := Normalize([]Model{{
		ID:            "a/b",
		ContextLength: int64p(32000),
		MaxTokens:     int64p(4096),
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(32000), *records[0].ContextLength)
}

func TestNormalizeMissingID(t *testing.T) {
	_, err := Normalize([]Model{
		{ID: "a/b"},
		{Name: "nameless"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestNormalizeBadPrice(t *testing.T) {
	_, err := Normalize([]Model{{
		ID:      "a/b",
		Pricing: Pricing{Prompt: "free", Completion: "0"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a/b")
}

func TestNormalizePreservesOrder(t *testing.T) {
	models := []Model{{ID: "z/last"}, {ID: "a/first"}, {ID: "m/mid"}}
	records, err := Normalize(models)
	require.NoError(t, err)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"z/last", "a/first", "m/mid"}, ids)
}

func TestProviderOf(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"openai/gpt-4o", "openai"},
		{"meta-llama/llama-3-8b", "meta-llama"},
		{"noslash", "unknown"},
		{"/leading", ""},
		{"deep/nested/slug", "deep"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, providerOf(tt.id))
		})
	}
}
