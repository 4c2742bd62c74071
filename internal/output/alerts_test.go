package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orwatch/internal/model"
)

func int64p(v int64) *int64 { return &v }

func TestChangeLine(t *testing.T) {
	tests := []struct {
		name   string
		change model.Change
		want   string
	}{
		{
			"new model",
			model.Change{Kind: model.ChangeNewModel, ModelID: "a/b", ModelName: "Model B"},
			"🆕 **Model B** added",
		},
		{
			"went free",
			model.Change{Kind: model.ChangeWentFree, ModelID: "a/b", ModelName: "Model B"},
			"🎉 **Model B** went free!",
		},
		{
			"price dropped",
			model.Change{Kind: model.ChangePriceDropped, ModelID: "a/b", ModelName: "Model B", Old: "2.0000", New: "1.0000"},
			"💸 **Model B** price dropped ($2.0000 → $1.0000)",
		},
		{
			"input price changed",
			model.Change{Kind: model.ChangePriceChanged, ModelID: "a/b", ModelName: "Model B", Field: model.FieldInput, Old: "0.001", New: "0.002"},
			"🔁 **Model B** input price changed ($0.001 → $0.002)",
		},
		{
			"output price changed",
			model.Change{Kind: model.ChangePriceChanged, ModelID: "a/b", ModelName: "Model B", Field: model.FieldOutput, Old: "0.002", New: "0.001"},
			"🔁 **Model B** output price changed ($0.002 → $0.001)",
		},
		{
			"nameless model falls back to id",
			model.Change{Kind: model.ChangeNewModel, ModelID: "mystery/model"},
			"🆕 **mystery/model** added",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangeLine(tt.change))
		})
	}
}

func TestUpdatesMessage(t *testing.T) {
	changes := []model.Change{
		{Kind: model.ChangeNewModel, ModelID: "a/b", ModelName: "B"},
		{Kind: model.ChangeWentFree, ModelID: "c/d", ModelName: "D"},
	}

	msg := UpdatesMessage(changes)
	assert.Equal(t, "🔔 **OpenRouter Updates:**\n🆕 **B** added\n🎉 **D** went free!", msg)
}

func TestUpdatesMessageEmpty(t *testing.T) {
	assert.Equal(t, "", UpdatesMessage(nil))
}

func TestFreeModelsMessage(t *testing.T) {
	free := []model.Record{
		{ID: "a/b", Name: "B", InputPrice: "0", OutputPrice: "0", ContextLength: int64p(128000)},
		{ID: "c/d", Name: "D", InputPrice: "0", OutputPrice: "0"},
	}

	msg := FreeModelsMessage(free)
	assert.Equal(t, "💰 **Free Models:**\n- B (free) - 128,000 ctx\n- D (free)", msg)
}

func TestFreeModelsMessageEmpty(t *testing.T) {
	assert.Equal(t, "", FreeModelsMessage(nil))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{128000, "128,000"},
		{1234567, "1,234,567"},
		{-4096, "-4,096"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}
