package openrouter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"orwatch/internal/model"
)

// Normalize projects raw catalog entries onto snapshot records,
// preserving catalog order. A missing id or an unparsable price string
// aborts the whole batch: partial catalogs would poison every later
// diff.
func Normalize(models []Model) ([]model.Record, error) {
	records := make([]model.Record, 0, len(models))
	for i, m := range models {
		if m.ID == "" {
			return nil, fmt.Errorf("model at index %d has no id", i)
		}

		input, err := normalizePrice(m.Pricing.Prompt)
		if err != nil {
			return nil, fmt.Errorf("model %s: prompt price: %w", m.ID, err)
		}
		output, err := normalizePrice(m.Pricing.Completion)
		if err != nil {
			return nil, fmt.Errorf("model %s: completion price: %w", m.ID, err)
		}

		records = append(records, model.Record{
			ID:            m.ID,
			Name:          m.Name,
			Provider:      providerOf(m.ID),
			InputPrice:    input,
			OutputPrice:   output,
			ContextLength: contextLength(m),
			UpdatedAt:     m.UpdatedAt,
		})
	}
	return records, nil
}

// normalizePrice defaults an absent price to "0" and rejects strings
// that are not decimal numbers. The raw string is kept, not the parsed
// value, so snapshots stay byte-stable.
func normalizePrice(s string) (string, error) {
	if s == "" {
		return "0", nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("invalid price %q: %w", s, err)
	}
	return s, nil
}

// providerOf extracts the provider prefix from a "provider/slug" id.
func providerOf(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[:i]
	}
	return "unknown"
}

// contextLength prefers context_length, falls back to max_tokens, and
// returns nil when the catalog reports neither.
func contextLength(m Model) *int64 {
	if m.ContextLength != nil {
		v := *m.ContextLength
		return &v
	}
	if m.MaxTokens != nil {
		v := *m.MaxTokens
		return &v
	}
	return nil
}
