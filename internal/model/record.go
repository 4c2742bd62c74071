package model

import "github.com/shopspring/decimal"

// Record is one model's pricing as persisted in the snapshot file.
// Prices are per-token USD amounts kept as decimal strings so that
// "0.000002" survives load/save cycles byte-for-byte.
type Record struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	InputPrice    string `json:"price_input"`
	OutputPrice   string `json:"price_output"`
	ContextLength *int64 `json:"context_length"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// InputDecimal parses the input price string.
func (r Record) InputDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(r.InputPrice)
}

// OutputDecimal parses the output price string.
func (r Record) OutputDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(r.OutputPrice)
}

// TotalPrice returns input + output price, the magnitude used for
// drop detection.
func (r Record) TotalPrice() (decimal.Decimal, error) {
	in, err := r.InputDecimal()
	if err != nil {
		return decimal.Zero, err
	}
	out, err := r.OutputDecimal()
	if err != nil {
		return decimal.Zero, err
	}
	return in.Add(out), nil
}

// IsFree reports whether both prices are zero. A model with a free
// prompt but paid completion is not free.
func (r Record) IsFree() (bool, error) {
	in, err := r.InputDecimal()
	if err != nil {
		return false, err
	}
	out, err := r.OutputDecimal()
	if err != nil {
		return false, err
	}
	return in.IsZero() && out.IsZero(), nil
}

// DisplayName returns the name, falling back to the ID for catalog
// entries that ship without one.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
