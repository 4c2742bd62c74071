package model

// ChangeKind identifies what happened to a model between two snapshots.
type ChangeKind string

const (
	ChangeNewModel     ChangeKind = "new_model"
	ChangeWentFree     ChangeKind = "went_free"
	ChangePriceDropped ChangeKind = "price_dropped"
	ChangePriceChanged ChangeKind = "price_changed"
)

// PriceField names which price moved in a price_changed event.
type PriceField string

const (
	FieldInput  PriceField = "input"
	FieldOutput PriceField = "output"
)

// Change is one detected difference between the previous snapshot and
// the current catalog. Old/New are only set for pricing events; Field
// is only set for price_changed.
type Change struct {
	Kind      ChangeKind
	ModelID   string
	ModelName string
	Field     PriceField
	Old       string
	New       string
}
