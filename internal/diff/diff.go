package diff

import (
	"fmt"

	"orwatch/internal/model"
)

// freeModelsCap bounds the free-models listing so the alert stays
// readable in a Discord message.
const freeModelsCap = 10

// Changes compares the freshly fetched catalog against the previous
// snapshot. New models come first, in catalog order, followed by the
// pricing events of models present in both snapshots, also in catalog
// order. Models that disappeared from the catalog emit nothing.
func Changes(current, previous []model.Record) ([]model.Change, error) {
	prevByID := make(map[string]model.Record, len(previous))
	for _, r := range previous {
		prevByID[r.ID] = r
	}

	var changes []model.Change

	for _, cur := range current {
		if _, ok := prevByID[cur.ID]; !ok {
			changes = append(changes, model.Change{
				Kind:      model.ChangeNewModel,
				ModelID:   cur.ID,
				ModelName: cur.Name,
			})
		}
	}

	for _, cur := range current {
		prev, ok := prevByID[cur.ID]
		if !ok {
			continue
		}
		events, err := recordChanges(cur, prev)
		if err != nil {
			return nil, err
		}
		changes = append(changes, events...)
	}

	return changes, nil
}

// recordChanges runs every pricing check for one model present in both
// snapshots. The checks are independent: a single catalog update may
// emit went_free, price_dropped and two price_changed events at once.
func recordChanges(cur, prev model.Record) ([]model.Change, error) {
	var events []model.Change

	curFree, err := cur.IsFree()
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", cur.ID, err)
	}
	prevFree, err := prev.IsFree()
	if err != nil {
		return nil, fmt.Errorf("model %s (snapshot): %w", prev.ID, err)
	}
	if curFree && !prevFree {
		events = append(events, model.Change{
			Kind:      model.ChangeWentFree,
			ModelID:   cur.ID,
			ModelName: cur.Name,
		})
	}

	curTotal, err := cur.TotalPrice()
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", cur.ID, err)
	}
	prevTotal, err := prev.TotalPrice()
	if err != nil {
		return nil, fmt.Errorf("model %s (snapshot): %w", prev.ID, err)
	}
	if prevTotal.GreaterThan(curTotal) {
		events = append(events, model.Change{
			Kind:      model.ChangePriceDropped,
			ModelID:   cur.ID,
			ModelName: cur.Name,
			Old:       prevTotal.StringFixed(4),
			New:       curTotal.StringFixed(4),
		})
	}

	// Field-level comparison is on the raw strings: "0.00" and "0"
	// are the same magnitude but still a published price change.
	if cur.InputPrice != prev.InputPrice {
		events = append(events, model.Change{
			Kind:      model.ChangePriceChanged,
			ModelID:   cur.ID,
			ModelName: cur.Name,
			Field:     model.FieldInput,
			Old:       prev.InputPrice,
			New:       cur.InputPrice,
		})
	}
	if cur.OutputPrice != prev.OutputPrice {
		events = append(events, model.Change{
			Kind:      model.ChangePriceChanged,
			ModelID:   cur.ID,
			ModelName: cur.Name,
			Field:     model.FieldOutput,
			Old:       prev.OutputPrice,
			New:       cur.OutputPrice,
		})
	}

	return events, nil
}

// FreeModels returns the catalog's free models in catalog order,
// capped at freeModelsCap. Free means both prices are decimal zero.
func FreeModels(records []model.Record) ([]model.Record, error) {
	var free []model.Record
	for _, r := range records {
		isFree, err := r.IsFree()
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", r.ID, err)
		}
		if !isFree {
			continue
		}
		free = append(free, r)
		if len(free) == freeModelsCap {
			break
		}
	}
	return free, nil
}
