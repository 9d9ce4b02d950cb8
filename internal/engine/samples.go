package engine

import (
	"errors"

	"github.com/quiet-orbit/tally/internal/log"
	"github.com/quiet-orbit/tally/internal/models"
)

// FetchSamples retrieves decoded auxiliary items of one event type with
// from <= timestamp <= to, capped at limit items. When a payload would push
// the result past the cap it is stride-sampled: every max(1, n/remaining)-th
// item is taken, preserving even coverage over the payload instead of
// truncating one end. Malformed payload rows are skipped, never fatal.
func (e *Engine) FetchSamples(eventType string, from, to int64, limit int) ([]models.SampleItem, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := e.db.SamplesInRange(eventType, from, to)
	if err != nil {
		return nil, err
	}

	var out []models.SampleItem
	for i := range rows {
		if len(out) >= limit {
			break
		}

		items, err := models.DecodeSamplePayload(&rows[i])
		if err != nil {
			var decodeErr *models.DecodeError
			if errors.As(err, &decodeErr) {
				log.Errorf("skipping malformed sample row: %v", decodeErr)
				continue
			}
			return nil, err
		}
		if len(items) == 0 {
			continue
		}

		remaining := limit - len(out)
		if len(items) <= remaining {
			out = append(out, items...)
			continue
		}

		// remaining >= 1 here, so the stride can never divide by zero.
		stride := len(items) / remaining
		if stride < 1 {
			stride = 1
		}
		for j := 0; j < len(items) && len(out) < limit; j += stride {
			out = append(out, items[j])
		}
	}
	return out, nil
}
