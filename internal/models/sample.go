package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SamplePayload stores an opaque auxiliary event blob (click positions,
// keycode histograms, ...) keyed by event type and capture timestamp. The
// engine never interprets the payload on the write path; decoding happens
// only in the bounded fetch.
type SamplePayload struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventType string `gorm:"size:50;not null;uniqueIndex:idx_sample_type_ts" json:"event_type"`
	// Timestamp is a Unix timestamp in seconds.
	Timestamp int64  `gorm:"not null;index;uniqueIndex:idx_sample_type_ts" json:"timestamp"`
	Payload   []byte `gorm:"type:blob" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (SamplePayload) TableName() string {
	return "sample_payloads"
}

// Known sample event types.
const (
	SampleClickPositions   = "click_positions"
	SampleKeycodeHistogram = "keycode_histogram"
)

// ClickPoint is one decoded click-position sample.
type ClickPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// KeycodeCount is one decoded keycode-histogram bucket.
type KeycodeCount struct {
	Keycode int   `json:"keycode"`
	Count   int64 `json:"count"`
}

// SampleItem is one decoded item from a payload, tagged by the payload's
// event type. Exactly one variant field is set; unknown event types decode
// into Raw.
type SampleItem struct {
	EventType string          `json:"event_type"`
	Timestamp int64           `json:"timestamp"`
	Click     *ClickPoint     `json:"click,omitempty"`
	Keycode   *KeycodeCount   `json:"keycode,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// DecodeError reports a malformed payload row. Range fetches skip rows that
// fail to decode rather than aborting the query.
type DecodeError struct {
	EventType string
	Timestamp int64
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s payload at %d: %v", e.EventType, e.Timestamp, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeSamplePayload decodes a stored payload into its items. Click
// positions decode from a JSON point array, keycode histograms from a JSON
// keycode→count object (returned in ascending keycode order), and unknown
// event types from a JSON array of arbitrary values.
func DecodeSamplePayload(row *SamplePayload) ([]SampleItem, error) {
	switch row.EventType {
	case SampleClickPositions:
		var points []ClickPoint
		if err := json.Unmarshal(row.Payload, &points); err != nil {
			return nil, &DecodeError{EventType: row.EventType, Timestamp: row.Timestamp, Err: err}
		}
		items := make([]SampleItem, len(points))
		for i := range points {
			p := points[i]
			items[i] = SampleItem{EventType: row.EventType, Timestamp: row.Timestamp, Click: &p}
		}
		return items, nil

	case SampleKeycodeHistogram:
		var hist map[int]int64
		if err := json.Unmarshal(row.Payload, &hist); err != nil {
			return nil, &DecodeError{EventType: row.EventType, Timestamp: row.Timestamp, Err: err}
		}
		keycodes := make([]int, 0, len(hist))
		for k := range hist {
			keycodes = append(keycodes, k)
		}
		sort.Ints(keycodes)
		items := make([]SampleItem, 0, len(keycodes))
		for _, k := range keycodes {
			kc := KeycodeCount{Keycode: k, Count: hist[k]}
			items = append(items, SampleItem{EventType: row.EventType, Timestamp: row.Timestamp, Keycode: &kc})
		}
		return items, nil

	default:
		var raw []json.RawMessage
		if err := json.Unmarshal(row.Payload, &raw); err != nil {
			return nil, &DecodeError{EventType: row.EventType, Timestamp: row.Timestamp, Err: err}
		}
		items := make([]SampleItem, len(raw))
		for i := range raw {
			items[i] = SampleItem{EventType: row.EventType, Timestamp: row.Timestamp, Raw: raw[i]}
		}
		return items, nil
	}
}
