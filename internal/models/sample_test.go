package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSamplePayload_ClickPositions(t *testing.T) {
	row := &SamplePayload{
		EventType: SampleClickPositions,
		Timestamp: 1_760_000_000,
		Payload:   []byte(`[{"x":10,"y":20},{"x":30,"y":40}]`),
	}

	items, err := DecodeSamplePayload(row)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, SampleClickPositions, items[0].EventType)
	assert.Equal(t, int64(1_760_000_000), items[0].Timestamp)
	require.NotNil(t, items[0].Click)
	assert.Equal(t, ClickPoint{X: 10, Y: 20}, *items[0].Click)
	assert.Equal(t, ClickPoint{X: 30, Y: 40}, *items[1].Click)
	assert.Nil(t, items[0].Keycode)
}

func TestDecodeSamplePayload_KeycodeHistogram(t *testing.T) {
	row := &SamplePayload{
		EventType: SampleKeycodeHistogram,
		Timestamp: 1,
		Payload:   []byte(`{"40":12,"3":99}`),
	}

	items, err := DecodeSamplePayload(row)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted by keycode regardless of map iteration order.
	assert.Equal(t, KeycodeCount{Keycode: 3, Count: 99}, *items[0].Keycode)
	assert.Equal(t, KeycodeCount{Keycode: 40, Count: 12}, *items[1].Keycode)
}

func TestDecodeSamplePayload_UnknownType(t *testing.T) {
	row := &SamplePayload{
		EventType: "window_titles",
		Timestamp: 1,
		Payload:   []byte(`["a", 2, null]`),
	}

	items, err := DecodeSamplePayload(row)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, `"a"`, string(items[0].Raw))
	assert.Nil(t, items[0].Click)
	assert.Nil(t, items[0].Keycode)
}

func TestDecodeSamplePayload_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		payload   string
	}{
		{"click positions not an array", SampleClickPositions, `{"x":1}`},
		{"histogram not an object", SampleKeycodeHistogram, `[1,2,3]`},
		{"histogram non-numeric key", SampleKeycodeHistogram, `{"esc":1}`},
		{"unknown type truncated", "window_titles", `["a",`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &SamplePayload{EventType: tt.eventType, Timestamp: 7, Payload: []byte(tt.payload)}
			_, err := DecodeSamplePayload(row)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.eventType, decodeErr.EventType)
			assert.Equal(t, int64(7), decodeErr.Timestamp)
			assert.Error(t, decodeErr.Unwrap())
		})
	}
}

func TestDecodeSamplePayload_Empty(t *testing.T) {
	row := &SamplePayload{EventType: SampleClickPositions, Payload: []byte(`[]`)}
	items, err := DecodeSamplePayload(row)
	require.NoError(t, err)
	assert.Empty(t, items)
}
