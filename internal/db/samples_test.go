package db

import (
	"testing"
)

func TestUpsertSample_LastWriterWins(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertSample("click_positions", 1000, []byte(`[{"x":1,"y":2}]`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}
	if err := db.UpsertSample("click_positions", 1000, []byte(`[{"x":9,"y":9}]`)); err != nil {
		t.Fatalf("UpsertSample() second call error = %v", err)
	}

	rows, err := db.SamplesInRange("click_positions", 0, 2000)
	if err != nil {
		t.Fatalf("SamplesInRange() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if string(rows[0].Payload) != `[{"x":9,"y":9}]` {
		t.Errorf("payload = %s, want replaced payload", rows[0].Payload)
	}
}

func TestSamplesInRange_TypeAndOrder(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertSample("click_positions", 3000, []byte(`[]`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}
	if err := db.UpsertSample("click_positions", 1000, []byte(`[]`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}
	if err := db.UpsertSample("keycode_histogram", 2000, []byte(`{}`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}

	rows, err := db.SamplesInRange("click_positions", 0, 5000)
	if err != nil {
		t.Fatalf("SamplesInRange() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Timestamp != 1000 || rows[1].Timestamp != 3000 {
		t.Errorf("timestamps = [%d, %d], want ascending [1000, 3000]",
			rows[0].Timestamp, rows[1].Timestamp)
	}

	rows, err = db.SamplesInRange("click_positions", 5000, 0)
	if err != nil {
		t.Fatalf("SamplesInRange() inverted error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("inverted range rows = %d, want 0", len(rows))
	}
}

func TestPruneSamplesBefore(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertSample("click_positions", 1000, []byte(`[]`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}
	if err := db.UpsertSample("click_positions", 2000, []byte(`[]`)); err != nil {
		t.Fatalf("UpsertSample() error = %v", err)
	}

	pruned, err := db.PruneSamplesBefore(1500)
	if err != nil {
		t.Fatalf("PruneSamplesBefore() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	rows, err := db.SamplesInRange("click_positions", 0, 5000)
	if err != nil {
		t.Fatalf("SamplesInRange() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Timestamp != 2000 {
		t.Errorf("surviving rows = %+v, want only timestamp 2000", rows)
	}
}
