package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"actiowatch/internal/config"
	"actiowatch/internal/domain"

	"github.com/fxamacker/cbor/v2"
)

func sample(cpu float64) domain.SystemSnapshot {
	return domain.SystemSnapshot{
		CPUPercent: cpu,
		Processes:  []domain.ProcessNode{{PID: 1, Name: "init", Children: []domain.ProcessNode{}}},
		Components: []domain.ThermalReading{},
		RecordedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, config.StreamJSON)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	enc.Encode(sample(10))
	enc.Encode(sample(20))

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		var snap domain.SystemSnapshot
		if err := json.Unmarshal(scanner.Bytes(), &snap); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("got %d lines, want 2", lines)
	}
}

func TestCBORSequence(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, config.StreamCBOR)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	enc.Encode(sample(10))
	enc.Encode(sample(20))

	dec := cbor.NewDecoder(&buf)
	for _, want := range []float64{10, 20} {
		var snap domain.SystemSnapshot
		if err := dec.Decode(&snap); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if snap.CPUPercent != want || snap.Processes[0].Name != "init" {
			t.Errorf("got %+v", snap)
		}
		if !snap.RecordedAt.Equal(time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)) {
			t.Errorf("RecordedAt = %v", snap.RecordedAt)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := NewEncoder(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
