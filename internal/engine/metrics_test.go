package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()
	IncrTranscript()
	IncrDataAPI()
	IncrDataAPI()
	after := GetMetrics()

	if d := after["transcript_requests"] - before["transcript_requests"]; d != 1 {
		t.Errorf("transcript_requests delta = %d, want 1", d)
	}
	if d := after["data_api_requests"] - before["data_api_requests"]; d != 2 {
		t.Errorf("data_api_requests delta = %d, want 2", d)
	}

	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(metricKeys) {
		t.Fatalf("FormatMetrics lines = %d, want %d", len(lines), len(metricKeys))
	}
	for i, k := range metricKeys {
		if !strings.HasPrefix(lines[i], k+" ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], k)
		}
	}
	if len(GetMetrics()) != len(metricKeys) {
		t.Error("GetMetrics and metricKeys disagree")
	}
}

func TestTrackOperation(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "op", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation error = %v, want %v", err, want)
	}
}
