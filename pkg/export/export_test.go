package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kilianp07/offshore/core/report"
)

func profile() []report.Hour {
	return []report.Hour{
		{Hour: 0, Ticks: 3600, Cost: 12.34567, MeanFraction: 0.5},
		{Hour: 1, Ticks: 3600, Cost: 1, MeanFraction: 0.25},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, profile()); err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "0,3600,12.346,0.500000" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, profile()); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []report.Hour
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[1].MeanFraction != 0.25 {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestWriteByExtension(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "out.CSV", profile()); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "hour,") {
		t.Fatalf("expected csv header")
	}
	if err := Write(&buf, "out.xml", profile()); err == nil {
		t.Fatalf("expected error")
	}
}
