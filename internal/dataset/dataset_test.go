package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/dutyrep/internal/dataset"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/seed"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "batch.yaml", `records:
  - id: a1
    type: Sentinela
    date: "18/11/2025"
    startTime: "19:00"
    endTime: "07:00"
  - id: a2
    type: Operação Carnaval
    date: "01/03/2025"
    startTime: "08:30"
    endTime: "15:20"
    durationHours: 7
    personnel: AL SD ANA
`)
	records, err := dataset.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Load records = %d, want 2", len(records))
	}
	if records[0].DurationHours != 12 {
		t.Errorf("computed duration = %v, want 12", records[0].DurationHours)
	}
	if records[1].DurationHours != 7 {
		t.Errorf("stored duration = %v, want 7 (authoritative)", records[1].DurationHours)
	}
	if records[1].Type.Known() {
		t.Errorf("free-text type %q reported as known", records[1].Type)
	}
	if records[1].Personnel != "AL SD ANA" {
		t.Errorf("personnel = %q", records[1].Personnel)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "batch.json", `{"records": [
		{"id": "j1", "type": "REDS", "date": "25/11/2025", "startTime": "18:00", "endTime": "00:00", "durationHours": 6}
	]}`)
	records, err := dataset.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Type != model.REDS {
		t.Errorf("Load = %+v", records)
	}
}

func TestLoadRejectsBadTime(t *testing.T) {
	path := writeFile(t, "bad.yaml", `records:
  - id: ok
    type: SAT
    date: "01/12/2025"
    startTime: "17:30"
    endTime: "00:00"
  - id: bad
    type: SAT
    date: "01/12/2025"
    startTime: "17h30"
    endTime: "00:00"
`)
	_, err := dataset.Load(path, nil)
	if !errors.Is(err, dataset.ErrInvalidRecord) {
		t.Fatalf("Load error = %v, want ErrInvalidRecord", err)
	}
	var fe *timecalc.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("Load error = %v, want wrapped *FormatError", err)
	}
}

func TestLoadRejectsMissingType(t *testing.T) {
	path := writeFile(t, "notype.yaml", `records:
  - id: x
    date: "01/12/2025"
    startTime: "08:00"
    endTime: "09:00"
`)
	if _, err := dataset.Load(path, nil); !errors.Is(err, dataset.ErrInvalidRecord) {
		t.Errorf("Load error = %v, want ErrInvalidRecord", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := writeFile(t, "corrupt.yaml", "records: [unterminated")
	if _, err := dataset.Load(path, nil); err == nil {
		t.Fatal("expected error for corrupt file, got nil")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := dataset.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		want := seed.Records()
		if err := dataset.Save(path, want); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temp file left behind for %s", name)
		}
		got, err := dataset.Load(path, nil)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: loaded %d records, want %d", name, len(got), len(want))
		}
		// Record 20 keeps its stored 14.6h rather than the computed 14.67h.
		if got[19].DurationHours != 14.6 {
			t.Errorf("%s: record 20 duration = %v, want 14.6", name, got[19].DurationHours)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: record %d = %+v, want %+v", name, i, got[i], want[i])
			}
		}
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := writeFile(t, "noid.yaml", `records:
  - type: SAT
    date: "01/12/2025"
    startTime: "17:30"
    endTime: "00:00"
  - id: "  "
    type: REDS
    date: "02/12/2025"
    startTime: "18:00"
    endTime: "00:00"
`)
	records, err := dataset.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, r := range records {
		if !strings.HasPrefix(r.ID, "imported-") {
			t.Errorf("record %d id = %q, want generated imported-<uuid>", i+1, r.ID)
		}
	}
	if records[0].ID == records[1].ID {
		t.Errorf("generated ids collide: %q", records[0].ID)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeFile(t, "dup.yaml", `records:
  - id: "7"
    type: SAT
    date: "01/12/2025"
    startTime: "08:00"
    endTime: "09:00"
  - type: SAT
    date: "01/12/2025"
    startTime: "09:00"
    endTime: "10:00"
  - id: "7"
    type: REDS
    date: "02/12/2025"
    startTime: "08:00"
    endTime: "09:00"
`)
	_, err := dataset.Load(path, nil)
	if !errors.Is(err, dataset.ErrInvalidRecord) {
		t.Fatalf("Load error = %v, want ErrInvalidRecord", err)
	}
	if !strings.Contains(err.Error(), `"7"`) {
		t.Errorf("Load error = %v, want the duplicate id named", err)
	}
}
