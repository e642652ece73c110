// Package dataset reads and writes record batch files. A batch file holds a
// "records" list in YAML or JSON using the canonical DD/MM/YYYY and HH:MM
// encodings.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// ErrInvalidRecord is wrapped by every per-record validation failure.
var ErrInvalidRecord = errors.New("invalid record")

// fileRecord mirrors model.ServiceRecord with an optional duration so that
// files may omit it and have it computed from the times.
type fileRecord struct {
	ID            string   `json:"id" yaml:"id"`
	Type          string   `json:"type" yaml:"type"`
	Date          string   `json:"date" yaml:"date"`
	StartTime     string   `json:"startTime" yaml:"startTime"`
	EndTime       string   `json:"endTime" yaml:"endTime"`
	DurationHours *float64 `json:"durationHours,omitempty" yaml:"durationHours,omitempty"`
	Personnel     string   `json:"personnel,omitempty" yaml:"personnel,omitempty"`
}

// File is the top-level structure of a batch file.
type File struct {
	Records []fileRecord `json:"records" yaml:"records"`
}

// Load reads the batch file at path and validates every record. The whole
// file is rejected if any record is invalid.
func Load(path string, logger *zap.Logger) ([]model.ServiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset error reading %s: %w", path, err)
	}
	records, err := Decode(data, isJSON(path), logger)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return records, nil
}

// Decode parses batch file contents as JSON or YAML. Records without an ID
// get a generated one; a repeated ID rejects the whole batch.
func Decode(data []byte, asJSON bool, logger *zap.Logger) ([]model.ServiceRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var f File
	var err error
	if asJSON {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding batch: %w", err)
	}
	out := make([]model.ServiceRecord, 0, len(f.Records))
	seen := make(map[string]int, len(f.Records))
	for i, fr := range f.Records {
		r, err := fr.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if r.ID == "" {
			r.ID = model.NewID()
		}
		if first, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("record %d: %w: id %q already used by record %d", i+1, ErrInvalidRecord, r.ID, first)
		}
		seen[r.ID] = i + 1
		if _, ok := timecalc.ParseDateStrict(r.Date); !ok {
			logger.Warn("malformed record date, grouping as today",
				zap.String("id", r.ID),
				zap.String("date", r.Date),
			)
		}
		out = append(out, r)
	}
	return out, nil
}

func (fr fileRecord) toRecord() (model.ServiceRecord, error) {
	if strings.TrimSpace(fr.Type) == "" {
		return model.ServiceRecord{}, fmt.Errorf("%w: missing type", ErrInvalidRecord)
	}
	hours, err := timecalc.ComputeDuration(fr.StartTime, fr.EndTime)
	if err != nil {
		return model.ServiceRecord{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if fr.DurationHours != nil {
		if *fr.DurationHours < 0 {
			return model.ServiceRecord{}, fmt.Errorf("%w: negative duration %v", ErrInvalidRecord, *fr.DurationHours)
		}
		hours = *fr.DurationHours
	}
	return model.ServiceRecord{
		ID:            strings.TrimSpace(fr.ID),
		Type:          model.ParseCategory(fr.Type),
		Date:          strings.TrimSpace(fr.Date),
		StartTime:     strings.TrimSpace(fr.StartTime),
		EndTime:       strings.TrimSpace(fr.EndTime),
		DurationHours: hours,
		Personnel:     strings.TrimSpace(fr.Personnel),
	}, nil
}

// Save atomically writes records to path. The encoding follows the file
// extension: .json writes JSON, anything else YAML.
func Save(path string, records []model.ServiceRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("dataset error creating directories: %w", err)
	}

	f := File{Records: make([]fileRecord, len(records))}
	for i, r := range records {
		h := r.DurationHours
		f.Records[i] = fileRecord{
			ID:            r.ID,
			Type:          string(r.Type),
			Date:          r.Date,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			DurationHours: &h,
			Personnel:     r.Personnel,
		}
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("dataset error encoding: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("dataset error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("dataset error renaming temp file: %w", err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
