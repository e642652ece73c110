package importer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Tiliavir/dutyrep/internal/dataset"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// Simulated stands in for an upload whose parsing is not implemented. After
// Delay it yields Count ten-hour records dated today with random known
// categories.
type Simulated struct {
	Delay time.Duration
	Count int
	// Rand picks categories; nil uses the global source.
	Rand *rand.Rand
}

// Name implements Provider.
func (s *Simulated) Name() string { return "simulated-upload" }

// Fetch implements Provider.
func (s *Simulated) Fetch(ctx context.Context) ([]model.ServiceRecord, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	today := timecalc.Today().String()
	out := make([]model.ServiceRecord, 0, max(s.Count, 0))
	for i := 0; i < s.Count; i++ {
		r, err := model.NewRecord(
			model.NewID(),
			model.KnownCategories[s.intN(len(model.KnownCategories))],
			today,
			"08:00",
			"18:00",
			fmt.Sprintf("IMPORTADO VIA ARQUIVO %d", i+1),
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Simulated) intN(n int) int {
	if s.Rand != nil {
		return s.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// File imports a record batch file (YAML or JSON).
type File struct {
	Path   string
	Logger *zap.Logger
}

// Name implements Provider.
func (f *File) Name() string { return filepath.Base(f.Path) }

// Fetch implements Provider.
func (f *File) Fetch(ctx context.Context) ([]model.ServiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.Load(f.Path, f.Logger)
}
