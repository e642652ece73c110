// Package aggregate filters service records and derives statistics and
// grouped views from them. Every function is pure and total.
package aggregate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Tiliavir/dutyrep/internal/model"
)

// Locale is the single locale used for case folding in searches.
var Locale = language.BrazilianPortuguese

// ApplyFilter returns the records matching spec, preserving order.
// Stages run in sequence (type, search, from, to) and unset fields pass
// records through. The input slice is never modified.
func ApplyFilter(records []model.ServiceRecord, spec model.FilterSpec) []model.ServiceRecord {
	out := make([]model.ServiceRecord, 0, len(records))
	out = append(out, records...)

	if !spec.MatchesAllTypes() {
		out = keep(out, func(r model.ServiceRecord) bool {
			return string(r.Type) == spec.Type
		})
	}

	if spec.Search != "" {
		lower := cases.Lower(Locale)
		needle := lower.String(spec.Search)
		out = keep(out, func(r model.ServiceRecord) bool {
			if r.Personnel != "" && strings.Contains(lower.String(r.Personnel), needle) {
				return true
			}
			return strings.Contains(lower.String(string(r.Type)), needle)
		})
	}

	if spec.From != nil {
		from := *spec.From
		out = keep(out, func(r model.ServiceRecord) bool {
			return !r.ParsedDate().Before(from)
		})
	}

	if spec.To != nil {
		to := *spec.To
		out = keep(out, func(r model.ServiceRecord) bool {
			return !r.ParsedDate().After(to)
		})
	}

	return out
}

// keep filters rs in place. rs must be owned by the caller.
func keep(rs []model.ServiceRecord, pred func(model.ServiceRecord) bool) []model.ServiceRecord {
	n := 0
	for _, r := range rs {
		if pred(r) {
			rs[n] = r
			n++
		}
	}
	return rs[:n]
}
