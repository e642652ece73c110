package model

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// MatchAll is the type selector that keeps every category.
const MatchAll = "ALL"

// FilterSpec is the current narrowing selection. Empty fields are skipped.
type FilterSpec struct {
	Search string         `json:"search,omitempty"`
	Type   string         `json:"type,omitempty"`
	From   *timecalc.Date `json:"-"`
	To     *timecalc.Date `json:"-"`
}

// MatchesAllTypes reports whether the type selector keeps every category.
func (f FilterSpec) MatchesAllTypes() bool {
	return f.Type == "" || f.Type == MatchAll
}

// IsEmpty reports whether the filter passes every record through.
func (f FilterSpec) IsEmpty() bool {
	return f.Search == "" && f.MatchesAllTypes() && f.From == nil && f.To == nil
}

// String describes the filter for report headers.
func (f FilterSpec) String() string {
	if f.IsEmpty() {
		return "all records"
	}
	var parts []string
	if !f.MatchesAllTypes() {
		parts = append(parts, fmt.Sprintf("type=%q", f.Type))
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if f.From != nil {
		parts = append(parts, "from="+f.From.String())
	}
	if f.To != nil {
		parts = append(parts, "to="+f.To.String())
	}
	return strings.Join(parts, " ")
}

// ParseFilterSpec builds a FilterSpec from user input. Date bounds accept
// YYYY-MM-DD or DD/MM/YYYY; an empty bound is unset.
func ParseFilterSpec(search, typ, from, to string) (FilterSpec, error) {
	spec := FilterSpec{Search: search, Type: strings.TrimSpace(typ)}
	if strings.TrimSpace(from) != "" {
		d, err := timecalc.ParseBound(from)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("invalid from bound: %w", err)
		}
		spec.From = &d
	}
	if strings.TrimSpace(to) != "" {
		d, err := timecalc.ParseBound(to)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("invalid to bound: %w", err)
		}
		spec.To = &d
	}
	return spec, nil
}
