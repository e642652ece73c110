package model

import "strings"

// Category classifies a service record. The known values below drive
// styling and bucketing; any other text is kept verbatim and compares,
// filters and groups like a known value.
type Category string

const (
	StudentDuty     Category = "Escala Alunos"
	InternalService Category = "Serviço Interno"
	REDS            Category = "REDS"
	Sentinel        Category = "Sentinela"
	PradoSeguro     Category = "Prado Seguro"
	SAT             Category = "SAT"
	FeiraHippie     Category = "Feira Hippie"
)

// KnownCategories lists the known categories in declaration order.
var KnownCategories = []Category{
	StudentDuty,
	InternalService,
	REDS,
	Sentinel,
	PradoSeguro,
	SAT,
	FeiraHippie,
}

// palette holds the display color of each known category.
var palette = map[Category]string{
	StudentDuty:     "#0088FE",
	InternalService: "#00C49F",
	REDS:            "#FFBB28",
	Sentinel:        "#FF8042",
	PradoSeguro:     "#8884D8",
	SAT:             "#82CA9D",
	FeiraHippie:     "#FFC658",
}

// otherColor is used for categories outside the known set.
const otherColor = "#94A3B8"

// Known reports whether c is one of the known categories.
func (c Category) Known() bool {
	_, ok := palette[c]
	return ok
}

// Color returns the hex display color for c.
func (c Category) Color() string {
	if col, ok := palette[c]; ok {
		return col
	}
	return otherColor
}

// String returns the category text.
func (c Category) String() string { return string(c) }

// ParseCategory returns the known category matching s exactly, or s itself
// as a free-text category. Surrounding whitespace is trimmed.
func ParseCategory(s string) Category {
	return Category(strings.TrimSpace(s))
}
