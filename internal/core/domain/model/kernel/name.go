package kernel

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SystemOperator is recorded as reviewer when an order is created without an acting operator.
const SystemOperator = "SISTEMA"

// NormalizeName trims, collapses inner whitespace and upper-cases an operator or
// agent name ("  matías  gómez" -> "MATÍAS GÓMEZ").
func NormalizeName(name string) string {
	return cases.Upper(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// SameName reports whether two names are equal after normalisation.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
