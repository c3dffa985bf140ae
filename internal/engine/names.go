package engine

import (
	"fmt"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/config"
)

// NameSet holds the given names and surnames of one person, in form order.
// Missing or blank entries are treated as empty.
type NameSet struct {
	FirstNames []string `json:"firstNames" yaml:"firstNames"`
	LastNames  []string `json:"lastNames" yaml:"lastNames"`
}

// First returns the i-th given name with all whitespace removed.
func (n NameSet) First(i int) string { return pick(n.FirstNames, i) }

// Last returns the i-th surname with all whitespace removed.
func (n NameSet) Last(i int) string { return pick(n.LastNames, i) }

func pick(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return stripSpaces(fields[i])
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Variant selects which name fields feed the inclusion grid.
// Both variants exist in the field: several given names with one surname,
// or a single given name with several surnames.
type Variant struct {
	Name       string
	FirstNames int // Given names counted, starting from the first.
	LastNames  int // Surnames counted, starting from the first.
}

var (
	// VariantFirstNames counts up to three given names and one surname.
	VariantFirstNames = Variant{Name: config.VariantFirstNames, FirstNames: 3, LastNames: 1}

	// VariantLastNames counts one given name and up to three surnames.
	VariantLastNames = Variant{Name: config.VariantLastNames, FirstNames: 1, LastNames: 3}
)

// Variants lists the supported variants by name.
var Variants = map[string]Variant{
	VariantFirstNames.Name: VariantFirstNames,
	VariantLastNames.Name:  VariantLastNames,
}

// ParseVariant looks a variant up by name. The empty name selects VariantFirstNames.
func ParseVariant(name string) (Variant, error) {
	if name == "" {
		return VariantFirstNames, nil
	}
	v, ok := Variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, fmt.Errorf("%s: %q", config.ErrVariantUnknown, name)
	}
	return v, nil
}

// letters concatenates the fields selected by the variant, uppercased.
func (v Variant) letters(n NameSet) string {
	var b strings.Builder
	for i := 0; i < v.FirstNames; i++ {
		b.WriteString(n.First(i))
	}
	for i := 0; i < v.LastNames; i++ {
		b.WriteString(n.Last(i))
	}
	return strings.ToUpper(b.String())
}

// ExpressionNumber reduces the letter sum of the first given name and the
// first surname. Other name fields never take part, whatever the variant.
func ExpressionNumber(n NameSet) int {
	return ReduceToSingleDigit(sumLetters(n.First(0)) + sumLetters(n.Last(0)))
}
