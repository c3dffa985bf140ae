package engine

import "strings"

// Input is the raw form record handed to the engine.
type Input struct {
	FirstName1 string `json:"firstName1" yaml:"firstName1"`
	FirstName2 string `json:"firstName2,omitempty" yaml:"firstName2,omitempty"`
	FirstName3 string `json:"firstName3,omitempty" yaml:"firstName3,omitempty"`
	LastName   string `json:"lastName" yaml:"lastName"`
	LastName2  string `json:"lastName2,omitempty" yaml:"lastName2,omitempty"`
	LastName3  string `json:"lastName3,omitempty" yaml:"lastName3,omitempty"`
	BirthDate  string `json:"birthDate" yaml:"birthDate"`
}

// NameSet returns the names in form order.
func (in Input) NameSet() NameSet {
	return NameSet{
		FirstNames: []string{in.FirstName1, in.FirstName2, in.FirstName3},
		LastNames:  []string{in.LastName, in.LastName2, in.LastName3},
	}
}

// FullName joins the non-blank names, given names first.
func (in Input) FullName() string {
	var parts []string
	for _, s := range []string{in.FirstName1, in.FirstName2, in.FirstName3, in.LastName, in.LastName2, in.LastName3} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Options tune a calculation.
type Options struct {
	Variant       Variant // Zero value selects VariantFirstNames.
	IncludeTraits bool
}

func (o Options) variant() Variant {
	if o.Variant.Name == "" {
		return VariantFirstNames
	}
	return o.Variant
}

// Report is the full set of derived figures for one person.
type Report struct {
	LifePathNumber   int           `json:"lifePathNumber" yaml:"lifePathNumber"`
	InclusionGrid    InclusionGrid `json:"inclusionGrid" yaml:"inclusionGrid"`
	ExpressionNumber int           `json:"expressionNumber" yaml:"expressionNumber"`
	Cycles           Cycles        `json:"cycles" yaml:"cycles"`
	Realizations     Realizations  `json:"realizations" yaml:"realizations"`
	TraitAnalyses    *Traits       `json:"traitAnalyses,omitempty" yaml:"traitAnalyses,omitempty"`
}

// Calculate derives every figure from in. The only failure is an
// unparseable birth date, reported as *InvalidDateError.
func Calculate(in Input, opts Options) (*Report, error) {
	date, err := ParseBirthDate(in.BirthDate)
	if err != nil {
		return nil, err
	}
	return CalculateFor(date, in.NameSet(), opts), nil
}

// CalculateFor is Calculate for an already parsed date.
func CalculateFor(date BirthDate, names NameSet, opts Options) *Report {
	lifePath := date.LifePathNumber()
	r := &Report{
		LifePathNumber:   lifePath,
		InclusionGrid:    BuildInclusionGrid(names, opts.variant()),
		ExpressionNumber: ExpressionNumber(names),
		Cycles:           date.LifeCycles(lifePath),
		Realizations:     date.Realizations(lifePath),
	}
	if opts.IncludeTraits {
		traits := TraitAnalyses(names)
		r.TraitAnalyses = &traits
	}
	return r
}
