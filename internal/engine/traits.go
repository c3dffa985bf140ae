package engine

// TraitAnalysis is a reduced number with the commentary attached to it.
type TraitAnalysis struct {
	Number     int    `json:"number" yaml:"number"`
	Tendencies string `json:"tendencies" yaml:"tendencies"`
	Advice     string `json:"advice" yaml:"advice"`
	Attention  string `json:"attention" yaml:"attention"`
}

// Traits bundles the health, feelings and heredity analyses.
type Traits struct {
	Health   TraitAnalysis `json:"health" yaml:"health"`
	Feelings TraitAnalysis `json:"feelings" yaml:"feelings"`
	Heredity TraitAnalysis `json:"heredity" yaml:"heredity"`
}

// HealthNumber reduces the letter sum of the first given name.
func HealthNumber(n NameSet) int {
	return ReduceToSingleDigit(sumLetters(n.First(0)))
}

// FeelingsNumber reduces the letter sum of the second and third given names.
func FeelingsNumber(n NameSet) int {
	return ReduceToSingleDigit(sumLetters(n.First(1)) + sumLetters(n.First(2)))
}

// HeredityNumber reduces the letter sum of the first surname.
func HeredityNumber(n NameSet) int {
	return ReduceToSingleDigit(sumLetters(n.Last(0)))
}

func (t *traitTexts) analysis(number int) TraitAnalysis {
	i := row(number)
	return TraitAnalysis{
		Number:     number,
		Tendencies: t.tendencies[i],
		Advice:     t.advice[i],
		Attention:  t.attention[i],
	}
}

// TraitAnalyses computes all three trait numbers and their texts.
func TraitAnalyses(n NameSet) Traits {
	return Traits{
		Health:   healthTexts.analysis(HealthNumber(n)),
		Feelings: feelingsTexts.analysis(FeelingsNumber(n)),
		Heredity: heredityTexts.analysis(HeredityNumber(n)),
	}
}
