package engine

import (
	"fmt"

	"github.com/GillesH-web/Pythagore/internal/config"
)

// Phase is a life cycle or a realization: a value attached to an age band
// that depends on the life path number.
type Phase struct {
	Label    string `json:"label" yaml:"label"`
	AgeRange string `json:"ageRange" yaml:"ageRange"`
	Value    int    `json:"value" yaml:"value"`
	FromAge  int    `json:"fromAge" yaml:"fromAge"`
	ToAge    int    `json:"toAge,omitempty" yaml:"toAge,omitempty"` // 0 when open-ended
}

func newPhase(label string, band ageBand, value int) Phase {
	return Phase{
		Label:    label,
		AgeRange: band.text,
		Value:    value,
		FromAge:  band.from,
		ToAge:    band.to,
	}
}

// Cycles are the three life cycles, driven by month, day and year.
type Cycles struct {
	Cycle1 Phase `json:"cycle1" yaml:"cycle1"`
	Cycle2 Phase `json:"cycle2" yaml:"cycle2"`
	Cycle3 Phase `json:"cycle3" yaml:"cycle3"`
}

// All returns the cycles in chronological order.
func (c Cycles) All() []Phase { return []Phase{c.Cycle1, c.Cycle2, c.Cycle3} }

// LifeCycles computes the three cycles. lifePath selects the age bands.
func (d BirthDate) LifeCycles(lifePath int) Cycles {
	i := row(lifePath)
	return Cycles{
		Cycle1: newPhase(fmt.Sprintf(config.LabelCycle, 1), cycleAges[0][i], ReduceToSingleDigit(d.Month)),
		Cycle2: newPhase(fmt.Sprintf(config.LabelCycle, 2), cycleAges[1][i], ReduceToSingleDigit(d.Day)),
		Cycle3: newPhase(fmt.Sprintf(config.LabelCycle, 3), cycleAges[2][i], ReduceToSingleDigit(d.Year)),
	}
}

// LifeCycles parses birthDate and computes its three cycles.
func LifeCycles(birthDate string, lifePath int) (Cycles, error) {
	d, err := ParseBirthDate(birthDate)
	if err != nil {
		return Cycles{}, err
	}
	return d.LifeCycles(lifePath), nil
}

// Realization1 reduces day + month.
func (d BirthDate) Realization1() int { return ReduceToSingleDigit(d.Day + d.Month) }

// Realization2 reduces day + year.
func (d BirthDate) Realization2() int { return ReduceToSingleDigit(d.Day + d.Year) }

// Realization3 reduces the sum of the already reduced first and second realizations.
func (d BirthDate) Realization3() int {
	return ReduceToSingleDigit(d.Realization1() + d.Realization2())
}

// Realization4 reduces year + month.
func (d BirthDate) Realization4() int { return ReduceToSingleDigit(d.Year + d.Month) }

// Realizations are the four realization phases.
type Realizations struct {
	Realization1 Phase `json:"realization1" yaml:"realization1"`
	Realization2 Phase `json:"realization2" yaml:"realization2"`
	Realization3 Phase `json:"realization3" yaml:"realization3"`
	Realization4 Phase `json:"realization4" yaml:"realization4"`
}

// All returns the realizations in chronological order.
func (r Realizations) All() []Phase {
	return []Phase{r.Realization1, r.Realization2, r.Realization3, r.Realization4}
}

// Realizations computes the four phases. lifePath selects the age bands.
func (d BirthDate) Realizations(lifePath int) Realizations {
	i := row(lifePath)
	label := func(n int) string { return fmt.Sprintf(config.LabelRealization, n) }
	return Realizations{
		Realization1: newPhase(label(1), realizationAges[0][i], d.Realization1()),
		Realization2: newPhase(label(2), realizationAges[1][i], d.Realization2()),
		Realization3: newPhase(label(3), realizationAges[2][i], d.Realization3()),
		Realization4: newPhase(label(4), realizationAges[3][i], d.Realization4()),
	}
}

// Realization1 parses birthDate and returns its first realization.
func Realization1(birthDate string) (int, error) {
	return withDate(birthDate, BirthDate.Realization1)
}

// Realization2 parses birthDate and returns its second realization.
func Realization2(birthDate string) (int, error) {
	return withDate(birthDate, BirthDate.Realization2)
}

// Realization3 parses birthDate and returns its third realization.
func Realization3(birthDate string) (int, error) {
	return withDate(birthDate, BirthDate.Realization3)
}

// Realization4 parses birthDate and returns its fourth realization.
func Realization4(birthDate string) (int, error) {
	return withDate(birthDate, BirthDate.Realization4)
}

func withDate(birthDate string, f func(BirthDate) int) (int, error) {
	d, err := ParseBirthDate(birthDate)
	if err != nil {
		return 0, err
	}
	return f(d), nil
}
