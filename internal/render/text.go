package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#3d5a80")
	colorSecondary = lipgloss.Color("#4ecdc4")
	colorAccent    = lipgloss.Color("#ee6c4d")
	colorMuted     = lipgloss.Color("#666666")
)

const (
	labelWidth     = 24
	paragraphWidth = 78
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	section   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	caption   lipgloss.Style
	paragraph lipgloss.Style
	footer    lipgloss.Style
	border    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
		header: r.NewStyle().Bold(true),
		section: r.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			MarginTop(1),
		label:     r.NewStyle().Width(labelWidth),
		value:     r.NewStyle().Bold(true).Foreground(colorAccent),
		caption:   r.NewStyle().Italic(true).Foreground(colorMuted),
		paragraph: r.NewStyle().Width(paragraphWidth).PaddingLeft(2),
		footer:    r.NewStyle().Foreground(colorMuted).MarginTop(1),
		border:    r.NewStyle().Foreground(colorMuted),
	}
}

// Text writes doc as a terminal report, sections in the order
// pillars, cycles, realizations, then trait analyses when present.
func Text(w io.Writer, doc Document, tr *locale.Translator) error {
	st := newStyles(lipgloss.NewRenderer(w))
	t := &textDoc{st: st, tr: tr}

	blocks := []string{
		st.title.Render(tr.Msg(config.TKeyTitle)),
		t.header(doc),
	}
	if doc.Report != nil {
		blocks = append(blocks,
			t.pillars(doc.Report),
			t.cycles(doc.Report.Cycles),
			t.realizations(doc.Report.Realizations),
		)
		if doc.Report.TraitAnalyses != nil {
			blocks = append(blocks, t.traits(*doc.Report.TraitAnalyses))
		}
	}
	blocks = append(blocks, t.footer(doc))

	_, err := io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, blocks...)+"\n")
	return err
}

type textDoc struct {
	st styles
	tr *locale.Translator
}

func (t *textDoc) header(doc Document) string {
	date := doc.Person.BirthDate
	if d, err := engine.ParseBirthDate(date); err == nil {
		date = d.Time(nil).Format(t.tr.Msg(config.TKeyFormatDate))
	}
	born := t.tr.Format(config.TKeyBornOn, map[string]any{"Date": date})
	return t.st.header.Render(DisplayName(doc.Person)) + " - " + born
}

func (t *textDoc) footer(doc Document) string {
	at := doc.GeneratedAt
	return t.st.footer.Render(t.tr.Format(config.TKeyGeneratedOn, map[string]any{
		"Date": at.Format(t.tr.Msg(config.TKeyFormatDate)),
		"Time": at.Format(t.tr.Msg(config.TKeyFormatTime)),
	}))
}

func (t *textDoc) line(label string, value int) string {
	return t.st.label.Render(label) + t.st.value.Render(strconv.Itoa(value))
}

func (t *textDoc) pillars(r *engine.Report) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		t.st.section.Render(t.tr.Msg(config.TKeyTabPillars)),
		t.line(t.tr.Msg(config.TKeyLifePath), r.LifePathNumber),
		t.line(t.tr.Msg(config.TKeyExpression), r.ExpressionNumber),
		t.tr.Msg(config.TKeyInclusionGrid),
		t.grid(r.InclusionGrid),
	)
}

func (t *textDoc) grid(g engine.InclusionGrid) string {
	rows := make([][]string, 0, len(g))
	for _, cell := range g {
		rows = append(rows, []string{strconv.Itoa(cell.Numeral), cell.Glyph})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.st.border).
		Headers(t.tr.Msg(config.TKeyColNumber), t.tr.Msg(config.TKeyColCount)).
		Rows(rows...).
		String()
}

func (t *textDoc) phases(title string, phases []engine.Phase, caption string) string {
	lines := []string{t.st.section.Render(title)}
	if caption != "" {
		lines = append(lines, t.st.caption.Render(caption))
	}
	for _, p := range phases {
		lines = append(lines, t.line(PhaseLabel(t.tr, p), p.Value)+"  "+p.AgeRange)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (t *textDoc) cycles(c engine.Cycles) string {
	return t.phases(t.tr.Msg(config.TKeyTabCycles), c.All(), t.tr.Msg(config.TKeyCycleCaption))
}

func (t *textDoc) realizations(r engine.Realizations) string {
	return t.phases(t.tr.Msg(config.TKeyTabRealizations), r.All(), "")
}

func (t *textDoc) traits(ta engine.Traits) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		t.st.section.Render(t.tr.Msg(config.TKeyTabTraits)),
		t.analysis(config.TKeyHealth, ta.Health),
		t.analysis(config.TKeyFeelings, ta.Feelings),
		t.analysis(config.TKeyHeredity, ta.Heredity),
	)
}

func (t *textDoc) analysis(titleKey string, a engine.TraitAnalysis) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		t.st.header.Render(t.tr.Msg(titleKey)),
		t.line(t.tr.Msg(config.TKeyDominant), a.Number),
		t.st.paragraph.Render(t.tr.Msg(config.TKeyTendencies)+": "+a.Tendencies),
		t.st.paragraph.Render(t.tr.Msg(config.TKeyAdvice)+": "+a.Advice),
		t.st.paragraph.Render(t.tr.Msg(config.TKeyAttention)+": "+a.Attention),
	)
}

// DisplayName joins given names then upper-cased surnames, e.g. "Jean DUPONT".
func DisplayName(in engine.Input) string {
	var parts []string
	for _, s := range []string{in.FirstName1, in.FirstName2, in.FirstName3} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	for _, s := range []string{in.LastName, in.LastName2, in.LastName3} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, strings.ToUpper(s))
		}
	}
	return strings.Join(parts, " ")
}
