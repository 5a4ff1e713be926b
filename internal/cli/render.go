// Package cli renders score views as terminal tables.
package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/internal/domain/model"
	"github.com/okian/memedash/internal/domain/present"
)

// Palette for terminal output.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8884d8")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	riskStyles  = map[string]lipgloss.Style{ //nolint:gochecknoglobals // fixed risk palette
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("#00c49f")),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc658")),
		"High":   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8042")),
	}
)

// Printer writes views to w.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Scores prints the full aggregate view.
func (p *Printer) Scores(v aggregate.View) {
	p.title("Summary")
	p.table([]string{"Total", "Promising (>= 8)", "High risk (<= 3)"}, [][]string{{
		strconv.Itoa(v.Summary.Total),
		strconv.Itoa(v.Summary.Promising),
		strconv.Itoa(v.Summary.HighRisk),
	}})

	if v.Summary.Total == 0 {
		p.line(mutedStyle.Render("No data available."))
		return
	}

	p.title("Score distribution")
	bins := make([][]string, 0, len(v.Histogram))
	for _, b := range v.Histogram {
		bins = append(bins, []string{b.Label, strconv.Itoa(b.Count)})
	}
	p.table([]string{"Range", "Count"}, bins)

	p.title("Average sub-scores")
	p.table([]string{"Sentiment", "Engagement", "Stability"}, [][]string{{
		strconv.FormatFloat(v.Averages.Sentiment, 'f', 2, 64),
		strconv.FormatFloat(v.Averages.Engagement, 'f', 2, 64),
		strconv.FormatFloat(v.Averages.Stability, 'f', 2, 64),
	}})

	p.ranking("Top coins", v.Top)
	p.ranking("Bottom coins", v.Bottom)
	p.ranking("Top promising", v.Promising)
	p.ranking("High-risk alerts", v.Alerts)
}

// Detail prints one detail view section by section.
func (p *Printer) Detail(d present.DetailView) {
	p.line(titleStyle.Render(d.Title))
	for _, s := range d.Sections {
		p.title(s.Title)
		rows := make([][]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			rows = append(rows, []string{f.Label, f.Value})
		}
		p.table([]string{"Field", "Value"}, rows)
	}
}

// Message prints a muted one-line note.
func (p *Printer) Message(msg string) {
	p.line(mutedStyle.Render(msg))
}

func (p *Printer) ranking(name string, ranked []model.ScoredEntity) {
	p.title(name)
	if len(ranked) == 0 {
		p.line(mutedStyle.Render("None."))
		return
	}
	rows := make([][]string, 0, len(ranked))
	for i, r := range present.Rows(ranked) {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Identifier, r.QueryTerm, r.Overall, r.Risk})
	}
	p.table([]string{"#", "Coin", "Query", "Score", "Risk"}, rows)
}

func (p *Printer) title(s string) {
	p.line(titleStyle.Render(s))
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *Printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				if st, ok := riskStyles[rows[row][col]]; ok {
					return st.Padding(0, 1)
				}
			}
			return cellStyle
		})
	p.line(t.Render())
}
