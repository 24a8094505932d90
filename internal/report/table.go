package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// Styles used by the table renderer.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Good:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	}
}

// Table writes o as a styled header followed by assignment and summary
// tables.
func Table(w io.Writer, o *network.Outcome) error {
	return DefaultStyles().Table(w, o)
}

func (st Styles) Table(w io.Writer, o *network.Outcome) error {
	var b strings.Builder

	status := st.Bad.Render(o.Status)
	if o.Feasible() {
		status = st.Good.Render(o.Status)
	}
	b.WriteString(st.Title.Render(o.Scenario) + " " + status + "\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf("run %s  %s  %d variables  %d constraints  %s",
		o.RunID, o.Kind, o.Variables, o.Constraints, o.Duration.Round(time.Millisecond))) + "\n")

	if !o.Feasible() {
		_, err := io.WriteString(w, b.String())
		return err
	}

	if len(o.Open) > 0 {
		b.WriteString("Open: " + strings.Join(o.Open, ", ") + "\n")
	}

	rows := make([][]string, 0, len(o.Assignments))
	for _, a := range o.Assignments {
		rows = append(rows, []string{a.Name, Number(a.Value)})
	}
	b.WriteString(st.grid([]string{"Variable", "Value"}, rows).Render() + "\n")

	summary := make([][]string, 0, len(o.Summary)+1)
	for _, l := range o.Summary {
		summary = append(summary, []string{l.Label, Number(l.Value)})
	}
	summary = append(summary, []string{"Total cost", Number(o.Objective)})
	b.WriteString(st.grid([]string{"Summary", ""}, summary).Render() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// History writes a one-line-per-run table of stored outcomes.
func History(w io.Writer, outcomes []*network.Outcome) error {
	return DefaultStyles().History(w, outcomes)
}

func (st Styles) History(w io.Writer, outcomes []*network.Outcome) error {
	if len(outcomes) == 0 {
		_, err := io.WriteString(w, st.Muted.Render("no runs recorded")+"\n")
		return err
	}
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{
			o.RunID,
			o.StartedAt.Format("2006-01-02 15:04:05"),
			o.Scenario,
			o.Status,
			Number(o.Objective),
			strconv.Itoa(len(o.Open)),
		})
	}
	t := st.grid([]string{"Run", "Started", "Scenario", "Status", "Objective", "Open"}, rows)
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// ScenarioEntry is one line of the scenario listing: the reference the CLI
// accepts and the scenario it loads.
type ScenarioEntry struct {
	Ref      string
	Scenario *scenario.Scenario
}

// Scenarios writes a borderless listing of scenarios, one per line.
func Scenarios(w io.Writer, entries []ScenarioEntry) error {
	return DefaultStyles().Scenarios(w, entries)
}

func (st Styles) Scenarios(w io.Writer, entries []ScenarioEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Ref, string(e.Scenario.Kind), e.Scenario.Description})
	}
	t := st.grid([]string{"NAME", "KIND", "DESCRIPTION"}, rows).
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false)
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func (st Styles) grid(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return st.Cell
		})
}
