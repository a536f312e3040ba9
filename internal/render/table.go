package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/njt/grsched/libgaroon"
)

// columnGap separates cells in space aligned tables
const columnGap = "  "

// EventHeaders are the column titles of the event table
var EventHeaders = []string{"id", "Date and time", "Subject"}

// UserHeaders and OrganizationHeaders title the directory listings
var (
	UserHeaders         = []string{"id", "name", "code"}
	OrganizationHeaders = []string{"id", "name", "code", "parent"}
)

// TableRow is the display form of one event
type TableRow struct {
	ID      string
	Range   string
	Subject string
}

// Cells returns the row in column order
func (r TableRow) Cells() []string {
	return []string{r.ID, r.Range, r.Subject}
}

// Row renders an event for the table. allDay switches the range to
// "date - all day"; it does not change the timestamps used for styling.
func Row(ev *libgaroon.Event, allDay bool) TableRow {
	row := TableRow{
		ID:      ev.ID.String(),
		Subject: ev.DisplaySubject(),
	}

	if tr := ev.TimeRange; tr != nil {
		if allDay {
			tr = tr.AllDay()
		}
		row.Range = tr.String()
	}

	return row
}

// Table is a space aligned table. Rows are styled either by their time range
// (Ranges) or by alternating shading (AltRows).
type Table struct {
	Headers []string
	Rows    [][]string

	// Ranges holds the time range behind each row; nil entries are not styled
	Ranges []*libgaroon.TimeRange

	AltRows bool

	// RightAlign marks numeric columns
	RightAlign []bool
}

// NewEventTable builds the event listing table
func NewEventTable(events []*libgaroon.Event) *Table {
	t := &Table{
		Headers:    EventHeaders,
		Rows:       make([][]string, 0, len(events)),
		Ranges:     make([]*libgaroon.TimeRange, 0, len(events)),
		RightAlign: []bool{true, false, false},
	}

	for _, ev := range events {
		t.Rows = append(t.Rows, Row(ev, ev.IsAllDay).Cells())
		t.Ranges = append(t.Ranges, ev.TimeRange)
	}

	return t
}

// StyleForRow classifies row i against now
func (t *Table) StyleForRow(i int, now time.Time) Style {
	if i < 0 || i >= len(t.Ranges) {
		return Style{}
	}
	return Classify(t.Ranges[i], now)
}

func (t *Table) rowPaint(i int, now time.Time) paint {
	if t.AltRows {
		if i%2 == 1 {
			return paint{bg: &AltRowShade}
		}
		return paint{}
	}
	return t.StyleForRow(i, now).paint()
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *Table) pad(col int, cell string, width int) string {
	gap := width - runewidth.StringWidth(cell)
	if gap <= 0 {
		return cell
	}
	if col < len(t.RightAlign) && t.RightAlign[col] {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

// Write renders the table. The header row is never styled; other rows are
// styled as a whole, separators included.
func (t *Table) Write(w io.Writer, now time.Time) error {
	bw := bufio.NewWriter(w)
	widths := t.widths()

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = t.pad(i, h, widths[i])
	}
	fmt.Fprintln(bw, strings.TrimRight(strings.Join(header, columnGap), " "))

	for i, row := range t.Rows {
		p := t.rowPaint(i, now)

		var line strings.Builder
		for col := range t.Headers {
			if col > 0 {
				line.WriteString(p.separator(columnGap))
			}
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			line.WriteString(p.apply(t.pad(col, cell, widths[col])))
		}
		fmt.Fprintln(bw, line.String())
	}

	return bw.Flush()
}

// RenderTable writes the event listing, classifying every row against now
func RenderTable(w io.Writer, events []*libgaroon.Event, now time.Time) error {
	return NewEventTable(events).Write(w, now)
}

// RenderDirectory writes a users or organizations listing with alternating row shading
func RenderDirectory(w io.Writer, headers []string, rows [][]string) error {
	t := &Table{
		Headers:    headers,
		Rows:       rows,
		AltRows:    true,
		RightAlign: []bool{true},
	}
	return t.Write(w, time.Time{})
}

// EntityRows converts directory entries to id/name/code rows
func EntityRows(entities []*libgaroon.Entity) [][]string {
	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{e.ID.String(), e.Name, e.Code})
	}
	return rows
}

// OrganizationRows converts organizations to id/name/code/parent rows
func OrganizationRows(orgs []*libgaroon.Organization) [][]string {
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{o.ID.String(), o.Name, o.Code, o.ParentOrganization})
	}
	return rows
}
