package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/njt/grsched/libgaroon"
)

func TestRow(t *testing.T) {
	ev := newEvent(42, "Weekly sync", span(at(0, 10, 0), at(0, 11, 30)))
	ev.MenuLabel = "Meeting"

	row := Row(ev, false)
	if row.ID != "42" || row.Range != "2024/03/01 10:00 - 11:30" || row.Subject != "Meeting: Weekly sync" {
		t.Errorf("Unexpected row %+v", row)
	}

	allDay := Row(ev, true)
	if allDay.Range != "2024/03/01 - all day" {
		t.Errorf("Expected all-day range, got %q", allDay.Range)
	}
	if ev.TimeRange.EndFormat != libgaroon.TimeLayout {
		t.Error("Row must not change the event's range formats")
	}

	template := newEvent(7, "Standup", nil)
	if got := Row(template, false); got.Range != "" {
		t.Errorf("Expected empty range for a template, got %q", got.Range)
	}
}

func TestRenderTable(t *testing.T) {
	setNoColor(t, true)

	holiday := newEvent(123, "Holiday", span(at(0, 0, 0), at(0, 23, 59)))
	holiday.IsAllDay = true
	meeting := newEvent(1, "Weekly sync", span(at(0, 10, 0), at(0, 11, 30)))
	meeting.MenuLabel = "Meeting"

	var buf bytes.Buffer
	if err := RenderTable(&buf, []*libgaroon.Event{meeting, holiday}, at(0, 12, 0)); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}

	want := []string{
		" id  Date and time             Subject",
		"  1  2024/03/01 10:00 - 11:30  Meeting: Weekly sync",
		"123  2024/03/01 - all day      Holiday             ",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
}

func TestRenderTableStylesWholeRow(t *testing.T) {
	setNoColor(t, false)

	ongoing := newEvent(1, "Now", span(at(0, 11, 0), at(0, 13, 0)))
	future := newEvent(2, "Later", span(at(1, 9, 0), at(1, 10, 0)))

	var buf bytes.Buffer
	if err := RenderTable(&buf, []*libgaroon.Event{ongoing, future}, at(0, 12, 0)); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if strings.Contains(lines[0], "\x1b[") {
		t.Errorf("Expected unstyled header, got %q", lines[0])
	}

	// three cells and two separators
	if n := strings.Count(lines[1], "48;2;139;0;0"); n != 5 {
		t.Errorf("Expected 5 dark red segments in the ongoing row, got %d: %q", n, lines[1])
	}
	if strings.Contains(lines[2], "\x1b[") {
		t.Errorf("Expected unstyled future row, got %q", lines[2])
	}
}

func TestTableStyleForRow(t *testing.T) {
	events := []*libgaroon.Event{
		newEvent(1, "ended", span(at(-1, 9, 0), at(-1, 10, 0))),
		newEvent(2, "template", nil),
	}
	table := NewEventTable(events)
	now := at(0, 12, 0)

	if s := table.StyleForRow(0, now); !s.Ended || s.Bucket != BucketNone {
		t.Errorf("Expected ended row, got %+v", s)
	}
	if s := table.StyleForRow(1, now); !s.IsZero() {
		t.Errorf("Expected unstyled template row, got %+v", s)
	}
	if s := table.StyleForRow(5, now); !s.IsZero() {
		t.Errorf("Expected out of range row to be unstyled, got %+v", s)
	}
}

func TestRenderDirectory(t *testing.T) {
	setNoColor(t, true)

	users := []*libgaroon.User{
		{ID: 1, Name: "Alice", Code: "alice"},
		{ID: 12, Name: "山田 太郎", Code: "yamada"},
	}

	var buf bytes.Buffer
	if err := RenderDirectory(&buf, []string{"id", "name", "code"}, EntityRows(users)); err != nil {
		t.Fatalf("RenderDirectory failed: %v", err)
	}

	want := []string{
		"id  name       code",
		" 1  Alice      alice ",
		"12  山田 太郎  yamada",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
}

func TestRenderDirectoryAltRows(t *testing.T) {
	setNoColor(t, false)

	rows := [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}}

	var buf bytes.Buffer
	if err := RenderDirectory(&buf, []string{"id", "name"}, rows); err != nil {
		t.Fatalf("RenderDirectory failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	shade := "48;2;38;38;38"
	if strings.Contains(lines[1], shade) || strings.Contains(lines[3], shade) {
		t.Errorf("Expected odd data rows unshaded: %q", buf.String())
	}
	if !strings.Contains(lines[2], shade) {
		t.Errorf("Expected second data row shaded: %q", lines[2])
	}
}

func TestOrganizationRows(t *testing.T) {
	orgs := []*libgaroon.Organization{
		{Entity: libgaroon.Entity{ID: 2, Name: "Development", Code: "dev"}, ParentOrganization: "1"},
	}

	rows := OrganizationRows(orgs)
	if len(rows) != 1 || strings.Join(rows[0], "|") != "2|Development|dev|1" {
		t.Errorf("Unexpected rows %v", rows)
	}
}
