package listview

import (
	"testing"
	"time"
)

type rec struct {
	name    string
	status  string
	created time.Time
}

func project(r rec) Entry {
	return Entry{CreatedAt: r.created, Status: r.status, Name: r.name}
}

func names(rs []rec) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.name
	}
	return out
}

func TestParseTab(t *testing.T) {
	cases := map[string]Tab{
		"today":   TabToday,
		"TODAY":   TabToday,
		"all":     TabAll,
		"":        TabAll,
		"weekly":  TabAll,
		"Today ":  TabAll, // no trimming: the UI sends clean values
		"toDaY":   TabToday,
		"garbage": TabAll,
	}
	for in, want := range cases {
		if got := ParseTab(in); got != want {
			t.Fatalf("ParseTab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVisible_TodayIsCalendarDayNotRollingWindow(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)

	src := []rec{
		// 90 minutes ago but yesterday on the calendar: must be excluded.
		{name: "late-yesterday", created: now.Add(-90 * time.Minute)},
		{name: "early-today", created: time.Date(2025, 3, 10, 0, 5, 0, 0, loc)},
		{name: "later-today", created: time.Date(2025, 3, 10, 23, 59, 0, 0, loc)},
		{name: "tomorrow", created: time.Date(2025, 3, 11, 0, 1, 0, 0, loc)},
	}

	got := Visible(src, Filter{Tab: TabToday, Now: now, Location: loc}, project)
	want := []string{"early-today", "later-today"}
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].name != want[i] {
			t.Fatalf("visible = %v, want %v", names(got), want)
		}
	}
}

func TestVisible_TodayAcrossZones(t *testing.T) {
	// The same instant can be today in one zone and tomorrow in another;
	// the filter's location decides.
	utc := time.UTC
	tokyo := time.FixedZone("JST", 9*3600)

	created := time.Date(2025, 3, 10, 20, 0, 0, 0, utc) // 2025-03-11 05:00 JST
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, utc)

	src := []rec{{name: "x", created: created}}

	if got := Visible(src, Filter{Tab: TabToday, Now: now, Location: utc}, project); len(got) != 1 {
		t.Fatalf("expected visible in UTC, got %v", names(got))
	}
	if got := Visible(src, Filter{Tab: TabToday, Now: now, Location: tokyo}, project); len(got) != 0 {
		t.Fatalf("expected hidden in JST, got %v", names(got))
	}
}

func TestVisible_FiltersCompose(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	today := now.Add(-time.Hour)
	lastWeek := now.AddDate(0, 0, -7)

	src := []rec{
		{name: "Asha Traders", status: "active", created: today},
		{name: "Bharat Metals", status: "pending", created: today},
		{name: "asha retail", status: "active", created: lastWeek},
		{name: "Chand & Co", status: "active", created: today},
	}

	got := Visible(src, Filter{
		Tab:      TabToday,
		Status:   "active",
		Query:    "ASHA",
		Now:      now,
		Location: time.UTC,
	}, project)

	if len(got) != 1 || got[0].name != "Asha Traders" {
		t.Fatalf("visible = %v, want [Asha Traders]", names(got))
	}
}

func TestVisible_QueryIsCaseFolded(t *testing.T) {
	src := []rec{
		{name: "İstanbul Alloys"}, // dotted capital I folds to i
		{name: "plain metals"},
	}
	got := Visible(src, Filter{Query: "istanbul"}, project)
	if len(got) != 1 || got[0].name != "İstanbul Alloys" {
		t.Fatalf("case folding failed: %v", names(got))
	}
}

func TestVisible_PreservesOrderAndIsPure(t *testing.T) {
	now := time.Now()
	src := []rec{
		{name: "c", status: "active", created: now},
		{name: "a", status: "active", created: now},
		{name: "b", status: "pending", created: now},
	}

	f := Filter{Status: "active", Now: now}
	first := Visible(src, f, project)
	second := Visible(src, f, project)

	if len(first) != 2 || first[0].name != "c" || first[1].name != "a" {
		t.Fatalf("order not preserved: %v", names(first))
	}
	if len(second) != len(first) {
		t.Fatalf("recomputation diverged: %v vs %v", names(first), names(second))
	}
	// Source untouched.
	if src[0].name != "c" || src[1].name != "a" || src[2].name != "b" {
		t.Fatalf("source mutated: %v", names(src))
	}
}

func TestVisible_EmptyFilterPassesEverything(t *testing.T) {
	src := []rec{{name: "one"}, {name: "two"}}
	got := Visible(src, Filter{Now: time.Now()}, project)
	if len(got) != 2 {
		t.Fatalf("expected all records, got %v", names(got))
	}
}
