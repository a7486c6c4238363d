// Package listview derives the visible subset of a fetched entity list
// from a tab/status/text filter. It is the one piece of logic every list
// page shares.
//
// The derivation is pure and total: given the same source slice and
// filter, the result is identical and order-preserving, with no side
// effects — it is safe to recompute on every filter change without
// touching the store. The visible set is always a subset of the source
// set.
package listview

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Tab selects the time bucket of a list page.
type Tab string

const (
	// TabAll passes every record through.
	TabAll Tab = "all"
	// TabToday keeps records created on the current local calendar day.
	// This is an exact-day match, not a rolling 24-hour window.
	TabToday Tab = "today"
)

// ParseTab maps a query-parameter value to a Tab, defaulting to TabAll.
func ParseTab(s string) Tab {
	if strings.EqualFold(s, string(TabToday)) {
		return TabToday
	}
	return TabAll
}

// Filter is the view-owned filter state. It is never persisted.
type Filter struct {
	Tab    Tab
	Status string // exact match on the lifecycle field; "" disables
	Query  string // case-insensitive substring match on the name; "" disables

	// Now is the reference instant for the Today bucket. Location, when
	// set, fixes the calendar used for day bucketing; otherwise Now's own
	// location applies.
	Now      time.Time
	Location *time.Location
}

// Entry is the projection of a record that filtering inspects.
type Entry struct {
	CreatedAt time.Time
	Status    string
	Name      string
}

// fold performs Unicode case folding for the free-text match. Folding,
// rather than a simple ToLower, keeps the comparison correct for
// non-ASCII names.
var fold = cases.Fold()

// Visible returns the records of src that pass f, preserving src order.
// project extracts the fields the filter inspects from each record.
func Visible[T any](src []T, f Filter, project func(T) Entry) []T {
	loc := f.Location
	if loc == nil {
		loc = f.Now.Location()
	}
	query := fold.String(strings.TrimSpace(f.Query))

	out := make([]T, 0, len(src))
	for _, rec := range src {
		e := project(rec)
		if f.Tab == TabToday && !SameDay(e.CreatedAt, f.Now, loc) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if query != "" && !strings.Contains(fold.String(e.Name), query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SameDay reports whether a and b fall on the same calendar day in loc.
// Both instants are truncated to midnight in loc before comparison, so a
// record from 23:59:59 yesterday is not "today" even if it is within 24
// hours of now.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
