/*
Package report derives read-only aggregates from the product and sales
ledgers: period-scoped expense reports, client invoice reports, and the
dashboard metrics summary.

The complication every aggregate shares: a product's quantity column is its
CURRENT remaining stock, not the amount originally purchased, so "what was
this worth as of period X" has to be reconstructed from the sales log. That
reconstruction is a single pure function (reconstruct.go) over which the
period filters here are just predicates.

KEY CONCEPTS IN THIS FILE (period.go):
  - Period: a year, a year+month, or an exact day
  - Contains: the predicate applied to timestamps
  - Label: the display string, with month names localized from a fixed
    12-entry table in the configured language
*/
package report

import (
	"fmt"
	"time"
)

type periodKind int

const (
	periodYear periodKind = iota
	periodMonth
	periodDay
)

// Period scopes an aggregate to a year, a calendar month, or an exact day.
type Period struct {
	kind  periodKind
	year  int
	month time.Month
	day   string
}

// Year scopes to a 4-digit year.
func Year(year int) Period { return Period{kind: periodYear, year: year} }

// Month scopes to a calendar month of a given year.
func Month(year int, month time.Month) Period {
	return Period{kind: periodMonth, year: year, month: month}
}

// Day scopes to an exact date, given as the literal YYYY-MM-DD string.
func Day(date string) Period { return Period{kind: periodDay, day: date} }

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	switch p.kind {
	case periodYear:
		return t.Year() == p.year
	case periodMonth:
		return t.Year() == p.year && t.Month() == p.month
	default:
		return t.Format("2006-01-02") == p.day
	}
}

// Label renders the period for display: a 4-digit year, a localized
// "MonthName Year", or the literal date string.
func (p Period) Label(lang string) string {
	switch p.kind {
	case periodYear:
		return fmt.Sprintf("%04d", p.year)
	case periodMonth:
		return fmt.Sprintf("%s %04d", MonthName(lang, p.month), p.year)
	default:
		return p.day
	}
}

// Month name tables, one fixed 12-entry list per supported display
// language. French is the deployment default.
var monthNames = map[string][12]string{
	"fr": {
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	},
	"en": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// MonthName returns the localized month name, falling back to French for
// unknown languages.
func MonthName(lang string, m time.Month) string {
	names, ok := monthNames[lang]
	if !ok {
		names = monthNames["fr"]
	}
	return names[m-1]
}
