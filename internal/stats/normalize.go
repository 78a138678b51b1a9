// Package stats turns a raw journal sequence into the derived views the
// client charts: time-bucketed counts, histograms, rankings and correlations.
// Every function is pure and single-pass over an immutable row slice; malformed
// entries degrade by dropping out of a view, never by failing the whole report.
package stats

import (
	"math"
	"time"

	"dreamlog/internal/journal"
)

// synodicDays is the length of one lunar cycle.
const synodicDays = 29.530588853

// newMoonEpoch is a reference new moon the phase fraction is measured from.
var newMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// Row is the ephemeral, date-resolved projection of one entry. Rows are
// recomputed on every aggregation pass and discarded with it.
type Row struct {
	Date  time.Time
	Week  time.Time // Monday of Date's week, midnight local
	Month time.Time // first of Date's month

	Type      journal.DreamType // "" when the entry has no resolvable category
	Intensity *int
	Quality   *int
	Character string
	Location  string
	Tags      []string
	Text      string

	Phase float64 // lunar phase fraction in [0,1)
}

// Normalize projects entries onto rows. Entries without a resolvable date are
// dropped: they cannot be placed on any timeline, and dropping them here keeps
// every aggregator free of date handling.
func Normalize(entries []journal.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		date, ok := e.ResolvedDate()
		if !ok {
			continue
		}
		// Bucket by the viewer's calendar, not UTC: a dream logged at 00:30
		// local must not slide to the previous day or week.
		date = date.In(time.Local)
		rows = append(rows, Row{
			Date:      date,
			Week:      StartOfWeek(date),
			Month:     StartOfMonth(date),
			Type:      e.ResolvedType(),
			Intensity: e.Intensity,
			Quality:   e.Quality,
			Character: e.Character,
			Location:  e.Location,
			Tags:      journal.SanitizeTags(e.Tags),
			Text:      e.Text,
			Phase:     MoonPhase(date),
		})
	}
	return rows
}

// StartOfWeek is the Monday at or before t, truncated to midnight in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, t.Location())
}

// StartOfMonth is the first calendar day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MoonPhase is t's fractional position within the synodic cycle: 0 new moon,
// ~0.5 full moon. The double mod keeps the result in [0,1) for dates before
// the reference epoch.
func MoonPhase(t time.Time) float64 {
	days := t.Sub(newMoonEpoch).Hours() / 24
	phase := math.Mod(math.Mod(days, synodicDays)+synodicDays, synodicDays)
	return phase / synodicDays
}
