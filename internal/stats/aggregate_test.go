package stats

import (
	"testing"
	"time"

	"dreamlog/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedRow(day int) Row {
	d := time.Date(2025, time.January, day, 9, 0, 0, 0, time.Local)
	return Row{Date: d, Week: StartOfWeek(d), Month: StartOfMonth(d), Phase: MoonPhase(d)}
}

func TestPerWeekGroupsAndSorts(t *testing.T) {
	// 6..12 Jan 2025 is one Monday-aligned week, 13..19 the next.
	rows := []Row{datedRow(14), datedRow(6), datedRow(8), datedRow(6)}

	out := PerWeek(rows)
	require.Len(t, out, 2)

	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local), out[0].Start)
	assert.Equal(t, 3, out[0].Count)
	assert.Equal(t, time.Date(2025, time.January, 13, 0, 0, 0, 0, time.Local), out[1].Start)
	assert.Equal(t, 1, out[1].Count)
}

func TestPerMonthGroupsAndSorts(t *testing.T) {
	jan := datedRow(10)
	mar := Row{Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local)}
	mar.Week, mar.Month = StartOfWeek(mar.Date), StartOfMonth(mar.Date)

	out := PerMonth([]Row{mar, jan, jan})
	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local), out[0].Start)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 1, out[1].Count)
}

func TestBucketTotalsMatchRowCount(t *testing.T) {
	rows := []Row{datedRow(1), datedRow(6), datedRow(6), datedRow(14), datedRow(31)}

	sumWeek, sumMonth := 0, 0
	for _, b := range PerWeek(rows) {
		sumWeek += b.Count
	}
	for _, b := range PerMonth(rows) {
		sumMonth += b.Count
	}
	assert.Equal(t, len(rows), sumWeek, "no row lost or double-counted across weeks")
	assert.Equal(t, len(rows), sumMonth, "no row lost or double-counted across months")
}

func TestTypeHistogramCountsEveryRowOnce(t *testing.T) {
	rows := []Row{
		{Type: journal.TypeLucid},
		{Type: journal.TypeLucid},
		{Type: journal.TypeNightmare},
		{Type: ""}, // unset lands in "other"
	}

	h := TypeHistogram(rows)
	assert.Equal(t, 2, h[journal.TypeLucid])
	assert.Equal(t, 1, h[journal.TypeNightmare])
	assert.Equal(t, 1, h[journal.TypeOther])

	total := 0
	for _, n := range h {
		total += n
	}
	assert.Equal(t, len(rows), total)
}

func TestFrequentWordsTokenization(t *testing.T) {
	rows := []Row{
		{Text: "J'ai vu un grand lac et une forêt sombre!"},
		{Text: "Une forêt calme, près du lac."},
	}

	out := FrequentWords(rows)

	counts := map[string]int{}
	for _, w := range out {
		counts[w.Word] = w.Count
	}
	assert.Equal(t, 2, counts["forêt"], "accented letters survive tokenization")
	assert.Equal(t, 1, counts["grand"])
	assert.Equal(t, 1, counts["calme"])
	assert.Equal(t, 1, counts["sombre"])
	assert.NotContains(t, counts, "lac", "three-letter tokens are discarded")
	assert.NotContains(t, counts, "une", "stopwords are discarded")
	assert.Equal(t, 1, counts["près"], "rune count, not byte count: près has 4 letters")
}

func TestFrequentWordsOrderAndCap(t *testing.T) {
	rows := []Row{{Text: "bateau bateau montagne rivière rivière rivière plage neige orage tempête falaise colline sentier"}}

	out := FrequentWords(rows)
	require.LessOrEqual(t, len(out), 8)

	assert.Equal(t, "rivière", out[0].Word)
	assert.Equal(t, 3, out[0].Count)
	assert.Equal(t, "bateau", out[1].Word)
	assert.Equal(t, 2, out[1].Count)
	// All singletons keep first-encountered order.
	assert.Equal(t, "montagne", out[2].Word)
	assert.Equal(t, "plage", out[3].Word)
}

func TestFrequentWordsIdempotent(t *testing.T) {
	rows := []Row{
		{Text: "tempête sur la montagne, tempête dans la vallée"},
		{Text: "montagne vallée montagne"},
	}
	first := FrequentWords(rows)
	second := FrequentWords(rows)
	assert.Equal(t, first, second)
}

func TestByDayUsesLocalCalendarKey(t *testing.T) {
	late := Row{Date: time.Date(2025, time.January, 6, 23, 59, 0, 0, time.Local)}
	early := Row{Date: time.Date(2025, time.January, 7, 0, 30, 0, 0, time.Local)}

	m := ByDay([]Row{late, early, early})
	assert.Equal(t, 1, m["2025-01-06"])
	assert.Equal(t, 2, m["2025-01-07"])
}

func TestSeriesRequiresBothRatings(t *testing.T) {
	d1 := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	rows := []Row{
		{Date: d1, Intensity: intp(4), Quality: intp(9)},
		{Date: d2, Intensity: intp(2), Quality: intp(5)},
		{Date: d2, Intensity: intp(7)}, // missing quality: excluded, not zero-filled
		{Date: d2, Quality: intp(7)},   // missing intensity: excluded
	}

	out := Series(rows)
	require.Len(t, out, 2)
	assert.Equal(t, d2, out[0].Date, "chronological order")
	assert.Equal(t, 2, out[0].Intensity)
	assert.Equal(t, 9, out[1].Quality)
}

func TestTopN(t *testing.T) {
	values := []string{"lac", " lac ", "forêt", "", "   ", "mer", "forêt", "lac", "plage", "île", "grotte", "pont"}

	out := TopN(values, 5)
	require.Len(t, out, 5)

	assert.Equal(t, NameCount{Name: "lac", Count: 3}, out[0])
	assert.Equal(t, NameCount{Name: "forêt", Count: 2}, out[1])
	// Singletons tie: first-encountered order.
	assert.Equal(t, "mer", out[2].Name)
	assert.Equal(t, "plage", out[3].Name)
	assert.Equal(t, "île", out[4].Name)

	seen := map[string]bool{}
	for _, nc := range out {
		assert.NotEmpty(t, nc.Name)
		assert.False(t, seen[nc.Name], "no duplicate values")
		seen[nc.Name] = true
	}
}

func TestTopNNeverExceedsN(t *testing.T) {
	out := TopN([]string{"a", "b", "c"}, 2)
	assert.Len(t, out, 2)
}

func TestAverageByType(t *testing.T) {
	rows := []Row{
		{Type: journal.TypeLucid, Intensity: intp(4)},
		{Type: journal.TypeLucid, Intensity: intp(8)},
		{Type: journal.TypePleasant}, // no rating: does not qualify
	}

	avg := AverageByType(rows, func(r Row) *int { return r.Intensity })

	assert.Equal(t, 6.0, avg[journal.TypeLucid])
	assert.Equal(t, 0.0, avg[journal.TypeNightmare], "empty category reports 0, not NaN")
	assert.Equal(t, 0.0, avg[journal.TypePleasant], "unrated rows do not qualify")
	assert.Equal(t, 0.0, avg[journal.TypeOther])
	assert.Len(t, avg, 4, "fixed category axis")
}

func TestMoonHistogramTotalAndBounds(t *testing.T) {
	rows := []Row{
		{Phase: 0.0},
		{Phase: 0.249},
		{Phase: 0.25},
		{Phase: 0.5},
		{Phase: 0.75},
		{Phase: 0.999999},
	}

	buckets := MoonHistogram(rows)
	assert.Equal(t, [4]int{2, 1, 1, 2}, buckets)

	total := 0
	for _, n := range buckets {
		total += n
	}
	assert.Equal(t, len(rows), total, "every row lands in exactly one bucket")
}
