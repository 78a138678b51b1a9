package stats

import (
	"testing"
	"time"

	"dreamlog/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCountsUndatedEntriesInRawTotal(t *testing.T) {
	entries := []journal.Entry{
		{Text: "daté", DateDisplay: "06/01/2025"},
		{Text: "sans date"},
		{Text: "date impossible", DateDisplay: "31/02/2025"},
	}

	rep := Compute(entries, time.Now())
	assert.Equal(t, 3, rep.TotalEntries)
	assert.Equal(t, 1, rep.DatedEntries, "undated and malformed rows leave every temporal view")
	require.Len(t, rep.PerWeek, 1)
	assert.Equal(t, 1, rep.PerWeek[0].Count)
}

func TestComputeWeeklyScenario(t *testing.T) {
	// Two dreams on Monday 2025-01-06.
	entries := []journal.Entry{
		{Text: "J'ai vu un grand lac et une forêt", DateDisplay: "06/01/2025"},
		{Text: "Une forêt calme", DateDisplay: "06/01/2025"},
	}

	rep := Compute(entries, time.Now())

	require.Len(t, rep.PerWeek, 1)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local), rep.PerWeek[0].Start)
	assert.Equal(t, 2, rep.PerWeek[0].Count)

	require.NotEmpty(t, rep.FrequentWords)
	assert.Equal(t, WordCount{Word: "forêt", Count: 2}, rep.FrequentWords[0])
}

func TestComputeWholeReport(t *testing.T) {
	entries := []journal.Entry{
		{
			Text:        "le renard dans la forêt",
			DateDisplay: "06/01/2025",
			Type:        journal.TypeLucid,
			Intensity:   intp(4),
			Quality:     intp(6),
			Character:   "renard",
			Location:    "forêt",
			Tags:        []string{"#forêt"},
		},
		{
			Text:        "le renard revient",
			DateDisplay: "07/01/2025",
			Type:        journal.TypeLucid,
			Intensity:   intp(8),
			Quality:     intp(2),
			Character:   "renard",
			Location:    "ville",
		},
		{
			Text:        "chute sans fin",
			DateDisplay: "15/02/2025",
			Type:        journal.TypeNightmare,
		},
	}

	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.Local)
	rep := Compute(entries, now)

	assert.Equal(t, now, rep.GeneratedAt)
	assert.Equal(t, 3, rep.TotalEntries)
	assert.Equal(t, 3, rep.DatedEntries)

	assert.Equal(t, 2, rep.TypeCounts[journal.TypeLucid])
	assert.Equal(t, 1, rep.TypeCounts[journal.TypeNightmare])

	require.Len(t, rep.Series, 2, "unrated nightmare stays off the curve")
	assert.Equal(t, 6.0, rep.AvgIntensityByType[journal.TypeLucid])
	assert.Equal(t, 4.0, rep.AvgQualityByType[journal.TypeLucid])
	assert.Equal(t, 0.0, rep.AvgIntensityByType[journal.TypeNightmare])

	require.Len(t, rep.TopCharacters, 1)
	assert.Equal(t, NameCount{Name: "renard", Count: 2}, rep.TopCharacters[0])
	require.Len(t, rep.TopLocations, 2)
	assert.Equal(t, "forêt", rep.TopLocations[0].Name)
	require.Len(t, rep.TopTags, 1)
	assert.Equal(t, NameCount{Name: "forêt", Count: 1}, rep.TopTags[0])

	assert.Equal(t, 1, rep.PerDay["2025-01-06"])
	assert.Equal(t, 1, rep.PerDay["2025-01-07"])

	total := 0
	for _, n := range rep.MoonPhaseCounts {
		total += n
	}
	assert.Equal(t, 3, total)
}

func TestComputeEmptyJournal(t *testing.T) {
	rep := Compute(nil, time.Now())

	assert.Zero(t, rep.TotalEntries)
	assert.Zero(t, rep.DatedEntries)
	assert.Empty(t, rep.PerWeek)
	assert.Empty(t, rep.PerMonth)
	assert.Empty(t, rep.FrequentWords)
	assert.Empty(t, rep.Series)
	assert.Equal(t, 0.0, rep.AvgIntensityByType[journal.TypeLucid], "axes stay defined with no data")
}
