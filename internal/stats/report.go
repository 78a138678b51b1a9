package stats

import (
	"time"

	"dreamlog/internal/journal"
)

// Report bundles every derived view of one aggregation pass. A report is
// computed whole: readers never see a week chart from one refresh next to a
// histogram from another.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalEntries int `json:"total_entries"`
	DatedEntries int `json:"dated_entries"`

	PerWeek  []BucketCount `json:"per_week"`
	PerMonth []BucketCount `json:"per_month"`

	TypeCounts    map[journal.DreamType]int `json:"type_counts"`
	FrequentWords []WordCount               `json:"frequent_words"`
	PerDay        map[string]int            `json:"per_day"`
	Series        []Point                   `json:"series"`

	TopCharacters []NameCount `json:"top_characters"`
	TopLocations  []NameCount `json:"top_locations"`
	TopTags       []NameCount `json:"top_tags"`

	AvgIntensityByType map[journal.DreamType]float64 `json:"avg_intensity_by_type"`
	AvgQualityByType   map[journal.DreamType]float64 `json:"avg_quality_by_type"`

	MoonPhaseCounts [4]int `json:"moon_phase_counts"`
}

// Compute normalizes entries once and runs every aggregator over the same
// immutable row slice. Undated entries still count toward TotalEntries.
func Compute(entries []journal.Entry, now time.Time) Report {
	rows := Normalize(entries)

	characters := make([]string, 0, len(rows))
	locations := make([]string, 0, len(rows))
	var tags []string
	for _, r := range rows {
		characters = append(characters, r.Character)
		locations = append(locations, r.Location)
		tags = append(tags, r.Tags...)
	}

	return Report{
		GeneratedAt:  now,
		TotalEntries: len(entries),
		DatedEntries: len(rows),

		PerWeek:  PerWeek(rows),
		PerMonth: PerMonth(rows),

		TypeCounts:    TypeHistogram(rows),
		FrequentWords: FrequentWords(rows),
		PerDay:        ByDay(rows),
		Series:        Series(rows),

		TopCharacters: TopN(characters, topEntityCount),
		TopLocations:  TopN(locations, topEntityCount),
		TopTags:       TopN(tags, topEntityCount),

		AvgIntensityByType: AverageByType(rows, func(r Row) *int { return r.Intensity }),
		AvgQualityByType:   AverageByType(rows, func(r Row) *int { return r.Quality }),

		MoonPhaseCounts: MoonHistogram(rows),
	}
}
