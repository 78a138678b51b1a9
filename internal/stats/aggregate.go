package stats

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"dreamlog/internal/journal"
)

// topWordCount and topEntityCount are the chart sizes the client renders.
const (
	topWordCount   = 8
	topEntityCount = 5
)

// stopwords are short French function words excluded from word frequencies.
var stopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "de": {}, "des": {}, "et": {},
	"un": {}, "une": {}, "du": {}, "en": {}, "à": {}, "au": {}, "aux": {},
	"que": {}, "qui": {}, "dans": {}, "pour": {}, "avec": {}, "sur": {},
}

// BucketCount is one bar of a temporal chart.
type BucketCount struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// WordCount is one bar of the frequent-words chart.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// NameCount is one line of a top-N ranking.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Point is one sample of the intensity/quality time series.
type Point struct {
	Date      time.Time `json:"date"`
	Intensity int       `json:"intensity"`
	Quality   int       `json:"quality"`
}

// PerWeek counts rows per Monday-aligned week, ascending. Weeks with no
// entries produce no bucket.
func PerWeek(rows []Row) []BucketCount {
	return bucketize(rows, func(r Row) time.Time { return r.Week })
}

// PerMonth counts rows per calendar month, ascending.
func PerMonth(rows []Row) []BucketCount {
	return bucketize(rows, func(r Row) time.Time { return r.Month })
}

func bucketize(rows []Row, key func(Row) time.Time) []BucketCount {
	counts := map[time.Time]int{}
	for _, r := range rows {
		counts[key(r)]++
	}
	out := make([]BucketCount, 0, len(counts))
	for start, n := range counts {
		out = append(out, BucketCount{Start: start, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// TypeHistogram counts rows per category. A row without a resolvable category
// lands in "other"; every row is counted exactly once.
func TypeHistogram(rows []Row) map[journal.DreamType]int {
	counts := map[journal.DreamType]int{}
	for _, r := range rows {
		t := r.Type
		if t == "" {
			t = journal.TypeOther
		}
		counts[t]++
	}
	return counts
}

// FrequentWords extracts the most frequent qualifying tokens across all
// narrative texts. Tokens of three characters or fewer and stopwords are
// discarded; ties keep first-encountered order.
func FrequentWords(rows []Row) []WordCount {
	counts := map[string]int{}
	var order []string // first-seen order, the tiebreak

	for _, r := range rows {
		text := strings.Map(func(c rune) rune {
			if unicode.IsLetter(c) || unicode.IsSpace(c) || c == '-' {
				return c
			}
			return ' '
		}, strings.ToLower(r.Text))

		for _, w := range strings.Fields(text) {
			if utf8.RuneCountInString(w) <= 3 {
				continue
			}
			if _, stop := stopwords[w]; stop {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > topWordCount {
		order = order[:topWordCount]
	}
	out := make([]WordCount, len(order))
	for i, w := range order {
		out[i] = WordCount{Word: w, Count: counts[w]}
	}
	return out
}

// ByDay maps local calendar days ("2006-01-02") to entry counts. The key is
// built from local date fields, not a UTC-normalized instant, so a dream
// logged at 00:30 does not slide to the previous day.
func ByDay(rows []Row) map[string]int {
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Date.Format("2006-01-02")]++
	}
	return counts
}

// Series is the chronological intensity/quality curve. Only rows carrying
// both ratings qualify; a missing rating is not a rating of zero.
func Series(rows []Row) []Point {
	out := make([]Point, 0, len(rows))
	for _, r := range rows {
		if r.Intensity == nil || r.Quality == nil {
			continue
		}
		out = append(out, Point{Date: r.Date, Intensity: *r.Intensity, Quality: *r.Quality})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TopN ranks the n most frequent distinct non-blank values, ties broken by
// first occurrence.
func TopN(values []string, n int) []NameCount {
	counts := map[string]int{}
	var order []string

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	out := make([]NameCount, len(order))
	for i, v := range order {
		out[i] = NameCount{Name: v, Count: counts[v]}
	}
	return out
}

// AverageByType is the per-category mean of one rating, computed over rows
// where that rating is present. Every category reports a value; zero
// qualifying rows mean exactly 0, keeping chart axes well-defined.
func AverageByType(rows []Row, pick func(Row) *int) map[journal.DreamType]float64 {
	sums := map[journal.DreamType]int{}
	counts := map[journal.DreamType]int{}
	for _, r := range rows {
		v := pick(r)
		if v == nil {
			continue
		}
		t := r.Type
		if t == "" {
			t = journal.TypeOther
		}
		sums[t] += *v
		counts[t]++
	}

	out := map[journal.DreamType]float64{
		journal.TypeLucid:     0,
		journal.TypeNightmare: 0,
		journal.TypePleasant:  0,
		journal.TypeOther:     0,
	}
	for t, n := range counts {
		out[t] = float64(sums[t]) / float64(n)
	}
	return out
}

// MoonHistogram counts rows per quartile of the synodic cycle. The index is
// clamped so a phase that rounds to exactly 1.0 still lands in the last
// bucket.
func MoonHistogram(rows []Row) [4]int {
	var buckets [4]int
	for _, r := range rows {
		q := int(r.Phase * 4)
		if q > 3 {
			q = 3
		}
		buckets[q]++
	}
	return buckets
}
