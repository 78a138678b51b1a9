package handler

import (
	"testing"

	"dreamlog/internal/journal"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestValidateEntry(t *testing.T) {
	cases := []struct {
		name  string
		entry journal.Entry
		want  string
	}{
		{"minimal", journal.Entry{Text: "un rêve"}, ""},
		{"valid type", journal.Entry{Type: journal.TypeNightmare}, ""},
		{"unknown type", journal.Entry{Type: "spooky"}, "invalid dreamType"},
		{"intensity high", journal.Entry{Intensity: intp(11)}, "intensity out of range [0,10]"},
		{"intensity negative", journal.Entry{Intensity: intp(-1)}, "intensity out of range [0,10]"},
		{"quality high", journal.Entry{Quality: intp(12)}, "qualityDream out of range [0,10]"},
		{"rating bounds", journal.Entry{Intensity: intp(0), Quality: intp(10)}, ""},
		{"bad iso", journal.Entry{DateISO: "last tuesday"}, "invalid dateISO (RFC3339)"},
		{"good iso", journal.Entry{DateISO: "2025-10-24T10:20:00.000Z"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateEntry(&tc.entry))
		})
	}
}

func TestValidateEntrySanitizesTags(t *testing.T) {
	e := journal.Entry{Tags: []string{"#Forêt", "nuit  froide", "a", "b", "c"}}
	assert.Empty(t, validateEntry(&e))
	assert.Equal(t, []string{"forêt", "nuit-froide", "a"}, e.Tags)
}
