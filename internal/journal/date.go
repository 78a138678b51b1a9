package journal

import (
	"strconv"
	"strings"
	"time"
)

// ResolvedDate places the entry on a timeline. The canonical timestamp wins;
// the display string is a fallback for entries written before dateISO existed.
// Entries with neither, or with strings that do not parse, report ok=false
// and stay off every date-ordered view.
func (e Entry) ResolvedDate() (time.Time, bool) {
	if e.DateISO != "" {
		if t, err := time.Parse(time.RFC3339, e.DateISO); err == nil {
			return t, true
		}
	}
	if e.DateDisplay != "" {
		if t, ok := parseDisplayDate(e.DateDisplay); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDisplayDate reads the locale form "DD/MM/YYYY". Non-numeric components
// and impossible calendar dates ("31/02/2025") are rejected, not normalized.
func parseDisplayDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if day < 1 || month < 1 || month > 12 || year < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date rolls 31/02 over into March; detect and reject.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// ResolvedType maps the entry onto the closed category set: the explicit
// dreamType field when valid, else the legacy lucid flag, else unset ("").
func (e Entry) ResolvedType() DreamType {
	switch e.Type {
	case TypeLucid, TypeNightmare, TypePleasant:
		return e.Type
	}
	if e.IsLucid {
		return TypeLucid
	}
	return ""
}
