package journal

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// DreamType is the closed set of dream categories.
type DreamType string

const (
	TypeLucid     DreamType = "lucid"
	TypeNightmare DreamType = "nightmare"
	TypePleasant  DreamType = "pleasant"
	// TypeOther labels entries without a resolvable category in histograms.
	TypeOther DreamType = "other"
)

// MaxTags caps the tags stored per entry.
const MaxTags = 3

// Entry is one dream record. JSON field names match the shape the mobile
// client has always persisted, so older journals load unchanged; missing
// optional fields are treated as absent, never zero-filled.
type Entry struct {
	Text    string `json:"dreamText"`
	IsLucid bool   `json:"isLucidDream"`

	DateISO     string `json:"dateISO,omitempty"`     // RFC3339, authoritative when present
	DateDisplay string `json:"dateDisplay,omitempty"` // "24/10/2025", fallback
	TimeDisplay string `json:"timeDisplay,omitempty"`

	Title    string    `json:"title,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Emotions []string  `json:"emotions,omitempty"`
	Type     DreamType `json:"dreamType,omitempty"`

	// Ratings in [0,10]. Pointers: a missing rating is not a rating of zero.
	Intensity *int `json:"intensity,omitempty"`
	Quality   *int `json:"qualityDream,omitempty"`

	Character     string `json:"character,omitempty"`
	Location      string `json:"location,omitempty"`
	Signification string `json:"signification,omitempty"`
	Favorite      bool   `json:"favorite,omitempty"`
}

// Journal is the persisted key-value row: one ordered entry sequence per key.
// Positional index in Entries is the entry's identity.
type Journal struct {
	Key       string          `gorm:"primaryKey"`
	Entries   json.RawMessage `gorm:"type:jsonb;not null;default:'[]'::jsonb"`
	UpdatedAt time.Time       `gorm:"not null;default:now()"`
}

// EntryProjection is the per-entry read model for list/search. Rebuilt in full
// on every write to the journal blob, so positions never drift.
type EntryProjection struct {
	JournalKey string `gorm:"primaryKey"`
	Position   int    `gorm:"primaryKey;autoIncrement:false"`

	OccurredAt *time.Time `gorm:"type:timestamptz;index"`
	Type       string     `gorm:"not null;default:''"`
	Content    string     `gorm:"type:text;not null;default:''"`
	Title      string     `gorm:"not null;default:''"`
	Character  string     `gorm:"not null;default:''"`
	Location   string     `gorm:"not null;default:''"`
	Favorite   bool       `gorm:"not null;default:false"`

	Tags pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}
