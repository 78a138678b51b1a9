package jobs

import "time"

type Job struct {
	ID uint64 `gorm:"primaryKey"`

	Type    string `gorm:"type:text;not null"` // REMINDER_DISPATCH
	Payload []byte `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	RunAt  time.Time `gorm:"index;not null"`
	Status string    `gorm:"index;not null;default:'PENDING'"` // PENDING/RUNNING/DONE/FAILED/CANCELLED

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:8"`

	LockedBy *string    `gorm:"type:text"`
	LockedAt *time.Time `gorm:"type:timestamptz"`

	LastError *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// ReminderPayload schedules the daily "note your dream" nudge for one
// journal.
type ReminderPayload struct {
	JournalKey string `json:"journal_key"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
}
