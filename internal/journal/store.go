package journal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

// Store persists one ordered entry sequence per journal key. The blob is the
// source of truth; EntryProjection rows are a derived read model rebuilt on
// every write so that positional identity stays consistent after deletes.
type Store struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// Entries loads the sequence stored under key. A missing key or a blob that
// does not parse yields an empty sequence, never an error: one bad payload
// must not blank every reader (the decode failure is logged).
func (s *Store) Entries(ctx context.Context, key string) ([]Entry, error) {
	var j Journal
	err := s.DB.WithContext(ctx).First(&j, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(j.Entries, &entries); err != nil {
		s.Log.Warn("journal blob does not parse, treating as empty",
			zap.String("key", key), zap.Error(err))
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Replace overwrites the whole sequence under key and rebuilds its
// projections in the same transaction.
func (s *Store) Replace(ctx context.Context, key string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		j := Journal{Key: key, Entries: blob, UpdatedAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entries", "updated_at"}),
		}).Create(&j).Error; err != nil {
			return err
		}

		if err := tx.Where("journal_key = ?", key).Delete(&EntryProjection{}).Error; err != nil {
			return err
		}
		rows := projectionRows(key, entries)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Append adds an entry at the end of the sequence and returns its position.
func (s *Store) Append(ctx context.Context, key string, e Entry) (int, error) {
	entries, err := s.Entries(ctx, key)
	if err != nil {
		return 0, err
	}
	entries = append(entries, e)
	if err := s.Replace(ctx, key, entries); err != nil {
		return 0, err
	}
	return len(entries) - 1, nil
}

// ReplaceAt swaps the entry at position. Out-of-range positions report
// ErrNotFound.
func (s *Store) ReplaceAt(ctx context.Context, key string, position int, e Entry) error {
	entries, err := s.Entries(ctx, key)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(entries) {
		return ErrNotFound
	}
	entries[position] = e
	return s.Replace(ctx, key, entries)
}

// DeleteAt removes the entry at position. Deletion is destructive and
// immediate; later entries shift down one position.
func (s *Store) DeleteAt(ctx context.Context, key string, position int) error {
	entries, err := s.Entries(ctx, key)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(entries) {
		return ErrNotFound
	}
	entries = append(entries[:position], entries[position+1:]...)
	return s.Replace(ctx, key, entries)
}

// Reset drops every entry under key.
func (s *Store) Reset(ctx context.Context, key string) error {
	return s.Replace(ctx, key, []Entry{})
}

func projectionRows(key string, entries []Entry) []EntryProjection {
	rows := make([]EntryProjection, 0, len(entries))
	for i, e := range entries {
		tags := SanitizeTags(e.Tags)
		if tags == nil {
			tags = []string{}
		}
		p := EntryProjection{
			JournalKey: key,
			Position:   i,
			Type:       string(e.ResolvedType()),
			Content:    e.Text,
			Title:      e.Title,
			Character:  e.Character,
			Location:   e.Location,
			Favorite:   e.Favorite,
			Tags:       pq.StringArray(tags),
		}
		if d, ok := e.ResolvedDate(); ok {
			p.OccurredAt = &d
		}
		rows = append(rows, p)
	}
	return rows
}
