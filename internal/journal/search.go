package journal

import (
	"context"
	"time"
)

// Criteria is the explicit search context passed from the client on every
// list request. There is no ambient "current filter" state on the server.
type Criteria struct {
	Text      string     // substring of narrative or title, case-insensitive
	Type      DreamType  // exact category
	Character string     // substring, case-insensitive
	Tag       string     // exact sanitized tag
	Favorite  *bool      // nil = both
	Start     *time.Time // inclusive period bounds on the resolved date
	End       *time.Time
}

// Search lists projection rows under key matching every set criterion, most
// recent first. Undated entries sort last so they stay visible in plain lists
// but never interleave with the timeline.
func (s *Store) Search(ctx context.Context, key string, c Criteria) ([]EntryProjection, error) {
	q := s.DB.WithContext(ctx).Model(&EntryProjection{}).Where("journal_key = ?", key)

	if c.Text != "" {
		q = q.Where("content ILIKE ? OR title ILIKE ?", "%"+c.Text+"%", "%"+c.Text+"%")
	}
	if c.Type == TypeOther {
		// uncategorized entries project an empty type
		q = q.Where("type = ''")
	} else if c.Type != "" {
		q = q.Where("type = ?", string(c.Type))
	}
	if c.Character != "" {
		q = q.Where("character ILIKE ?", "%"+c.Character+"%")
	}
	if c.Tag != "" {
		q = q.Where("? = any(tags)", c.Tag)
	}
	if c.Favorite != nil {
		q = q.Where("favorite = ?", *c.Favorite)
	}
	if c.Start != nil {
		q = q.Where("occurred_at >= ?", *c.Start)
	}
	if c.End != nil {
		q = q.Where("occurred_at <= ?", *c.End)
	}

	var rows []EntryProjection
	if err := q.Order("occurred_at desc nulls last, position desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
