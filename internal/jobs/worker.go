package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"dreamlog/internal/journal"

	"go.uber.org/zap"
)

// Worker polls for due jobs and dispatches them. Dispatching a reminder logs
// the nudge (the client shows it as a notification) and re-enqueues the next
// occurrence, so an enabled reminder repeats daily until cancelled.
type Worker struct {
	ID    string
	Repo  *Repo
	Store *journal.Store
	Log   *zap.Logger
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim failed", zap.Error(err))
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeReminderDispatch:
		w.handleReminder(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleReminder(ctx context.Context, job *Job) {
	var p ReminderPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	entries, err := w.Store.Entries(ctx, p.JournalKey)
	if err != nil {
		w.retry(job, "journal read error")
		return
	}

	w.Log.Info("reminder: time to record your dream",
		zap.String("journal", p.JournalKey),
		zap.Int("entries", len(entries)),
	)
	_ = w.Repo.MarkDone(job.ID)

	// Daily repeat: schedule tomorrow's nudge at the same time.
	if err := w.Repo.EnqueueReminder(p, NextRun(time.Now(), p.Hour, p.Minute)); err != nil {
		w.Log.Error("reminder re-enqueue failed", zap.String("journal", p.JournalKey), zap.Error(err))
	}
}

// NextRun is the next occurrence of hour:minute strictly after now, in now's
// location.
func NextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
