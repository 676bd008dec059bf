package audit

import (
	"context"
	"log/slog"
)

// Recorder is the write side other modules depend on. Failures to record are
// logged but do not fail the mutation that triggered them.
type Recorder interface {
	Record(ctx context.Context, userID int64, actorID *int64, action Action, field, oldValue, newValue string)
}

type recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo}
}

func (r *recorder) Record(ctx context.Context, userID int64, actorID *int64, action Action, field, oldValue, newValue string) {
	entry := &Entry{
		UserID:   userID,
		ActorID:  actorID,
		Action:   action,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		slog.Error("audit write failed", "action", action, "field", field, "user_id", userID, "err", err)
	}
}
