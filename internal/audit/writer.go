package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"carometro/internal/metrics"
	"carometro/internal/queue"
)

// MessageType tags audit entries on the queue.
const MessageType = "audit-entry"

// Recorder is what mutating services use to emit audit entries.
type Recorder interface {
	Record(ctx context.Context, user, action, details string)
}

// entryStore is the slice of Repo the writer needs for its fallback path.
type entryStore interface {
	Insert(ctx context.Context, e LogEntry) error
}

// Writer appends audit entries through the queue so log persistence never
// blocks the primary mutation. When the queue is unavailable it falls back
// to a direct insert; if that also fails the entry is dropped and only
// logged locally.
type Writer struct {
	q     queue.Queue
	store entryStore
}

// NewWriter creates a writer. store may be nil when no fallback is wanted.
func NewWriter(q queue.Queue, store entryStore) *Writer {
	return &Writer{q: q, store: store}
}

// Record emits one audit entry attributed to user. Best effort: failures are
// swallowed after being counted and logged.
func (w *Writer) Record(ctx context.Context, user, action, details string) {
	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		User:      user,
		Action:    action,
		Details:   details,
	}

	body, err := json.Marshal(entry)
	if err != nil {
		log.Printf("audit: marshal entry failed: %v", err)
		metrics.AuditWriteFailures.Inc()
		return
	}

	if err := w.q.Publish(ctx, queue.Message{Type: MessageType, Body: body}); err == nil {
		return
	} else {
		log.Printf("audit: queue publish failed, trying direct insert: %v", err)
	}

	if w.store == nil {
		metrics.AuditWriteFailures.Inc()
		return
	}
	if err := w.store.Insert(ctx, entry); err != nil {
		log.Printf("audit: direct insert failed, entry dropped: %v", err)
		metrics.AuditWriteFailures.Inc()
	}
}

// DecodeEntry parses a queued audit message body back into a LogEntry.
func DecodeEntry(body []byte) (LogEntry, error) {
	var e LogEntry
	err := json.Unmarshal(body, &e)
	return e, err
}
