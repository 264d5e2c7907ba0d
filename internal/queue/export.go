package queue

import (
	"time"

	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/pathing"
)

// ExportTask is a single notebook export job.
type ExportTask struct {
	Notebook pathing.VaultPath
	Format   convert.Format

	// Result holds the rendered output path, set on success.
	Result string
}

// Progress is a point-in-time snapshot of a queue's processing state.
type Progress struct {
	IsStarted  bool
	StartTime  time.Time
	FinishTime time.Time

	ProgressPct     float64
	TotalItems      int
	ProcessedItems  int
	InProgressItems int
	SuccessItems    int
	SkippedItems    int
}

// Progress returns the current [Progress] snapshot of the queue.
func (q *Queue[T]) Progress() Progress {
	q.RLock()
	defer q.RUnlock()

	total := len(q.items)
	processed := len(q.success) + len(q.skipped)

	var pct float64
	if total > 0 {
		pct = float64(processed) / float64(total) * 100 //nolint:mnd
		pct = max(float64(0), min(pct, float64(100)))   //nolint:mnd
	}

	return Progress{
		IsStarted:       q.hasStarted && !q.hasFinished,
		StartTime:       q.startTime,
		FinishTime:      q.finishTime,
		ProgressPct:     pct,
		TotalItems:      total,
		ProcessedItems:  processed,
		InProgressItems: len(q.inProgress),
		SuccessItems:    len(q.success),
		SkippedItems:    len(q.skipped),
	}
}

// Manager holds the application's work queues.
type Manager struct {
	ExportQueue *Queue[*ExportTask]
}

// NewManager returns a pointer to a new queue [Manager].
func NewManager() *Manager {
	return &Manager{
		ExportQueue: NewQueue[*ExportTask](),
	}
}

// Progress returns the [Progress] snapshot of the export queue.
func (m *Manager) Progress() Progress {
	return m.ExportQueue.Progress()
}
