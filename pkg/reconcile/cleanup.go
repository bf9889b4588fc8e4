package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"docrag-be/internal/pkg/logger"
)

// Cleaner deletes orphaned sessions in the background. Implementations must
// return immediately and report progress through the returned job.
type Cleaner interface {
	Cleanup(ctx context.Context, sessionIDs []string) *CleanupJob
}

type SessionDeleter interface {
	DeleteChatSession(ctx context.Context, sessionID string) error
}

type CleanupFailure struct {
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
}

type CleanupReport struct {
	JobID      string           `json:"job_id"`
	Total      int              `json:"total"`
	Deleted    []string         `json:"deleted"`
	Failed     []CleanupFailure `json:"failed"`
	Done       bool             `json:"done"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// CleanupJob tracks the outcome of one batch of deletions. Each session id is
// recorded at most once; the job is done when every id has an outcome.
type CleanupJob struct {
	mu         sync.Mutex
	id         string
	ids        []string
	pending    map[string]struct{}
	deleted    []string
	failed     []CleanupFailure
	startedAt  time.Time
	finishedAt time.Time
	done       chan struct{}
}

// NewCleanupJob registers the given ids, dropping duplicates and empty ids.
// An empty id gets a generated one.
func NewCleanupJob(id string, sessionIDs []string) *CleanupJob {
	if id == "" {
		id = uuid.NewString()
	}

	job := &CleanupJob{
		id:        id,
		pending:   make(map[string]struct{}, len(sessionIDs)),
		deleted:   []string{},
		failed:    []CleanupFailure{},
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
	for _, sid := range sessionIDs {
		if sid == "" {
			continue
		}
		if _, dup := job.pending[sid]; dup {
			continue
		}
		job.pending[sid] = struct{}{}
		job.ids = append(job.ids, sid)
	}
	if len(job.pending) == 0 {
		job.finish()
	}
	return job
}

func (j *CleanupJob) ID() string { return j.id }

// SessionIDs returns the de-duplicated ids the job was created with.
func (j *CleanupJob) SessionIDs() []string {
	out := make([]string, len(j.ids))
	copy(out, j.ids)
	return out
}

// Record stores the outcome for sessionID. Unknown or already recorded ids are ignored.
func (j *CleanupJob) Record(sessionID string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.pending[sessionID]; !ok {
		return
	}
	delete(j.pending, sessionID)

	if err != nil {
		j.failed = append(j.failed, CleanupFailure{SessionID: sessionID, Error: err.Error()})
	} else {
		j.deleted = append(j.deleted, sessionID)
	}

	if len(j.pending) == 0 {
		j.finish()
	}
}

// finish must be called with mu held or before the job is shared.
func (j *CleanupJob) finish() {
	j.finishedAt = time.Now()
	close(j.done)
}

func (j *CleanupJob) Done() <-chan struct{} { return j.done }

func (j *CleanupJob) Wait(ctx context.Context) (CleanupReport, error) {
	select {
	case <-j.done:
		return j.Report(), nil
	case <-ctx.Done():
		return j.Report(), ctx.Err()
	}
}

func (j *CleanupJob) Report() CleanupReport {
	j.mu.Lock()
	defer j.mu.Unlock()

	report := CleanupReport{
		JobID:     j.id,
		Total:     len(j.ids),
		Deleted:   append([]string{}, j.deleted...),
		Failed:    append([]CleanupFailure{}, j.failed...),
		Done:      len(j.pending) == 0,
		StartedAt: j.startedAt,
	}
	if report.Done {
		finished := j.finishedAt
		report.FinishedAt = &finished
	}
	return report
}

// AsyncCleaner deletes every orphan in its own goroutine.
type AsyncCleaner struct {
	deleter SessionDeleter
	logger  logger.ILogger
}

func NewAsyncCleaner(deleter SessionDeleter, log logger.ILogger) *AsyncCleaner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AsyncCleaner{deleter: deleter, logger: log}
}

func (c *AsyncCleaner) Cleanup(ctx context.Context, sessionIDs []string) *CleanupJob {
	job := NewCleanupJob("", sessionIDs)

	for _, id := range job.SessionIDs() {
		go func(sessionID string) {
			err := c.deleter.DeleteChatSession(ctx, sessionID)
			if err != nil {
				c.logger.Warn(logModule, "Failed to delete orphaned session", map[string]interface{}{
					"job_id":     job.ID(),
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
			job.Record(sessionID, err)
		}(id)
	}

	return job
}
