package service

import (
	"context"
	"encoding/json"
	"time"

	"docrag-be/internal/constant"
	"docrag-be/internal/dto"
	"docrag-be/internal/pkg/logger"
	"docrag-be/internal/repository/memory"
	"docrag-be/pkg/backend"
	"docrag-be/pkg/events"
	"docrag-be/pkg/reconcile"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// OrphanCleanupService is the queue-backed reconcile.Cleaner: Cleanup publishes
// one message per orphan and Consume deletes them as they arrive.
type OrphanCleanupService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	deleter   reconcile.SessionDeleter
	jobs      *memory.CleanupJobRepository
	publisher IEventPublisher
	logger    logger.ILogger

	// reportTimeout bounds how long a job is watched for completion.
	reportTimeout time.Duration
}

var (
	_ reconcile.Cleaner = (*OrphanCleanupService)(nil)
	_ IConsumerService  = (*OrphanCleanupService)(nil)
)

func NewOrphanCleanupService(
	pubSub *gochannel.GoChannel,
	topicName string,
	deleter reconcile.SessionDeleter,
	jobs *memory.CleanupJobRepository,
	publisher IEventPublisher,
	cleanupLogger logger.ILogger,
) *OrphanCleanupService {
	return &OrphanCleanupService{
		pubSub:        pubSub,
		topicName:     topicName,
		deleter:       deleter,
		jobs:          jobs,
		publisher:     publisher,
		logger:        cleanupLogger,
		reportTimeout: constant.CleanupJobRetention,
	}
}

func (s *OrphanCleanupService) Cleanup(ctx context.Context, sessionIDs []string) *reconcile.CleanupJob {
	job := reconcile.NewCleanupJob("", sessionIDs)
	s.jobs.Save(job)

	token := backend.AuthToken(ctx)
	for _, id := range job.SessionIDs() {
		payload, err := json.Marshal(dto.OrphanedSessionMessage{
			JobId:     job.ID(),
			SessionId: id,
			AuthToken: token,
		})
		if err == nil {
			err = s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
		}
		if err != nil {
			s.logger.Error("ORPHAN_CLEANUP", "Failed to enqueue orphaned session", map[string]interface{}{
				"job_id":     job.ID(),
				"session_id": id,
				"error":      err.Error(),
			})
			job.Record(id, err)
		}
	}

	go s.reportWhenDone(ctx, job)
	return job
}

// reportWhenDone gives up once the job has outlived its retention; messages
// dropped by a closed or unconsumed pubsub never record an outcome.
func (s *OrphanCleanupService) reportWhenDone(ctx context.Context, job *reconcile.CleanupJob) {
	timer := time.NewTimer(s.reportTimeout)
	defer timer.Stop()

	select {
	case <-job.Done():
	case <-timer.C:
		report := job.Report()
		s.logger.Warn("ORPHAN_CLEANUP", "Cleanup job abandoned before finishing", map[string]interface{}{
			"job_id":  report.JobID,
			"total":   report.Total,
			"pending": report.Total - len(report.Deleted) - len(report.Failed),
		})
		return
	}
	report := job.Report()

	s.logger.Info("ORPHAN_CLEANUP", "Cleanup job finished", map[string]interface{}{
		"job_id":  report.JobID,
		"total":   report.Total,
		"deleted": len(report.Deleted),
		"failed":  len(report.Failed),
	})
	if report.Total > 0 {
		publishEvent(ctx, s.publisher, s.logger, events.OrphansCleaned(report.JobID, len(report.Deleted), len(report.Failed)))
	}
}

func (s *OrphanCleanupService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage acks before deleting so the next orphan is delivered while
// this one is in flight. Deletions are never retried.
func (s *OrphanCleanupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OrphanedSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("ORPHAN_CLEANUP", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}
	msg.Ack()

	go s.deleteSession(ctx, payload)
}

func (s *OrphanCleanupService) deleteSession(ctx context.Context, payload dto.OrphanedSessionMessage) {
	ctx = backend.WithAuthToken(ctx, payload.AuthToken)
	ctx, cancel := context.WithTimeout(ctx, constant.OrphanDeleteTimeout)
	defer cancel()

	err := s.deleter.DeleteChatSession(ctx, payload.SessionId)
	if err != nil {
		s.logger.Warn("ORPHAN_CLEANUP", "Failed to delete orphaned session", map[string]interface{}{
			"job_id":     payload.JobId,
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
	} else {
		s.logger.Info("ORPHAN_CLEANUP", "Deleted orphaned session", map[string]interface{}{
			"job_id":     payload.JobId,
			"session_id": payload.SessionId,
		})
	}

	if job, ok := s.jobs.Get(payload.JobId); ok {
		job.Record(payload.SessionId, err)
	}
}
