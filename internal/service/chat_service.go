package service

import (
	"context"
	"fmt"

	"docrag-be/internal/dto"
	"docrag-be/internal/pkg/logger"
	"docrag-be/internal/pkg/serverutils"
	"docrag-be/pkg/backend"
	"docrag-be/pkg/reconcile"
)

type IChatService interface {
	RecentChats(ctx context.Context, userId, authToken string) (*dto.RecentChatsResponse, error)
	CleanupStatus(ctx context.Context, jobId string) (*dto.CleanupJobResponse, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, userID string) (*reconcile.Result, error)
}

type CleanupJobLookup interface {
	Get(jobID string) (*reconcile.CleanupJob, bool)
}

type chatService struct {
	reconciler Reconciler
	jobs       CleanupJobLookup
	logger     logger.ILogger
}

func NewChatService(reconciler Reconciler, jobs CleanupJobLookup, log logger.ILogger) IChatService {
	return &chatService{
		reconciler: reconciler,
		jobs:       jobs,
		logger:     log,
	}
}

// RecentChats never reports backend failures to the caller; the sidebar simply
// shows no sessions.
func (s *chatService) RecentChats(ctx context.Context, userId, authToken string) (*dto.RecentChatsResponse, error) {
	ctx = backend.WithAuthToken(ctx, authToken)

	res, err := s.reconciler.Reconcile(ctx, userId)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("CHAT", "Failed to reconcile recent chats", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return &dto.RecentChatsResponse{Sessions: []dto.RecentChatDTO{}}, nil
	}

	sessions := make([]dto.RecentChatDTO, 0, len(res.Sessions))
	for _, c := range res.Sessions {
		sessions = append(sessions, dto.RecentChatDTO{
			Id:          c.ID,
			Title:       c.Title,
			LastMessage: c.LastMessage,
			StoreName:   c.StoreName,
		})
	}

	return &dto.RecentChatsResponse{
		Sessions:     sessions,
		CleanupJobId: res.CleanupJobID,
	}, nil
}

func (s *chatService) CleanupStatus(ctx context.Context, jobId string) (*dto.CleanupJobResponse, error) {
	job, ok := s.jobs.Get(jobId)
	if !ok {
		return nil, fmt.Errorf("cleanup job %s: %w", jobId, serverutils.ErrNotFound)
	}
	return toCleanupJobResponse(job.Report()), nil
}

func toCleanupJobResponse(r reconcile.CleanupReport) *dto.CleanupJobResponse {
	failed := make([]dto.CleanupFailureDTO, 0, len(r.Failed))
	for _, f := range r.Failed {
		failed = append(failed, dto.CleanupFailureDTO{SessionId: f.SessionID, Error: f.Error})
	}
	return &dto.CleanupJobResponse{
		JobId:      r.JobID,
		Total:      r.Total,
		Deleted:    r.Deleted,
		Failed:     failed,
		Done:       r.Done,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
