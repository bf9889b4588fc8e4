package reconcile

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"docrag-be/internal/constant"
	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/backend"
	"docrag-be/pkg/filesearch"
)

const (
	DefaultMessageWorkers = 5
	DefaultSweepPageSize  = 50

	logModule = "RECONCILE"
)

var ErrNoCleaner = errors.New("no cleaner configured")

type SessionSource interface {
	ListChatSessions(ctx context.Context, offset, limit int) ([]backend.ChatSession, error)
	GetSessionMessages(ctx context.Context, sessionID string) ([]backend.Message, error)
	ListStores(ctx context.Context) ([]filesearch.Store, error)
}

type RecentChat struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"last_message"`
	StoreName   string `json:"store_name"`
}

type Result struct {
	Sessions     []RecentChat `json:"sessions"`
	CleanupJobID string       `json:"cleanup_job_id,omitempty"`
}

type Reconciler struct {
	source  SessionSource
	cleaner Cleaner
	limit   int
	workers int
	logger  logger.ILogger
}

type Option func(*Reconciler)

func WithLimit(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.limit = n
		}
	}
}

func WithMessageWorkers(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithLogger(l logger.ILogger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(source SessionSource, cleaner Cleaner, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:  source,
		cleaner: cleaner,
		limit:   constant.DefaultRecentChatsLimit,
		workers: DefaultMessageWorkers,
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile builds the recent-chat list for userID and hands sessions whose
// store no longer exists to the cleaner without waiting for it.
func (r *Reconciler) Reconcile(ctx context.Context, userID string) (*Result, error) {
	if userID == "" {
		return &Result{Sessions: []RecentChat{}}, nil
	}

	var (
		sessions []backend.ChatSession
		stores   []filesearch.Store
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = r.source.ListChatSessions(gctx, 0, r.limit)
		return err
	})
	g.Go(func() error {
		var err error
		stores, err = r.source.ListStores(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid, orphans := partition(sessions, filesearch.ValidStoreNames(stores))

	result := &Result{Sessions: []RecentChat{}}
	if len(orphans) > 0 {
		job, err := r.dispatch(ctx, orphans)
		if err != nil {
			r.logger.Warn(logModule, "Orphaned sessions left in place", map[string]interface{}{
				"user_id": userID,
				"count":   len(orphans),
				"error":   err.Error(),
			})
		} else {
			result.CleanupJobID = job.ID()
			r.logger.Info(logModule, "Dispatched orphaned session cleanup", map[string]interface{}{
				"user_id": userID,
				"job_id":  job.ID(),
				"count":   len(orphans),
			})
		}
	}

	chats := make([]*RecentChat, len(valid))
	mg, mctx := errgroup.WithContext(ctx)
	mg.SetLimit(r.workers)
	for i, session := range valid {
		mg.Go(func() error {
			messages, err := r.source.GetSessionMessages(mctx, session.ID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				r.logger.Warn(logModule, "Dropping session with unreadable messages", map[string]interface{}{
					"session_id": session.ID,
					"error":      err.Error(),
				})
				return nil
			}

			chats[i] = &RecentChat{
				ID:          session.ID,
				Title:       DeriveTitle(session.StoreName),
				LastMessage: Preview(messages),
				StoreName:   session.StoreName,
			}
			return nil
		})
	}
	if err := mg.Wait(); err != nil {
		return nil, err
	}

	for _, chat := range chats {
		if chat != nil {
			result.Sessions = append(result.Sessions, *chat)
		}
	}
	return result, nil
}

// Sweep pages through every session of the caller and dispatches a single
// cleanup job for all orphans found.
func (r *Reconciler) Sweep(ctx context.Context, pageSize int) (*CleanupJob, error) {
	if pageSize <= 0 {
		pageSize = DefaultSweepPageSize
	}

	stores, err := r.source.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	validNames := filesearch.ValidStoreNames(stores)

	var all []backend.ChatSession
	for offset := 0; ; offset += pageSize {
		page, err := r.source.ListChatSessions(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("sweep page at offset %d: %w", offset, err)
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	_, orphans := partition(all, validNames)
	r.logger.Info(logModule, "Sweep finished scanning sessions", map[string]interface{}{
		"sessions": len(all),
		"orphans":  len(orphans),
	})

	return r.dispatch(ctx, orphans)
}

func (r *Reconciler) dispatch(ctx context.Context, orphans []string) (*CleanupJob, error) {
	if r.cleaner == nil {
		return nil, ErrNoCleaner
	}
	// Cleanup outlives the request that discovered the orphans but keeps its values (auth token).
	return r.cleaner.Cleanup(context.WithoutCancel(ctx), orphans), nil
}

// partition keeps backend order for valid sessions and lists each orphan id once.
func partition(sessions []backend.ChatSession, validNames map[string]struct{}) ([]backend.ChatSession, []string) {
	valid := make([]backend.ChatSession, 0, len(sessions))
	orphans := []string{}
	seen := make(map[string]struct{})

	for _, s := range sessions {
		if _, ok := validNames[s.StoreName]; ok {
			valid = append(valid, s)
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		orphans = append(orphans, s.ID)
	}
	return valid, orphans
}
