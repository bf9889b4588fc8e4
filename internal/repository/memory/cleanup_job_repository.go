package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"docrag-be/pkg/reconcile"
)

// CleanupJobRepository keeps recent cleanup jobs so their progress can be
// polled after the request that started them has returned.
type CleanupJobRepository struct {
	cache *cache.Cache
}

func NewCleanupJobRepository(ttl time.Duration) *CleanupJobRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CleanupJobRepository{
		cache: cache.New(ttl, ttl/6),
	}
}

func (r *CleanupJobRepository) Save(job *reconcile.CleanupJob) {
	r.cache.Set(job.ID(), job, cache.DefaultExpiration)
}

func (r *CleanupJobRepository) Get(jobID string) (*reconcile.CleanupJob, bool) {
	if x, found := r.cache.Get(jobID); found {
		return x.(*reconcile.CleanupJob), true
	}
	return nil, false
}

func (r *CleanupJobRepository) Delete(jobID string) {
	r.cache.Delete(jobID)
}

func (r *CleanupJobRepository) Count() int {
	return r.cache.ItemCount()
}
