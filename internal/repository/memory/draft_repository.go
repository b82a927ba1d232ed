package memory

import (
	"time"

	"cmms-dashboard-be/pkg/builder"

	"github.com/patrickmn/go-cache"
)

// DraftRepository keeps in-progress builder drafts. Each access slides the expiration.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository() *DraftRepository {
	// Drafts expire after an hour without activity, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DraftRepository{
		cache: c,
	}
}

func (r *DraftRepository) Save(draft *builder.Draft) {
	r.cache.Set(draft.Id.String(), draft, cache.DefaultExpiration)
}

func (r *DraftRepository) Get(draftID string) (*builder.Draft, bool) {
	if x, found := r.cache.Get(draftID); found {
		draft := x.(*builder.Draft)
		r.cache.Set(draftID, draft, cache.DefaultExpiration)
		return draft, true
	}
	return nil, false
}

func (r *DraftRepository) Delete(draftID string) {
	r.cache.Delete(draftID)
}

func (r *DraftRepository) Count() int {
	return r.cache.ItemCount()
}
