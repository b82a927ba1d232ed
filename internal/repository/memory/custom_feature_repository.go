package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CustomFeatureStore keeps feature definitions in process memory.
// Entries never expire; stored values are cloned on the way in and out.
type CustomFeatureStore struct {
	cache *cache.Cache
	seq   atomic.Uint64

	// txMu serializes units of work, standing in for database transactions.
	txMu sync.Mutex
}

type storedFeature struct {
	seq     uint64
	feature *entity.CustomFeatureDefinition
}

func NewCustomFeatureStore() *CustomFeatureStore {
	return &CustomFeatureStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

type customFeatureRepository struct {
	store *CustomFeatureStore
	uow   *unitOfWork
}

// NewCustomFeatureRepository returns a repository over store outside any unit of work.
func NewCustomFeatureRepository(store *CustomFeatureStore) contract.CustomFeatureRepository {
	return &customFeatureRepository{store: store}
}

func (r *customFeatureRepository) record(undo func()) {
	if r.uow != nil && r.uow.inTx {
		r.uow.journal = append(r.uow.journal, undo)
	}
}

func (r *customFeatureRepository) get(id uuid.UUID) (storedFeature, bool) {
	x, found := r.store.cache.Get(id.String())
	if !found {
		return storedFeature{}, false
	}
	return x.(storedFeature), true
}

func (r *customFeatureRepository) slugTaken(slug string, except uuid.UUID) bool {
	for _, item := range r.store.cache.Items() {
		sf := item.Object.(storedFeature)
		if sf.feature.Slug == slug && sf.feature.Id != except {
			return true
		}
	}
	return false
}

func (r *customFeatureRepository) Create(ctx context.Context, feature *entity.CustomFeatureDefinition) error {
	if r.slugTaken(feature.Slug, feature.Id) {
		return fmt.Errorf("duplicate slug %q", feature.Slug)
	}
	key := feature.Id.String()
	sf := storedFeature{seq: r.store.seq.Add(1), feature: feature.Clone()}
	if err := r.store.cache.Add(key, sf, cache.NoExpiration); err != nil {
		return fmt.Errorf("feature %s already exists", key)
	}
	r.record(func() { r.store.cache.Delete(key) })
	return nil
}

func (r *customFeatureRepository) Update(ctx context.Context, feature *entity.CustomFeatureDefinition) error {
	if r.slugTaken(feature.Slug, feature.Id) {
		return fmt.Errorf("duplicate slug %q", feature.Slug)
	}
	key := feature.Id.String()
	previous, existed := r.get(feature.Id)

	seq := previous.seq
	if !existed {
		seq = r.store.seq.Add(1)
	}
	r.store.cache.Set(key, storedFeature{seq: seq, feature: feature.Clone()}, cache.NoExpiration)

	r.record(func() {
		if existed {
			r.store.cache.Set(key, previous, cache.NoExpiration)
			return
		}
		r.store.cache.Delete(key)
	})
	return nil
}

func (r *customFeatureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	previous, existed := r.get(id)
	if !existed {
		return nil
	}
	key := id.String()
	r.store.cache.Delete(key)
	r.record(func() { r.store.cache.Set(key, previous, cache.NoExpiration) })
	return nil
}

func (r *customFeatureRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomFeatureDefinition, error) {
	sf, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return sf.feature.Clone(), nil
}

func (r *customFeatureRepository) FindBySlug(ctx context.Context, slug string) (*entity.CustomFeatureDefinition, error) {
	for _, sf := range r.sorted() {
		if sf.feature.Slug == slug {
			return sf.feature.Clone(), nil
		}
	}
	return nil, nil
}

func (r *customFeatureRepository) FindAll(ctx context.Context) ([]*entity.CustomFeatureDefinition, error) {
	sorted := r.sorted()
	features := make([]*entity.CustomFeatureDefinition, 0, len(sorted))
	for _, sf := range sorted {
		features = append(features, sf.feature.Clone())
	}
	return features, nil
}

func (r *customFeatureRepository) Count(ctx context.Context) (int64, error) {
	return int64(r.store.cache.ItemCount()), nil
}

func (r *customFeatureRepository) sorted() []storedFeature {
	items := r.store.cache.Items()
	out := make([]storedFeature, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(storedFeature))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
