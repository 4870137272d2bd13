package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mawais/slc/internal/util"
	"github.com/mawais/slc/server/dao"
)

func NewAnalysesRepository() *AnalysesRepository {
	return &AnalysesRepository{
		analyses:     make(map[uuid.UUID]dao.Analysis),
		byOwnerIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

// AnalysesRepository is safe for concurrent use by multiple goroutines.
type AnalysesRepository struct {
	mtx          sync.RWMutex
	analyses     map[uuid.UUID]dao.Analysis
	byOwnerIndex map[uuid.UUID][]uuid.UUID
}

func (ar *AnalysesRepository) Close() error {
	return nil
}

func (ar *AnalysesRepository) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	a.ID = newUUID

	ar.mtx.Lock()
	defer ar.mtx.Unlock()

	now := time.Now()
	a.Created = now
	a.Modified = now

	ar.analyses[a.ID] = a
	ar.byOwnerIndex[a.Owner] = append(ar.byOwnerIndex[a.Owner], a.ID)

	return a, nil
}

func (ar *AnalysesRepository) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	ar.mtx.RLock()
	defer ar.mtx.RUnlock()

	all := make([]dao.Analysis, len(ar.analyses))

	i := 0
	for k := range ar.analyses {
		all[i] = ar.analyses[k]
		i++
	}

	all = util.SortBy(all, func(l, r dao.Analysis) bool {
		return l.ID.String() < r.ID.String()
	})

	return all, nil
}

func (ar *AnalysesRepository) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Analysis, error) {
	ar.mtx.RLock()
	defer ar.mtx.RUnlock()

	ids := ar.byOwnerIndex[owner]

	all := make([]dao.Analysis, 0, len(ids))
	for _, id := range ids {
		if a, ok := ar.analyses[id]; ok {
			all = append(all, a)
		}
	}

	all = util.SortBy(all, func(l, r dao.Analysis) bool {
		return l.ID.String() < r.ID.String()
	})

	return all, nil
}

func (ar *AnalysesRepository) Update(ctx context.Context, id uuid.UUID, a dao.Analysis) (dao.Analysis, error) {
	ar.mtx.Lock()
	defer ar.mtx.Unlock()

	existing, ok := ar.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	if a.ID != id {
		// that's okay but we need to check it
		if _, ok := ar.analyses[a.ID]; ok {
			return dao.Analysis{}, dao.ErrConstraintViolation
		}
	}

	a.Created = existing.Created
	a.Modified = time.Now()

	ar.analyses[a.ID] = a
	if a.ID != id {
		delete(ar.analyses, id)
		byOwner := ar.byOwnerIndex[existing.Owner]
		ar.byOwnerIndex[existing.Owner] = util.SliceRemove(id, byOwner)
	}
	if a.ID != id || a.Owner != existing.Owner {
		if a.Owner != existing.Owner {
			byOwner := ar.byOwnerIndex[existing.Owner]
			ar.byOwnerIndex[existing.Owner] = util.SliceRemove(id, byOwner)
		}
		if !util.InSlice(a.ID, ar.byOwnerIndex[a.Owner]) {
			ar.byOwnerIndex[a.Owner] = append(ar.byOwnerIndex[a.Owner], a.ID)
		}
	}

	return a, nil
}

func (ar *AnalysesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	ar.mtx.RLock()
	defer ar.mtx.RUnlock()

	a, ok := ar.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	return a, nil
}

func (ar *AnalysesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	ar.mtx.Lock()
	defer ar.mtx.Unlock()

	a, ok := ar.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	ar.byOwnerIndex[a.Owner] = util.SliceRemove(id, ar.byOwnerIndex[a.Owner])
	delete(ar.analyses, id)

	return a, nil
}
