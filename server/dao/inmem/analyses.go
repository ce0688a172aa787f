package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/prepll/server/dao"
	"github.com/google/uuid"
)

func NewAnalysesRepository() *AnalysesRepository {
	return &AnalysesRepository{
		analyses: make(map[uuid.UUID]dao.Analysis),
	}
}

// AnalysesRepository is a dao.AnalysisRepository that is safe for concurrent
// use.
type AnalysesRepository struct {
	mtx      sync.RWMutex
	analyses map[uuid.UUID]dao.Analysis

	// creation order of the IDs in analyses
	order []uuid.UUID
}

func (repo *AnalysesRepository) Close() error {
	return nil
}

func (repo *AnalysesRepository) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	if _, ok := repo.analyses[newUUID]; ok {
		return dao.Analysis{}, dao.ErrConstraintViolation
	}

	a.ID = newUUID
	a.Created = time.Now()
	a.Productions = copyStrings(a.Productions)

	repo.analyses[a.ID] = a
	repo.order = append(repo.order, a.ID)

	return a, nil
}

func (repo *AnalysesRepository) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	all := make([]dao.Analysis, len(repo.order))
	for i := range repo.order {
		all[i] = repo.analyses[repo.order[i]]
	}

	return all, nil
}

func (repo *AnalysesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	a, ok := repo.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	return a, nil
}

func (repo *AnalysesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	a, ok := repo.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	delete(repo.analyses, id)
	for i := range repo.order {
		if repo.order[i] == id {
			repo.order = append(repo.order[:i], repo.order[i+1:]...)
			break
		}
	}

	return a, nil
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
