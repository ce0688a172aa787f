// Package inmem provides a dao.Store that keeps everything in memory. All data
// is lost when the process exits.
package inmem

import (
	"github.com/dekarrin/prepll/server/dao"
)

type store struct {
	analyses *AnalysesRepository
}

// NewDatastore returns an empty in-memory Store.
func NewDatastore() dao.Store {
	return &store{
		analyses: NewAnalysesRepository(),
	}
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	return s.analyses.Close()
}
