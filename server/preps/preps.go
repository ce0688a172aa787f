// Package preps has services for preparing grammars and keeping their history
// on the prepll server, decoupled from the API that accesses it.
package preps

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/dekarrin/prepll/server/dao"
	"github.com/dekarrin/prepll/server/serr"
	"github.com/google/uuid"
)

// Service is a service for preparing grammars and interacting with the history
// of prepared grammars. It performs the actions requested and makes calls to
// server persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Options are given to every run of the grammar pipeline. The zero value
	// uses the pipeline defaults.
	Options grammar.Options
}

// CreateAnalysis prepares the grammar given by the production statements and
// stores the result along with the word to be parsed. Returns the stored
// analysis.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a statement is not a valid
// production or no statements are given, it will match ErrBadArgument. If the
// grammar could not be prepared, it will match ErrGrammar and the error from
// the pipeline. If the error occured due to an unexpected problem with the DB,
// it will match ErrDB.
func (svc Service) CreateAnalysis(ctx context.Context, productions []string, word string) (dao.Analysis, error) {
	if len(productions) < 1 {
		return dao.Analysis{}, serr.New("productions cannot be empty", grammar.ErrEmpty, serr.ErrBadArgument)
	}

	for i := range productions {
		if strings.ContainsAny(productions[i], "\r\n") {
			return dao.Analysis{}, serr.New("productions cannot contain line breaks", serr.ErrBadArgument)
		}
	}

	res, err := grammar.Run(productions, svc.Options)
	if err != nil {
		if errors.Is(err, grammar.ErrSyntax) || errors.Is(err, grammar.ErrEmpty) {
			return dao.Analysis{}, serr.New("", err, serr.ErrBadArgument)
		}
		return dao.Analysis{}, serr.New("", err, serr.ErrGrammar)
	}

	stored, err := svc.DB.Analyses().Create(ctx, dao.Analysis{
		Productions: productions,
		Word:        word,
		Result:      res,
	})
	if err != nil {
		return dao.Analysis{}, serr.WrapDB("could not create analysis", err)
	}

	return stored, nil
}

// GetAnalysis returns the stored analysis with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no analysis with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if the ID is not valid, it
// will match ErrBadArgument.
func (svc Service) GetAnalysis(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	a, err := svc.DB.Analyses().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not get analysis", err)
	}

	return a, nil
}

// GetAllAnalyses returns every stored analysis, oldest first.
func (svc Service) GetAllAnalyses(ctx context.Context) ([]dao.Analysis, error) {
	all, err := svc.DB.Analyses().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return all, nil
}

// DeleteAnalysis deletes the stored analysis with the given ID. It returns the
// analysis just after it was deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no analysis with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if the ID is not valid, it
// will match ErrBadArgument.
func (svc Service) DeleteAnalysis(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	a, err := svc.DB.Analyses().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not delete analysis", err)
	}

	return a, nil
}
