// Package dao provides data access objects for use in the prepll server.
package dao

import (
	"context"
	"time"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Analyses() AnalysisRepository
	Close() error
}

// AnalysisRepository keeps the history of grammars that have been prepared.
type AnalysisRepository interface {

	// Create creates a new Analysis. All attributes except for auto-generated
	// fields are taken from the provided Analysis.
	Create(ctx context.Context, a Analysis) (Analysis, error)

	// GetByID returns the Analysis with the given ID. If there is no such
	// Analysis, ErrNotFound is returned.
	GetByID(ctx context.Context, id uuid.UUID) (Analysis, error)

	// GetAll returns every Analysis, oldest first.
	GetAll(ctx context.Context) ([]Analysis, error)

	// Delete removes the Analysis with the given ID and returns it as it was
	// just before removal. If there is no such Analysis, ErrNotFound is
	// returned.
	Delete(ctx context.Context, id uuid.UUID) (Analysis, error)

	Close() error
}

// Analysis is a stored run of the grammar pipeline.
type Analysis struct {
	ID          uuid.UUID
	Productions []string
	Word        string
	Result      grammar.Analysis
	Created     time.Time
}
