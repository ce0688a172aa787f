// Package sqlite provides a dao.Store that keeps data in a SQLite database file
// on disk.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/prepll/server/dao"
	"github.com/dekarrin/rezi"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	analyses *AnalysesDB
}

// NewDatastore opens the database file in storageDir, creating it and any
// missing tables if needed. storageDir must already exist.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.analyses = &AnalysesDB{db: st.db}
	if err := st.analyses.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("%s: %w", st.dbFilename, err)
	}

	return st, nil
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

// encStrings gives the base64 text of the rezi encoding of s, for storing a
// list in a single TEXT column.
func encStrings(s []string) string {
	data := rezi.EncInt(len(s))
	for i := range s {
		data = append(data, rezi.EncString(s[i])...)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func decStrings(text string) ([]string, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, err
	}

	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("count: negative count %d", count)
	}
	data = data[n:]

	if count == 0 {
		return nil, nil
	}

	s := make([]string, count)
	for i := range s {
		s[i], n, err = rezi.DecString(data)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		data = data[n:]
	}

	return s, nil
}
