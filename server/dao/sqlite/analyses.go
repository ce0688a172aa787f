package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/dekarrin/prepll/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// NewAnalysesDBConn opens a standalone analyses table in the given database
// file.
func NewAnalysesDBConn(file string) (*AnalysesDB, error) {
	repo := &AnalysesDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type AnalysesDB struct {
	db *sql.DB
}

func (repo *AnalysesDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id TEXT NOT NULL PRIMARY KEY,
		productions TEXT NOT NULL,
		word TEXT NOT NULL,
		result TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *AnalysesDB) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO analyses (id, productions, word, result, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()

	resultData := rezi.EncBinary(a.Result)
	encResult := base64.StdEncoding.EncodeToString(resultData)
	_, err = stmt.ExecContext(ctx, newUUID.String(), encStrings(a.Productions), a.Word, encResult, now.Unix())
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *AnalysesDB) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, productions, word, result, created FROM analyses ORDER BY rowid;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Analysis

	for rows.Next() {
		var id string
		var prods string
		var word string
		var result string
		var created int64
		err = rows.Scan(
			&id,
			&prods,
			&word,
			&result,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		a, err := decodeRow(id, prods, word, result, created)
		if err != nil {
			return all, err
		}

		all = append(all, a)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *AnalysesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	var prods string
	var word string
	var result string
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT productions, word, result, created FROM analyses WHERE id = ?;`,
		id.String(),
	)
	err := row.Scan(
		&prods,
		&word,
		&result,
		&created,
	)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	return decodeRow(id.String(), prods, word, result, created)
}

func (repo *AnalysesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *AnalysesDB) Close() error {
	return repo.db.Close()
}

func decodeRow(id, prods, word, result string, created int64) (dao.Analysis, error) {
	a := dao.Analysis{
		Word:    word,
		Created: time.Unix(created, 0),
	}

	var err error
	a.ID, err = uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}

	a.Productions, err = decStrings(prods)
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("%w: productions of %s: %v", dao.ErrDecodingFailure, id, err)
	}

	resultData, err := base64.StdEncoding.DecodeString(result)
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("%w: result of %s: %v", dao.ErrDecodingFailure, id, err)
	}
	var res grammar.Analysis
	if _, err := rezi.DecBinary(resultData, &res); err != nil {
		return dao.Analysis{}, fmt.Errorf("%w: result of %s: %v", dao.ErrDecodingFailure, id, err)
	}
	a.Result = res

	return a, nil
}
