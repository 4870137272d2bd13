package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mawais/slc/server/dao"
)

type AnalysesDB struct {
	db *sql.DB
}

func (repo *AnalysesDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id TEXT NOT NULL PRIMARY KEY,
		owner TEXT NOT NULL,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		tokens TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
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

	now := time.Now()
	_, err = repo.db.ExecContext(
		ctx,
		`INSERT INTO analyses (id, owner, name, source, tokens, created, modified) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(a.Owner),
		a.Name,
		a.Source,
		convertToDB_Tokens(a.Tokens),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *AnalysesDB) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, owner, name, source, tokens, created, modified FROM analyses ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return repo.scanRows(rows)
}

func (repo *AnalysesDB) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Analysis, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, owner, name, source, tokens, created, modified FROM analyses WHERE owner = ? ORDER BY id;`,
		convertToDB_UUID(owner),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return repo.scanRows(rows)
}

func (repo *AnalysesDB) scanRows(rows *sql.Rows) ([]dao.Analysis, error) {
	var all []dao.Analysis

	for rows.Next() {
		var a dao.Analysis
		var id string
		var owner string
		var tokens string
		var created int64
		var modified int64
		err := rows.Scan(
			&id,
			&owner,
			&a.Name,
			&a.Source,
			&tokens,
			&created,
			&modified,
		)

		if err != nil {
			return nil, wrapDBError(err)
		}

		err = repo.fillConverted(&a, id, owner, tokens, created, modified)
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

func (repo *AnalysesDB) Update(ctx context.Context, id uuid.UUID, a dao.Analysis) (dao.Analysis, error) {
	// deliberately not updating created
	res, err := repo.db.ExecContext(ctx, `UPDATE analyses SET id=?, owner=?, name=?, source=?, tokens=?, modified=? WHERE id=?;`,
		convertToDB_UUID(a.ID),
		convertToDB_UUID(a.Owner),
		a.Name,
		a.Source,
		convertToDB_Tokens(a.Tokens),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Analysis{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, a.ID)
}

func (repo *AnalysesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	a := dao.Analysis{
		ID: id,
	}
	var owner string
	var tokens string
	var created int64
	var modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT owner, name, source, tokens, created, modified FROM analyses WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(
		&owner,
		&a.Name,
		&a.Source,
		&tokens,
		&created,
		&modified,
	)

	if err != nil {
		return a, wrapDBError(err)
	}

	err = repo.fillConverted(&a, id.String(), owner, tokens, created, modified)
	if err != nil {
		return a, err
	}

	return a, nil
}

func (repo *AnalysesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, convertToDB_UUID(id))
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
	// the DB handle is shared with the other repositories and closed by the
	// store
	return nil
}

func (repo *AnalysesDB) fillConverted(a *dao.Analysis, id, owner, tokens string, created, modified int64) error {
	var err error

	err = convertFromDB_UUID(id, &a.ID)
	if err != nil {
		return fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_UUID(owner, &a.Owner)
	if err != nil {
		return fmt.Errorf("stored owner UUID %q is invalid: %w", owner, err)
	}
	err = convertFromDB_Tokens(tokens, &a.Tokens)
	if err != nil {
		return fmt.Errorf("stored token blob is invalid: %w", err)
	}
	err = convertFromDB_Time(created, &a.Created)
	if err != nil {
		return fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	err = convertFromDB_Time(modified, &a.Modified)
	if err != nil {
		return fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}

	return nil
}
