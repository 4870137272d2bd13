package slcs

import (
	"context"

	"github.com/google/uuid"

	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/server/serr"
	"github.com/mawais/slc/simplelang"
)

// AnalyzeSource runs the full analysis pipeline on the given source without
// persisting anything. This never fails; lexical and syntax problems are
// reported inside the returned Analysis.
func (svc Service) AnalyzeSource(source string) simplelang.Analysis {
	return simplelang.Analyze(source)
}

// CreateAnalysis scans the given source and persists a new named analysis
// owned by the given user. The stored record keeps the source and the full
// token sequence; the other phases are recomputed on demand from the source.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the error occured due to
// an unexpected problem with the DB, it will match serr.ErrDB. If one of the
// arguments is invalid, it will match serr.ErrBadArgument.
func (svc Service) CreateAnalysis(ctx context.Context, owner uuid.UUID, name, source string) (dao.Analysis, error) {
	if name == "" {
		return dao.Analysis{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	anal := simplelang.Analyze(source)

	newAnalysis := dao.Analysis{
		Owner:  owner,
		Name:   name,
		Source: anal.Source,
		Tokens: anal.Tokens,
	}

	created, err := svc.DB.Analyses().Create(ctx, newAnalysis)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.Analysis{}, serr.New("an analysis with that ID already exists", serr.ErrAlreadyExists)
		}
		return dao.Analysis{}, serr.WrapDB("could not create analysis", err)
	}

	return created, nil
}

// GetAnalysis returns the stored analysis with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no analysis with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if
// there is an issue with one of the arguments, it will match
// serr.ErrBadArgument.
func (svc Service) GetAnalysis(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	a, err := svc.DB.Analyses().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not get analysis", err)
	}

	return a, nil
}

// GetAllAnalyses returns every stored analysis.
func (svc Service) GetAllAnalyses(ctx context.Context) ([]dao.Analysis, error) {
	all, err := svc.DB.Analyses().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return all, nil
}

// GetAnalysesByOwner returns the stored analyses owned by the given user.
func (svc Service) GetAnalysesByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Analysis, error) {
	all, err := svc.DB.Analyses().GetAllByOwner(ctx, owner)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return all, nil
}

// UpdateAnalysis replaces the name and source of the stored analysis with
// the given ID. The source is re-scanned and the stored token sequence
// refreshed.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no analysis with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if one
// of the arguments is invalid, it will match serr.ErrBadArgument.
func (svc Service) UpdateAnalysis(ctx context.Context, id, name, source string) (dao.Analysis, error) {
	if name == "" {
		return dao.Analysis{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	existing, err := svc.DB.Analyses().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Analysis{}, serr.New("no analysis with that ID exists", serr.ErrNotFound)
		}
		return dao.Analysis{}, serr.WrapDB("could not retrieve analysis", err)
	}

	anal := simplelang.Analyze(source)

	existing.Name = name
	existing.Source = anal.Source
	existing.Tokens = anal.Tokens

	updated, err := svc.DB.Analyses().Update(ctx, uuidID, existing)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Analysis{}, serr.New("no analysis with that ID exists", serr.ErrNotFound)
		}
		return dao.Analysis{}, serr.WrapDB("could not update analysis", err)
	}

	return updated, nil
}

// DeleteAnalysis deletes the stored analysis with the given ID. It returns
// the analysis just before deletion.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no analysis with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if
// there is an issue with one of the arguments, it will match
// serr.ErrBadArgument.
func (svc Service) DeleteAnalysis(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	a, err := svc.DB.Analyses().Delete(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not delete analysis", err)
	}

	return a, nil
}
