// Package inmem provides a dao.Store implementation that holds everything
// in process memory. It is the default persistence layer and is also used in
// tests; nothing survives a restart.
package inmem

import (
	"fmt"

	"github.com/mawais/slc/server/dao"
)

type store struct {
	users    *UsersRepository
	analyses *AnalysesRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		analyses: NewAnalysesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = nextErr
	}
	if nextErr := s.analyses.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
