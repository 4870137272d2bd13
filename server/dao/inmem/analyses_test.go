package inmem

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/simplelang/scan"
)

func Test_AnalysesRepository_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()
	owner := uuid.New()

	created, err := repo.Create(ctx, dao.Analysis{
		Owner:  owner,
		Name:   "first pass",
		Source: "int x;",
		Tokens: []scan.Token{
			{Kind: scan.Keyword, Text: "int", Line: 1, Column: 1},
		},
	})
	assert.NoError(err)
	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.False(created.Created.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal("first pass", got.Name)
	assert.Equal(owner, got.Owner)
	assert.Len(got.Tokens, 1)
	assert.Equal("int", got.Tokens[0].Text)
}

func Test_AnalysesRepository_GetAllByOwner(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()
	owner1 := uuid.New()
	owner2 := uuid.New()

	_, err := repo.Create(ctx, dao.Analysis{Owner: owner1, Name: "a"})
	assert.NoError(err)
	_, err = repo.Create(ctx, dao.Analysis{Owner: owner1, Name: "b"})
	assert.NoError(err)
	_, err = repo.Create(ctx, dao.Analysis{Owner: owner2, Name: "c"})
	assert.NoError(err)

	forOwner1, err := repo.GetAllByOwner(ctx, owner1)
	assert.NoError(err)
	assert.Len(forOwner1, 2)
	for _, a := range forOwner1 {
		assert.Equal(owner1, a.Owner)
	}

	forOwner2, err := repo.GetAllByOwner(ctx, owner2)
	assert.NoError(err)
	assert.Len(forOwner2, 1)
	assert.Equal("c", forOwner2[0].Name)

	all, err := repo.GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 3)
}

func Test_AnalysesRepository_Update_movesOwnerIndex(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()
	owner1 := uuid.New()
	owner2 := uuid.New()

	created, err := repo.Create(ctx, dao.Analysis{Owner: owner1, Name: "migrating"})
	assert.NoError(err)

	created.Owner = owner2
	updated, err := repo.Update(ctx, created.ID, created)
	assert.NoError(err)
	assert.Equal(owner2, updated.Owner)

	forOwner1, err := repo.GetAllByOwner(ctx, owner1)
	assert.NoError(err)
	assert.Empty(forOwner1)

	forOwner2, err := repo.GetAllByOwner(ctx, owner2)
	assert.NoError(err)
	assert.Len(forOwner2, 1)
}

func Test_AnalysesRepository_Update_preservesCreated(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()

	created, err := repo.Create(ctx, dao.Analysis{Owner: uuid.New(), Name: "stable"})
	assert.NoError(err)

	created.Name = "renamed"
	updated, err := repo.Update(ctx, created.ID, created)
	assert.NoError(err)
	assert.Equal("renamed", updated.Name)
	assert.True(updated.Created.Equal(created.Created))
}

func Test_AnalysesRepository_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()
	owner := uuid.New()

	created, err := repo.Create(ctx, dao.Analysis{Owner: owner, Name: "doomed"})
	assert.NoError(err)

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	forOwner, err := repo.GetAllByOwner(ctx, owner)
	assert.NoError(err)
	assert.Empty(forOwner)
}

func Test_AnalysesRepository_concurrentUse(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()
	owner := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := repo.Create(ctx, dao.Analysis{Owner: owner, Name: fmt.Sprintf("pass %d", n)})
			if err != nil {
				return
			}
			repo.GetByID(ctx, created.ID)
			repo.GetAllByOwner(ctx, owner)
			repo.GetAll(ctx)
		}(i)
	}
	wg.Wait()

	forOwner, err := repo.GetAllByOwner(ctx, owner)
	assert.NoError(err)
	assert.Len(forOwner, 8)
}

func Test_AnalysesRepository_notFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewAnalysesRepository()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(err, dao.ErrNotFound)

	_, err = repo.Update(ctx, uuid.New(), dao.Analysis{Name: "ghost"})
	assert.ErrorIs(err, dao.ErrNotFound)

	_, err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(err, dao.ErrNotFound)
}
