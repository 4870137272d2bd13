package inmem

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/server/dao"
)

func Test_UsersRepository_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	created, err := repo.Create(ctx, dao.User{
		Username: "vriska",
		Password: "aGFzaA==",
		Role:     dao.Normal,
	})
	assert.NoError(err)
	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.Equal("vriska", created.Username)
	assert.False(created.Created.IsZero())
	assert.False(created.Modified.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.Username, byID.Username)

	byName, err := repo.GetByUsername(ctx, "vriska")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)
}

func Test_UsersRepository_Create_duplicateUsername(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	_, err := repo.Create(ctx, dao.User{Username: "nepeta"})
	assert.NoError(err)

	_, err = repo.Create(ctx, dao.User{Username: "nepeta"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)
}

func Test_UsersRepository_GetByID_notFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_UsersRepository_Update_changesUsernameIndex(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	created, err := repo.Create(ctx, dao.User{Username: "old-name"})
	assert.NoError(err)

	created.Username = "new-name"
	updated, err := repo.Update(ctx, created.ID, created)
	assert.NoError(err)
	assert.Equal("new-name", updated.Username)

	// the old name must no longer resolve
	_, err = repo.GetByUsername(ctx, "old-name")
	assert.ErrorIs(err, dao.ErrNotFound)

	byName, err := repo.GetByUsername(ctx, "new-name")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)
}

func Test_UsersRepository_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	created, err := repo.Create(ctx, dao.User{Username: "doomed"})
	assert.NoError(err)

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "doomed")
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_UsersRepository_concurrentUse(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := repo.Create(ctx, dao.User{Username: fmt.Sprintf("troll%d", n)})
			if err != nil {
				return
			}
			repo.GetByID(ctx, created.ID)
			repo.GetByUsername(ctx, created.Username)
			repo.GetAll(ctx)
		}(i)
	}
	wg.Wait()

	all, err := repo.GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 8)
}

func Test_UsersRepository_GetAll_sortedByID(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewUsersRepository()

	for _, name := range []string{"aradia", "tavros", "sollux"} {
		_, err := repo.Create(ctx, dao.User{Username: name})
		assert.NoError(err)
	}

	all, err := repo.GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 3)

	for i := 0; i+1 < len(all); i++ {
		assert.True(all[i].ID.String() < all[i+1].ID.String(), "users not sorted by ID")
	}
}
