package slcs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/server/dao/inmem"
	"github.com/mawais/slc/server/serr"
)

func Test_Service_CreateUserAndLogin(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}

	created, err := svc.CreateUser(ctx, "vriska", "h0rseword", "vriska@example.com", dao.Normal)
	assert.NoError(err)
	assert.Equal("vriska", created.Username)
	assert.NotEqual("h0rseword", created.Password, "password must not be stored in the clear")

	// creating the same username again is a conflict
	_, err = svc.CreateUser(ctx, "vriska", "other", "", dao.Normal)
	assert.ErrorIs(err, serr.ErrAlreadyExists)

	// wrong password is rejected
	_, err = svc.Login(ctx, "vriska", "wrong")
	assert.ErrorIs(err, serr.ErrBadCredentials)

	// unknown user is rejected with the same error
	_, err = svc.Login(ctx, "nobody", "h0rseword")
	assert.ErrorIs(err, serr.ErrBadCredentials)

	// correct credentials log in and stamp the login time
	loggedIn, err := svc.Login(ctx, "vriska", "h0rseword")
	assert.NoError(err)
	assert.Equal(created.ID, loggedIn.ID)
	assert.True(loggedIn.LastLoginTime.After(created.LastLoginTime))
}

func Test_Service_Logout(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}

	created, err := svc.CreateUser(ctx, "terezi", "l1c3nse", "", dao.Normal)
	assert.NoError(err)

	loggedOut, err := svc.Logout(ctx, created.ID)
	assert.NoError(err)
	assert.True(loggedOut.LastLogoutTime.After(created.LastLogoutTime) || loggedOut.LastLogoutTime.Equal(created.LastLogoutTime))

	_, err = svc.Logout(ctx, uuid.New())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_CreateAnalysis(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}
	owner := uuid.New()

	created, err := svc.CreateAnalysis(ctx, owner, "smoke test", "int x;")
	assert.NoError(err)
	assert.Equal("smoke test", created.Name)
	assert.Equal(owner, created.Owner)
	assert.Equal("int x;", created.Source)
	assert.NotEmpty(created.Tokens)

	_, err = svc.CreateAnalysis(ctx, owner, "", "int x;")
	assert.ErrorIs(err, serr.ErrBadArgument)

	got, err := svc.GetAnalysis(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created.ID, got.ID)

	forOwner, err := svc.GetAnalysesByOwner(ctx, owner)
	assert.NoError(err)
	assert.Len(forOwner, 1)
}

func Test_Service_UpdateAnalysis_rescansSource(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}
	owner := uuid.New()

	created, err := svc.CreateAnalysis(ctx, owner, "before", "int x;")
	assert.NoError(err)

	updated, err := svc.UpdateAnalysis(ctx, created.ID.String(), "after", "float y;")
	assert.NoError(err)
	assert.Equal("after", updated.Name)
	assert.Equal("float y;", updated.Source)
	assert.NotEmpty(updated.Tokens)
	assert.Equal("float", updated.Tokens[0].Text)
}

func Test_Service_DeleteAnalysis(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}
	owner := uuid.New()

	created, err := svc.CreateAnalysis(ctx, owner, "doomed", "int x;")
	assert.NoError(err)

	deleted, err := svc.DeleteAnalysis(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = svc.GetAnalysis(ctx, created.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)

	_, err = svc.DeleteAnalysis(ctx, "not-a-uuid")
	assert.ErrorIs(err, serr.ErrBadArgument)
}

func Test_Service_AnalyzeSource(t *testing.T) {
	assert := assert.New(t)

	svc := Service{DB: inmem.NewDatastore()}

	anal := svc.AnalyzeSource("program P begin int x; x := 1; write(x); end")
	assert.Empty(anal.SyntaxErrors)
	assert.NotEmpty(anal.TAC)

	entry, ok := anal.Symbols.Get("x")
	assert.True(ok)
	assert.Equal("x", entry.Name)
}

func Test_Service_UpdatePassword(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	svc := Service{DB: inmem.NewDatastore()}

	created, err := svc.CreateUser(ctx, "kanaya", "ch41ns4w", "", dao.Normal)
	assert.NoError(err)

	_, err = svc.UpdatePassword(ctx, created.ID.String(), "")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.UpdatePassword(ctx, created.ID.String(), "new-ch41ns4w")
	assert.NoError(err)

	_, err = svc.Login(ctx, "kanaya", "ch41ns4w")
	assert.ErrorIs(err, serr.ErrBadCredentials)

	loggedIn, err := svc.Login(ctx, "kanaya", "new-ch41ns4w")
	assert.NoError(err)
	assert.Equal(created.ID, loggedIn.ID)
}
