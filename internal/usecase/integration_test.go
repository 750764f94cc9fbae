package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/apiclient"
	"github.com/aalvaropc/libris/internal/infra/cache"
	"github.com/aalvaropc/libris/internal/infra/fakeapi"
	"github.com/aalvaropc/libris/internal/infra/kvstore"
)

func TestLibraryAgainstFakeService(t *testing.T) {
	fake := fakeapi.New()
	fake.PutBooks(domain.SeedBooks()...)
	fake.PutUsers(domain.SeedUsers()...)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store := cache.New(kvstore.NewMemoryStore())
	api, err := apiclient.New(srv.URL, apiclient.WithHTTPClient(srv.Client()), apiclient.WithTokenSource(store))
	require.NoError(t, err)

	lib := NewLibrary(api, store, WithClock(func() time.Time { return fixedDay }))
	ctx := context.Background()

	require.NoError(t, lib.Init(ctx))
	assert.Len(t, lib.State().Books, 2)

	err = lib.Login(ctx, "john_doe", "wrong")
	require.Error(t, err)
	assert.Equal(t, domain.FailedLogin("Invalid credentials"), lib.State().Login)

	require.NoError(t, lib.Login(ctx, "john_doe", "password123"))
	require.True(t, lib.IsAuthenticated(ctx))

	loan, err := lib.IssueBook(ctx, 2, 1)
	require.NoError(t, err)
	assert.Regexp(t, `^Bearer .+`, fake.LastAuthorization())
	assert.False(t, fake.Books()[1].Available)

	require.Len(t, lib.LoansForCurrentUser(), 1)
	require.NoError(t, lib.ReturnBook(ctx, loan.ID))
	assert.Empty(t, lib.LoansForCurrentUser())
	assert.True(t, fake.Books()[1].Available)

	fake.Fail(fakeapi.RouteListBooks, http.StatusInternalServerError, "database is down")
	require.Error(t, lib.FetchBooks(ctx))
	st := lib.State()
	assert.Equal(t, "Failed to load books: HTTP 500 - database is down", st.Error)
	assert.Len(t, st.Books, 2, "cached books are kept")

	require.NoError(t, lib.Logout(ctx))
	assert.False(t, lib.IsAuthenticated(ctx))
}
