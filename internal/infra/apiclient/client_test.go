package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/fakeapi"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newFake(t *testing.T) (*fakeapi.Server, *Client) {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPClient(srv.Client()), WithTokenSource(staticToken("tok-1")))
	require.NoError(t, err)
	return fake, c
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := New("localhost:8000")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestNewAddsTrailingSlash(t *testing.T) {
	c, err := New("http://example.test/api")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api/", c.BaseURL())
}

func TestBooksRoundTrip(t *testing.T) {
	fake, c := newFake(t)
	ctx := context.Background()

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	created, err := c.CreateBook(ctx, domain.NewBook("Dune", "Frank Herbert", 1965, "978-0441013593"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Available)

	created.Title = "Dune Messiah"
	updated, err := c.UpdateBook(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	got, err := c.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, c.DeleteBook(ctx, created.ID))
	assert.Empty(t, fake.Books())
	assert.Equal(t, "Bearer tok-1", fake.LastAuthorization())
}

func TestLoanIssueAndReturn(t *testing.T) {
	fake, c := newFake(t)
	ctx := context.Background()
	fake.PutBooks(domain.SeedBooks()...)
	fake.PutUsers(domain.SeedUsers()...)

	loan, err := c.CreateLoan(ctx, domain.NewLoan(1, 1, time.Now()))
	require.NoError(t, err)
	assert.True(t, loan.Active())

	msg, err := c.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book returned successfully", msg["message"])

	loans, err := c.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.False(t, loans[0].Active())
}

func TestLoginInvalidCredentialsCarriesDetail(t *testing.T) {
	fake, c := newFake(t)
	fake.PutUsers(domain.SeedUsers()...)

	_, err := c.Login(context.Background(), domain.Credentials("john_doe", "nope"))
	require.Error(t, err)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "Invalid credentials", he.Message)
	assert.Equal(t, "HTTP 401 - Invalid credentials", domain.Reason(err))
	assert.True(t, domain.IsKind(err, domain.KindHTTP))
}

func TestRegisterThenLogin(t *testing.T) {
	_, c := newFake(t)
	ctx := context.Background()

	pw := "s3cret"
	tok, err := c.Register(ctx, domain.User{Username: "ana", Password: &pw, Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)

	tok2, err := c.Login(ctx, domain.Credentials("ana", pw))
	require.NoError(t, err)
	assert.NotEqual(t, tok.Token, tok2.Token)
}

func TestHTTPErrorMessageSources(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail", `{"detail":"Book not found"}`, "Book not found"},
		{"message", `{"message":"boom"}`, "boom"},
		{"error", `{"error":"bad"}`, "bad"},
		{"structured detail", `{"detail":[{"loc":["body","title"]}]}`, `[{"loc":["body","title"]}]`},
		{"not json", `<html>oops</html>`, "Internal Server Error"},
		{"empty", ``, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			he := newHTTPError(http.MethodGet, "books", http.StatusInternalServerError, []byte(tc.body))
			assert.Equal(t, tc.want, he.Message)
		})
	}
}

func TestInjectedFailureAndStatusCode(t *testing.T) {
	fake, c := newFake(t)
	fake.Fail(fakeapi.RouteListUsers, http.StatusServiceUnavailable, "maintenance")

	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.Equal(t, "HTTP 503 - maintenance", domain.Reason(err))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestTransportFailureIsExecutionKind(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.ListBooks(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}

func TestInvalidJSONIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "not-a-number"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetBook(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidResponse))
}

func TestHeadersAndRateLimit(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))
		ids = append(ids, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithRateLimit(1000, 1))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.ListLoans(context.Background())
		require.NoError(t, err)
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestRateLimitHonoursContext(t *testing.T) {
	c, err := New("http://127.0.0.1:1/", WithRateLimit(0.001, 1))
	require.NoError(t, err)
	c.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.ListBooks(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}

func TestReturnLoanStringifiesScalarValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/loans/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Book returned","loan_id":7,"closed":true,"note":null,"book":{"id":2}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	got, err := c.ReturnLoan(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"message": "Book returned",
		"loan_id": "7",
		"closed":  "true",
		"note":    "",
		"book":    `{"id":2}`,
	}, got)
}

func TestReturnLoanAcceptsUndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"Book returned"`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	got, err := c.ReturnLoan(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateUserOmitsNilPassword(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":1,"username":"john_doe","email":"new@b.c"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.UpdateUser(context.Background(), 1, domain.User{ID: 1, Username: "john_doe", Email: "new@b.c"})
	require.NoError(t, err)
	assert.NotContains(t, body, "password")
	assert.Equal(t, "new@b.c", body["email"])
}
