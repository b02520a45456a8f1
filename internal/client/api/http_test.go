package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/guesscode/guesscode-cli/internal/client/bus"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

// memStore is an in-memory tokenstore.Store for tests.
type memStore struct {
	token  string
	userID int64
}

func (m *memStore) Token(ctx context.Context) (string, error) { return m.token, nil }
func (m *memStore) UserID(ctx context.Context) (int64, error) { return m.userID, nil }
func (m *memStore) SetTokenData(ctx context.Context, token string, userID int64) error {
	m.token, m.userID = token, userID
	return nil
}
func (m *memStore) RemoveTokenData(ctx context.Context) error {
	m.token, m.userID = "", 0
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newClient(t *testing.T, handler http.Handler, store *memStore) (*HTTPClient, *bus.Bus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	b := bus.New()
	return NewHTTPClient(srv.URL, 5*time.Second, store, b, testLogger()), b
}

func TestHTTPClient_InjectsAuthHeaders(t *testing.T) {
	var gotAuth, gotUserID, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserID = r.Header.Get("X-User-Id")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`[]`))
	})

	c, _ := newClient(t, handler, &memStore{token: "T", userID: 7})

	_, err := c.SearchKatas(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer T", gotAuth)
	require.Equal(t, "7", gotUserID)
	require.NotEmpty(t, gotRequestID)
}

func TestHTTPClient_NoHeadersWithoutCredential(t *testing.T) {
	var hadAuth, hadUserID bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadAuth = r.Header.Get("Authorization") != ""
		hadUserID = r.Header.Get("X-User-Id") != ""
		w.Write([]byte(`[]`))
	})

	c, _ := newClient(t, handler, &memStore{})

	_, err := c.SearchKatas(context.Background())
	require.NoError(t, err)
	require.False(t, hadAuth)
	require.False(t, hadUserID)
}

func TestHTTPClient_LoginDecodesTokenResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"accessToken":"T","userId":7}`))
	})

	c, _ := newClient(t, handler, &memStore{})

	resp, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.NotNil(t, resp.AccessToken)
	require.Equal(t, "T", *resp.AccessToken)
	require.NotNil(t, resp.UserID)
	require.EqualValues(t, 7, *resp.UserID)
}

func TestHTTPClient_LoginWithAbsentFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":7}`))
	})

	c, _ := newClient(t, handler, &memStore{})

	resp, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.Nil(t, resp.AccessToken, "absent field must stay absent, not default")
}

func TestHTTPClient_ClassifiesStatuses(t *testing.T) {
	status := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"message":"nope"}`))
	})

	c, _ := newClient(t, handler, &memStore{})
	ctx := context.Background()

	status = http.StatusBadRequest
	_, err := c.SearchKatas(ctx)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "nope", apiErr.Message)
	require.False(t, errors.Is(err, ErrUnauthorized))

	status = http.StatusInternalServerError
	_, err = c.SearchKatas(ctx)
	require.ErrorIs(t, err, ErrUnavailable)

	status = http.StatusUnauthorized
	_, err = c.SearchKatas(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_401ClearsCredentialAndBroadcastsOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := &memStore{token: "stale", userID: 7}
	c, b := newClient(t, handler, store)

	broadcasts := 0
	b.OnForceLogout(func() { broadcasts++ })

	_, err := c.SearchKatas(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Empty(t, store.token, "credential must be cleared")
	require.Zero(t, store.userID)
	require.Equal(t, 1, broadcasts, "exactly one logout broadcast")
}

// A 401 from profile-info must not invalidate the session; hydration owns
// that decision.
func TestHTTPClient_401OnProfileInfoIsExempt(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := &memStore{token: "maybe-stale", userID: 7}
	c, b := newClient(t, handler, store)

	broadcasts := 0
	b.OnForceLogout(func() { broadcasts++ })

	_, err := c.ProfileInfo(context.Background(), 7)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, "maybe-stale", store.token, "credential must survive a profile-info 401")
	require.EqualValues(t, 7, store.userID)
	require.Zero(t, broadcasts)
}

func TestHTTPClient_NetworkErrorIsNotTyped(t *testing.T) {
	b := bus.New()
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, &memStore{}, b, testLogger())

	_, err := c.SearchKatas(context.Background())
	require.Error(t, err)
	var apiErr *Error
	require.False(t, errors.As(err, &apiErr), "transport failures must not look like HTTP failures")
}

func TestHTTPClient_ProfileInfoTranslatesDTO(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile-info/7", r.URL.Path)
		w.Write([]byte(`{"username":"alice","avatarUrl":"http://a/x.png","activityStatus":1,"userId":7}`))
	})

	c, _ := newClient(t, handler, &memStore{})

	p, err := c.ProfileInfo(context.Background(), 7)
	require.NoError(t, err)
	require.EqualValues(t, 7, p.UserID)
	require.Equal(t, "alice", p.Username)
	require.Equal(t, "online", p.ActivityStatus.String())
	require.Empty(t, p.Description, "absent description maps to empty string")
}

func TestHTTPClient_KataAndLeaderboard(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/kata-search/3":
			w.Write([]byte(`{"id":3,"title":"Off by one","programmingLanguage":4,"kataDifficulty":5,"kataType":2,
				"kataJsonContent":{"kataDescription":"find it","sourceCode":"for i:=0;i<=n;i++{}",
				"answerOptions":[{"optionId":1,"option":"loop bound"}]},"authorId":9}`))
		case "/api/leaderboard":
			w.Write([]byte(`[{"userId":7,"username":"alice","rank":20,"rating":2400}]`))
		default:
			http.NotFound(w, r)
		}
	})

	c, _ := newClient(t, handler, &memStore{})
	ctx := context.Background()

	k, err := c.GetKata(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Off by one", k.Title)
	require.Equal(t, "Go", k.Language.String())
	require.Equal(t, "fix the bug", k.Type.String())
	require.Len(t, k.AnswerOptions, 1)

	rows, err := c.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "sensei", rows[0].Rank.String())
}
