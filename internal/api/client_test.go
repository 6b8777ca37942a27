package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Green254/taskpulse-cli/internal/errors"
	"github.com/Green254/taskpulse-cli/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(t.TempDir())
	return NewClient(server.URL+"/api", store), store
}

func loginTestSession(t *testing.T, store *session.Store) {
	t.Helper()
	profile := &session.Profile{
		ID:    1,
		Name:  "Amina Njeri",
		Email: "amina@example.com",
		Roles: []session.RoleRef{{ID: 2, Name: "manager"}},
	}
	require.NoError(t, store.Login(profile, "tok-abc"))
}

func TestDoInjectsStandardHeaders(t *testing.T) {
	var got http.Header
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	loginTestSession(t, store)

	resp, err := client.Do(context.Background(), http.MethodPost, "/tasks", strings.NewReader(`{"title":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-abc", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestDoWithoutBodyOmitsContentType(t *testing.T) {
	var got http.Header
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	loginTestSession(t, store)

	resp, err := client.Do(context.Background(), http.MethodGet, "/tasks", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, got.Get("Content-Type"))
}

func TestDoWithoutSessionOmitsAuthorization(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))

	resp, err := client.Do(context.Background(), http.MethodGet, "/departments", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestDoPreservesCallerContentType(t *testing.T) {
	var got http.Header
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	loginTestSession(t, store)

	resp, err := client.Do(context.Background(), http.MethodPost, "/upload",
		strings.NewReader("raw"), WithHeader("Content-Type", "text/plain"))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "text/plain", got.Get("Content-Type"))
}

func TestDoUnauthorizedTearsDownSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	loginTestSession(t, store)

	_, err := client.Do(context.Background(), http.MethodGet, "/tasks", nil)

	var tpErr *errors.TaskPulseError
	require.ErrorAs(t, err, &tpErr)
	assert.Equal(t, errors.ErrCodeAuthSessionExpired, tpErr.Code)
	assert.False(t, store.LoggedIn())
}

func TestDoLockedUsesServerMessage(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusLocked)
		json.NewEncoder(w).Encode(map[string]string{"message": "Suspended for policy violation"})
	}))
	loginTestSession(t, store)

	_, err := client.Do(context.Background(), http.MethodGet, "/tasks", nil)

	var tpErr *errors.TaskPulseError
	require.ErrorAs(t, err, &tpErr)
	assert.Equal(t, errors.ErrCodeAuthAccountSuspended, tpErr.Code)
	assert.Equal(t, "Suspended for policy violation", tpErr.Message)
	assert.False(t, store.LoggedIn())
}

func TestDoLockedWithoutMessageFallsBack(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusLocked)
		w.Write([]byte("not json"))
	}))
	loginTestSession(t, store)

	_, err := client.Do(context.Background(), http.MethodGet, "/tasks", nil)

	var tpErr *errors.TaskPulseError
	require.ErrorAs(t, err, &tpErr)
	assert.Equal(t, "your account is suspended, contact an administrator", tpErr.Message)
	assert.False(t, store.LoggedIn())
}

func TestDoOtherStatusesPassThrough(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such task"}`))
	}))
	loginTestSession(t, store)

	resp, err := client.Do(context.Background(), http.MethodGet, "/tasks/99", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	// The session survives a plain failure.
	assert.True(t, store.LoggedIn())
	assert.Equal(t, "tok-abc", store.Token())
}

func TestDoJSONStatusErrorCarriesEnvelope(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string][]string{
				"email": {"The email has already been taken."},
			},
		})
	}))
	loginTestSession(t, store)

	_, err := client.CreateTask(context.Background(), TaskInput{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.StatusCode)
	assert.Equal(t, "The email has already been taken.", reqErr.Message)
	assert.Equal(t, "The email has already been taken.", reqErr.Fields["email"])
	assert.True(t, IsValidation(err))
}

func TestDoUnreachableServer(t *testing.T) {
	store := session.NewStore(t.TempDir())
	client := NewClient("http://127.0.0.1:1/api", store)

	_, err := client.Do(context.Background(), http.MethodGet, "/tasks", nil)

	var tpErr *errors.TaskPulseError
	require.ErrorAs(t, err, &tpErr)
	assert.Equal(t, errors.ErrCodeAPIUnreachable, tpErr.Code)
}

func TestFetchProfileUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchProfile(context.Background(), "stale-token")
	assert.True(t, stderrors.Is(err, session.ErrUnauthorized))
}

func TestFetchProfileSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/me", r.URL.Path)
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(session.Profile{
			ID:    5,
			Name:  "Brian Otieno",
			Roles: []session.RoleRef{{ID: 3, Name: "staff"}},
		})
	}))

	profile, err := client.FetchProfile(context.Background(), "fresh-token")
	require.NoError(t, err)
	assert.Equal(t, int64(5), profile.ID)
	assert.True(t, profile.HasPopulatedRoles())
}

func TestNotifyLogoutDoesNotRecurse(t *testing.T) {
	calls := 0
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/logout", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	loginTestSession(t, store)

	err := client.NotifyLogout(context.Background(), "tok-abc")
	require.Error(t, err)
	// The rejection surfaces as a plain error, not another teardown cycle.
	assert.Equal(t, 1, calls)
}

func TestFirstError(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"message wins", `{"message":"top","errors":{"email":["field"]}}`, "top"},
		{"field fallback", `{"errors":{"email":["The email is invalid."]}}`, "The email is invalid."},
		{"empty payload", `{}`, "fallback"},
		{"not json", `oops`, "fallback"},
		{"empty field list", `{"errors":{"email":[]}}`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstError([]byte(tt.payload), "fallback"))
		})
	}
}
