package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Green254/taskpulse-cli/internal/security"
)

func testProfile() *Profile {
	return &Profile{
		ID:    7,
		Name:  "Amina Njeri",
		Email: "amina@example.com",
		Roles: []RoleRef{{ID: 1, Name: "manager"}},
	}
}

func TestStoreLoginRestoreRoundtrip(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	// A fresh store simulates a new process start.
	fresh := NewStore(dir)
	fresh.Restore()

	assert.Equal(t, "tok-123", fresh.Token())
	require.NotNil(t, fresh.Profile())
	assert.Equal(t, testProfile(), fresh.Profile())
	assert.True(t, fresh.LoggedIn())
}

func TestStoreRestoreWithoutState(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Restore()

	assert.False(t, store.LoggedIn())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Profile())
}

func TestStoreLoginRequiresToken(t *testing.T) {
	store := NewStore(t.TempDir())
	require.Error(t, store.Login(testProfile(), ""))
	assert.False(t, store.LoggedIn())
}

func TestStoreLogoutClearsStateEvenWhenNotifyFails(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	var notified string
	store.SetNotifier(func(_ context.Context, token string) error {
		notified = token
		return errors.New("server unreachable")
	})

	store.Logout(context.Background())

	assert.Equal(t, "tok-123", notified)
	assert.False(t, store.LoggedIn())
	assert.Nil(t, store.Profile())
	assert.NoFileExists(t, filepath.Join(dir, tokenFile))
	assert.NoFileExists(t, filepath.Join(dir, userFile))
}

func TestStoreLogoutIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())

	calls := 0
	store.SetNotifier(func(context.Context, string) error {
		calls++
		return nil
	})

	store.Logout(context.Background())
	store.Logout(context.Background())

	// Nothing to notify about without a credential.
	assert.Zero(t, calls)
	assert.False(t, store.LoggedIn())
}

func TestStoreRestoreCorruptProfileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0o600))

	fresh := NewStore(dir)
	fresh.Restore()

	assert.Equal(t, "tok-123", fresh.Token())
	assert.Nil(t, fresh.Profile())
}

func TestStoreRestoreTamperedProfileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	path := filepath.Join(dir, userFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := []byte(string(data[:len(data)-2]) + " ]}")
	require.NoError(t, os.WriteFile(path, tampered, 0o600))

	fresh := NewStore(dir)
	fresh.Restore()

	assert.Nil(t, fresh.Profile())
}

func TestStoreSealedTokenRoundtrip(t *testing.T) {
	dir := t.TempDir()
	sealer := security.NewSealer("correct horse battery")

	store := NewStore(dir, WithSealer(sealer))
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	raw, err := os.ReadFile(filepath.Join(dir, tokenFile))
	require.NoError(t, err)
	assert.True(t, security.IsSealed(string(raw)))
	assert.NotContains(t, string(raw), "tok-123")

	fresh := NewStore(dir, WithSealer(sealer))
	fresh.Restore()
	assert.Equal(t, "tok-123", fresh.Token())
}

func TestStoreSealedTokenWithoutPassphraseIgnored(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, WithSealer(security.NewSealer("pass")))
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	fresh := NewStore(dir)
	fresh.Restore()
	assert.False(t, fresh.LoggedIn())
}

func TestRefreshSkippedWhenRolesPopulated(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Login(testProfile(), "tok-123"))

	calls := 0
	store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
		calls++
		return nil, nil
	})

	assert.Zero(t, calls)
}

func TestRefreshSkippedWhenLoggedOut(t *testing.T) {
	store := NewStore(t.TempDir())

	calls := 0
	store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
		calls++
		return nil, nil
	})

	assert.Zero(t, calls)
}

func TestRefreshPopulatesProfile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Login(&Profile{ID: 7, Name: "Amina Njeri"}, "tok-123"))

	store.RefreshProfileIfIncomplete(context.Background(), func(_ context.Context, token string) (*Profile, error) {
		assert.Equal(t, "tok-123", token)
		return testProfile(), nil
	})

	require.NotNil(t, store.Profile())
	assert.Equal(t, []RoleRef{{ID: 1, Name: "manager"}}, store.Profile().Roles)

	// The refreshed profile survives a restart.
	fresh := NewStore(dir)
	fresh.Restore()
	require.NotNil(t, fresh.Profile())
	assert.True(t, fresh.Profile().HasPopulatedRoles())
}

func TestRefreshUnauthorizedTearsDownSession(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Login(&Profile{ID: 7}, "tok-123"))

	store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
		return nil, ErrUnauthorized
	})

	assert.False(t, store.LoggedIn())
	assert.NoFileExists(t, filepath.Join(dir, tokenFile))
}

func TestRefreshOtherErrorKeepsSession(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Login(&Profile{ID: 7}, "tok-123"))

	store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
		return nil, errors.New("gateway timeout")
	})

	assert.True(t, store.LoggedIn())
}

func TestRefreshStaleResultDiscarded(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Login(&Profile{ID: 7, Name: "First"}, "tok-1"))

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
			close(started)
			<-release
			return &Profile{ID: 7, Name: "Stale", Roles: []RoleRef{{ID: 9, Name: "admin"}}}, nil
		})
	}()

	<-started
	// A new login supersedes the in-flight refresh.
	require.NoError(t, store.Login(testProfile(), "tok-2"))
	close(release)
	wg.Wait()

	require.NotNil(t, store.Profile())
	assert.Equal(t, "Amina Njeri", store.Profile().Name)
	assert.NotEqual(t, "Stale", store.Profile().Name)
}

func TestRefreshConcurrentTriggersCoalesce(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Login(&Profile{ID: 7}, "tok-123"))

	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
			calls++
			close(started)
			<-release
			return testProfile(), nil
		})
	}()

	<-started
	// While the first request is in flight, further triggers are no-ops.
	store.RefreshProfileIfIncomplete(context.Background(), func(context.Context, string) (*Profile, error) {
		calls++
		return testProfile(), nil
	})
	close(release)
	wg.Wait()

	assert.Equal(t, 1, calls)
	assert.True(t, store.Profile().HasPopulatedRoles())
}
