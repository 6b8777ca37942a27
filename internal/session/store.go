package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/Green254/taskpulse-cli/internal/log"
	"github.com/Green254/taskpulse-cli/internal/security"
)

// Persisted state lives in two files under the state directory: the raw
// (optionally sealed) bearer token, and the profile JSON wrapped in a
// checksum envelope.
const (
	tokenFile = "token"
	userFile  = "user.json"
)

// ErrUnauthorized is returned by a ProfileFetcher when the server rejected
// the credential. The store reacts by tearing the session down.
var ErrUnauthorized = errors.New("unauthorized")

// Notifier tells the server a session is ending. Failures are logged and
// swallowed; local teardown proceeds regardless.
type Notifier func(ctx context.Context, token string) error

// ProfileFetcher loads the current user's profile with the given credential.
type ProfileFetcher func(ctx context.Context, token string) (*Profile, error)

// Store is the single source of truth for "who is logged in". It owns the
// in-memory credential and profile and is the only component that touches
// their persisted form.
type Store struct {
	mu      sync.Mutex
	dir     string
	sealer  *security.Sealer
	logger  *log.Logger
	notify  Notifier
	token   string
	profile *Profile

	// generation increments on every login/logout so that an async result
	// produced under an older session is discarded instead of applied.
	generation uint64

	// refreshGen tracks the generation of the in-flight profile refresh,
	// if any, so concurrent triggers coalesce into a single request.
	refreshGen  uint64
	refreshBusy bool
}

// Option configures a Store.
type Option func(*Store)

// WithSealer seals the persisted token at rest.
func WithSealer(sealer *security.Sealer) Option {
	return func(s *Store) { s.sealer = sealer }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a session store persisting under dir.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, logger: log.DefaultLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNotifier installs the logout notifier. Wired after construction
// because the API client that implements it needs the store first.
func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = n
}

// Token returns the current credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns the current user profile, or nil. When no credential is
// held the profile is reported absent regardless of what memory holds.
func (s *Store) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return nil
	}
	return s.profile
}

// LoggedIn reports whether a credential is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Generation returns the current session generation. It changes on every
// login and logout.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// persistedUser wraps the profile JSON with an integrity checksum so a
// truncated or hand-edited file is detected and treated as absent.
type persistedUser struct {
	Checksum string          `json:"checksum"`
	User     json.RawMessage `json:"user"`
}

func profileChecksum(raw []byte) string {
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Restore loads the persisted session into memory. It never touches the
// network and never fails startup: unreadable or corrupt state is treated
// as a logged-out session.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.profile = nil

	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read persisted token", "error", err)
		}
		return
	}

	token := string(raw)
	if s.sealer != nil || security.IsSealed(token) {
		sealer := s.sealer
		if sealer == nil {
			s.logger.Warn("persisted token is sealed but no passphrase is configured")
			return
		}
		token, err = sealer.Open(token)
		if err != nil {
			s.logger.Warn("failed to open sealed token", "error", err)
			return
		}
	}
	if token == "" {
		return
	}
	s.token = token

	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return
	}

	var wrapped persistedUser
	if err := json.Unmarshal(data, &wrapped); err != nil {
		s.logger.Warn("persisted profile is corrupt, ignoring", "error", err)
		return
	}
	if wrapped.Checksum != profileChecksum(wrapped.User) {
		s.logger.Warn("persisted profile failed integrity check, ignoring")
		return
	}

	var profile Profile
	if err := json.Unmarshal(wrapped.User, &profile); err != nil {
		s.logger.Warn("persisted profile is corrupt, ignoring", "error", err)
		return
	}
	s.profile = &profile
}

// Login replaces any prior session with the given profile and credential,
// in memory and on disk.
func (s *Store) Login(profile *Profile, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return fmt.Errorf("login requires a token")
	}

	if err := s.persistLocked(profile, token); err != nil {
		return err
	}

	s.token = token
	s.profile = profile
	s.generation++
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears the
// session in memory and on disk. Calling it while already logged out still
// clears storage defensively.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	notify := s.notify
	s.token = ""
	s.profile = nil
	s.generation++
	s.mu.Unlock()

	if token != "" && notify != nil {
		if err := notify(ctx, token); err != nil {
			s.logger.Warn("logout notification failed", "error", err)
		}
	}

	s.clearStorage()
}

// RefreshProfileIfIncomplete issues a single "who am I" request when a
// credential is present but the role list has not been loaded. The result
// is discarded if the session changed while the request was in flight.
// Concurrent triggers for the same session coalesce into one request.
func (s *Store) RefreshProfileIfIncomplete(ctx context.Context, fetch ProfileFetcher) {
	s.mu.Lock()
	if s.token == "" || s.profile.HasPopulatedRoles() {
		s.mu.Unlock()
		return
	}
	if s.refreshBusy && s.refreshGen == s.generation {
		s.mu.Unlock()
		return
	}
	gen := s.generation
	token := s.token
	s.refreshBusy = true
	s.refreshGen = gen
	s.mu.Unlock()

	profile, err := fetch(ctx, token)

	s.mu.Lock()
	s.refreshBusy = false
	if s.generation != gen {
		// A newer login or logout superseded this refresh.
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrUnauthorized) {
			s.Logout(ctx)
			return
		}
		s.logger.Warn("failed to sync authenticated user", "error", err)
		return
	}

	if persistErr := s.persistLocked(profile, token); persistErr != nil {
		s.logger.Warn("failed to persist refreshed profile", "error", persistErr)
	}
	s.profile = profile
	s.mu.Unlock()
}

// persistLocked writes both durable entries. Callers hold s.mu.
func (s *Store) persistLocked(profile *Profile, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	stored := token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		stored = sealed
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(stored), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	wrapped, err := json.Marshal(persistedUser{
		Checksum: profileChecksum(raw),
		User:     raw,
	})
	if err != nil {
		return fmt.Errorf("encode profile envelope: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), wrapped, 0o600); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	return nil
}

func (s *Store) clearStorage() {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to clear persisted session", "file", name, "error", err)
		}
	}
}
